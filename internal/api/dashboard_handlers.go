package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portaldev/portal-admin/internal/newsletter"
)

// GetDashboard returns the portal's aggregated KPIs in one call, derived
// live from the stores.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscribers.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	campaigns, err := h.campaigns.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	activeSubs := 0
	for _, s := range subs {
		if s.Status == newsletter.SubscriberActive {
			activeSubs++
		}
	}
	campaignsSent := 0
	for _, c := range campaigns {
		if c.Status == newsletter.StatusSent {
			campaignsSent++
		}
	}
	summary := newsletter.Aggregate(campaigns)

	body := map[string]interface{}{
		"total_subscribers":  len(subs),
		"active_subscribers": activeSubs,
		"campaigns_sent":     campaignsSent,
		"avg_open_rate":      round1(summary.AvgOpenRate),
	}
	if h.posts != nil {
		body["total_blog_views"] = h.posts.TotalViews()
		body["total_posts"] = len(h.posts.List())
	}
	if h.showcases != nil {
		body["pending_showcases"] = len(h.showcases.List("pending"))
	}
	if h.notifications != nil {
		notes := h.notifications.List()
		if len(notes) > 5 {
			notes = notes[:5]
		}
		body["recent_notifications"] = notes
		body["unread_notifications"] = h.notifications.Unread()
	}

	respondJSON(w, http.StatusOK, body)
}

// ListNotifications returns the retained notifications.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": h.notifications.List(),
		"unread":        h.notifications.Unread(),
	})
}

// MarkNotificationRead flags one notification as read.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	h.notifications.MarkRead(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNotificationsRead flags every notification as read.
func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	h.notifications.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}
