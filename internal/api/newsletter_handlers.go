package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/portaldev/portal-admin/internal/newsletter"
	"github.com/portaldev/portal-admin/internal/suppression"
)

// subscriberDTO is the wire shape of a subscriber. Dates are formatted at
// this edge; the stores keep real timestamps.
type subscriberDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	Source       string `json:"source"`
	SubscribedAt string `json:"subscribed_at"`
}

func toSubscriberDTO(s newsletter.Subscriber) subscriberDTO {
	return subscriberDTO{
		ID:           s.ID.String(),
		Email:        s.Email,
		Status:       s.Status,
		Source:       s.Source,
		SubscribedAt: s.SubscribedAt.Format(newsletter.SendDateFormat),
	}
}

// campaignDTO is the wire shape of a campaign.
type campaignDTO struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Preheader   string   `json:"preheader,omitempty"`
	HTMLContent string   `json:"html_content,omitempty"`
	Status      string   `json:"status"`
	Segment     string   `json:"segment"`
	Recipients  int      `json:"recipients"`
	SentAt      string   `json:"sent_at,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
	OpenRate    *float64 `json:"open_rate,omitempty"`
	ClickRate   *float64 `json:"click_rate,omitempty"`
}

func toCampaignDTO(c newsletter.Campaign) campaignDTO {
	dto := campaignDTO{
		ID:          c.ID.String(),
		Subject:     c.Subject,
		Preheader:   c.Preheader,
		HTMLContent: c.HTMLContent,
		Status:      c.Status,
		Segment:     string(c.Segment),
		Recipients:  c.Recipients,
		OpenRate:    c.OpenRate,
		ClickRate:   c.ClickRate,
	}
	if c.SentAt != nil {
		dto.SentAt = c.SentAt.Format(newsletter.SendDateFormat)
	}
	if c.ScheduledAt != nil {
		dto.ScheduledAt = c.ScheduledAt.Format(newsletter.ScheduleDateFormat)
	}
	return dto
}

// statusForValidationError maps newsletter sentinel errors to HTTP codes.
func statusForValidationError(err error) int {
	switch {
	case errors.Is(err, newsletter.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, newsletter.ErrEmailRequired),
		errors.Is(err, newsletter.ErrInvalidEmail),
		errors.Is(err, newsletter.ErrSubjectRequired),
		errors.Is(err, newsletter.ErrScheduleDateRequired),
		errors.Is(err, newsletter.ErrInvalidAction),
		errors.Is(err, newsletter.ErrInvalidSegment),
		errors.Is(err, newsletter.ErrNoSubscribers):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Subscribers

// ListSubscribers returns the subscriber list, optionally filtered by a
// search query.
func (h *Handlers) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	var (
		subs []newsletter.Subscriber
		err  error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		subs, err = h.subscribers.Search(r.Context(), q)
	} else {
		subs, err = h.subscribers.List(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]subscriberDTO, len(subs))
	for i, s := range subs {
		out[i] = toSubscriberDTO(s)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"subscribers": out,
		"total":       len(out),
	})
}

// AddSubscriber creates a new subscriber from a JSON body.
func (h *Handlers) AddSubscriber(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sub, err := h.subscribers.Add(r.Context(), req.Email)
	if err != nil {
		respondError(w, statusForValidationError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toSubscriberDTO(*sub))
}

// RemoveSubscriber deletes a subscriber.
func (h *Handlers) RemoveSubscriber(w http.ResponseWriter, r *http.Request) {
	if err := h.subscribers.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnsubscribeSubscriber flips a subscriber to unsubscribed and adds the
// address to the suppression set.
func (h *Handlers) UnsubscribeSubscriber(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	subs, err := h.subscribers.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var email string
	for _, s := range subs {
		if s.ID.String() == id {
			email = s.Email
			break
		}
	}
	if email == "" {
		respondError(w, http.StatusNotFound, "subscriber not found")
		return
	}

	if err := h.subscribers.SetStatus(r.Context(), id, newsletter.SubscriberUnsubscribed); err != nil {
		respondError(w, statusForValidationError(err), err.Error())
		return
	}
	if h.suppressions != nil {
		if err := h.suppressions.Suppress(r.Context(), email, suppression.ReasonUnsubscribed); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportSubscribers streams the full subscriber list as a CSV download.
func (h *Handlers) ExportSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscribers.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(subs) == 0 {
		respondError(w, http.StatusBadRequest, newsletter.ErrNoSubscribers.Error())
		return
	}

	filename := newsletter.ExportFilename(time.Now())
	w.Header().Set("Content-Type", newsletter.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(newsletter.MarshalCSV(subs)))
}

// Campaigns

type campaignRequest struct {
	Subject       string `json:"subject"`
	Preheader     string `json:"preheader"`
	BodyHTML      string `json:"body_html"`
	Segment       string `json:"segment"`
	ScheduledDate string `json:"scheduled_date"` // "2006-01-02"
	ScheduledTime string `json:"scheduled_time"` // "15:04"
}

func (req campaignRequest) toEditorInput(id uuid.UUID) (newsletter.EditorInput, error) {
	input := newsletter.EditorInput{
		ID:            id,
		Subject:       req.Subject,
		Preheader:     req.Preheader,
		BodyHTML:      req.BodyHTML,
		Segment:       newsletter.Segment(req.Segment),
		ScheduledTime: req.ScheduledTime,
	}
	if req.ScheduledDate != "" {
		date, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return input, fmt.Errorf("invalid scheduled_date %q", req.ScheduledDate)
		}
		input.ScheduledDate = &date
	}
	return input, nil
}

// ListCampaigns returns every campaign, newest first.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]campaignDTO, len(campaigns))
	for i, c := range campaigns {
		out[i] = toCampaignDTO(c)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": out,
		"total":     len(out),
	})
}

// GetCampaign returns one campaign.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, statusForValidationError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toCampaignDTO(*c))
}

// SaveCampaign creates or updates a campaign. The action query parameter
// selects draft (default), send, or schedule.
func (h *Handlers) SaveCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id := uuid.Nil
	if raw := chi.URLParam(r, "id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid campaign id")
			return
		}
		id = parsed
	}

	input, err := req.toEditorInput(id)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	action := newsletter.SaveAction(r.URL.Query().Get("action"))
	if action == "" {
		action = newsletter.ActionDraft
	}

	saved, err := h.editor.Save(r.Context(), input, action)
	if err != nil {
		respondError(w, statusForValidationError(err), err.Error())
		return
	}

	status := http.StatusOK
	if id == uuid.Nil {
		status = http.StatusCreated
	}
	respondJSON(w, status, toCampaignDTO(*saved))
}

// RemoveCampaign deletes a campaign at any status.
func (h *Handlers) RemoveCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EstimateAudience returns the current recipient count for a segment.
func (h *Handlers) EstimateAudience(w http.ResponseWriter, r *http.Request) {
	segment := newsletter.Segment(r.URL.Query().Get("segment"))
	count, err := h.editor.EstimateAudience(r.Context(), segment)
	if err != nil {
		respondError(w, statusForValidationError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"segment":    segment,
		"recipients": count,
	})
}

// GetAnalytics returns aggregate campaign performance. Rates are rounded
// to one decimal here; the aggregator keeps full precision.
func (h *Handlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary := newsletter.Aggregate(campaigns)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"avg_open_rate":            round1(summary.AvgOpenRate),
		"avg_click_rate":           round1(summary.AvgClickRate),
		"last_campaign_recipients": summary.LastCampaignRecipients,
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SendTestEmail renders the draft for one recipient and sends it.
func (h *Handlers) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		campaignRequest
		To string `json:"to"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	input, err := req.toEditorInput(uuid.Nil)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.editor.SendTest(r.Context(), input, req.To); err != nil {
		respondError(w, statusForValidationError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent", "to": req.To})
}

// CreateDigestDraft builds a draft campaign from the configured blog feed.
func (h *Handlers) CreateDigestDraft(w http.ResponseWriter, r *http.Request) {
	if h.digest == nil || h.feedURL == "" {
		respondError(w, http.StatusServiceUnavailable, "no feed configured")
		return
	}

	saved, err := h.digest.BuildDraft(r.Context(), h.feedURL)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toCampaignDTO(*saved))
}
