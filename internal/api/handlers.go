package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/portaldev/portal-admin/internal/content"
	"github.com/portaldev/portal-admin/internal/newsletter"
	"github.com/portaldev/portal-admin/internal/notify"
	"github.com/portaldev/portal-admin/internal/pricing"
	"github.com/portaldev/portal-admin/internal/showcase"
	"github.com/portaldev/portal-admin/internal/suppression"
	"github.com/portaldev/portal-admin/internal/theme"
	"github.com/portaldev/portal-admin/internal/users"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	subscribers   newsletter.SubscriberRepository
	campaigns     newsletter.CampaignRepository
	editor        *newsletter.EditorService
	digest        *newsletter.DigestBuilder
	suppressions  suppression.Store
	posts         *content.BlogStore
	users         *users.Store
	showcases     *showcase.Store
	plans         *pricing.Store
	theme         *theme.Store
	notifications *notify.Center
	feedURL       string
	startedAt     time.Time
}

// NewHandlers creates a Handlers instance with the core newsletter
// collaborators. Supplemental stores are attached with the Set* methods.
func NewHandlers(subscribers newsletter.SubscriberRepository, campaigns newsletter.CampaignRepository, editor *newsletter.EditorService) *Handlers {
	return &Handlers{
		subscribers: subscribers,
		campaigns:   campaigns,
		editor:      editor,
		startedAt:   time.Now(),
	}
}

// SetDigestBuilder attaches the RSS digest builder.
func (h *Handlers) SetDigestBuilder(b *newsletter.DigestBuilder, feedURL string) {
	h.digest = b
	h.feedURL = feedURL
}

// SetSuppressionStore attaches the suppression set used by unsubscribes.
func (h *Handlers) SetSuppressionStore(s suppression.Store) {
	h.suppressions = s
}

// SetBlogStore attaches the blog store.
func (h *Handlers) SetBlogStore(s *content.BlogStore) {
	h.posts = s
}

// SetUserStore attaches the admin user store.
func (h *Handlers) SetUserStore(s *users.Store) {
	h.users = s
}

// SetShowcaseStore attaches the showcase store.
func (h *Handlers) SetShowcaseStore(s *showcase.Store) {
	h.showcases = s
}

// SetPricingStore attaches the plan catalogue.
func (h *Handlers) SetPricingStore(s *pricing.Store) {
	h.plans = s
}

// SetThemeStore attaches the design token store.
func (h *Handlers) SetThemeStore(s *theme.Store) {
	h.theme = s
}

// SetNotificationCenter attaches the notification center.
func (h *Handlers) SetNotificationCenter(c *notify.Center) {
	h.notifications = c
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// Health check

// HealthCheck returns the health status of the API
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}
