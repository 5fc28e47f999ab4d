// Package seed loads demo fixtures into the in-memory stores so a fresh
// portal has data to show. Enabled by config; never used with Postgres
// persistence.
package seed

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/portaldev/portal-admin/internal/content"
	"github.com/portaldev/portal-admin/internal/newsletter"
	"github.com/portaldev/portal-admin/internal/notify"
	"github.com/portaldev/portal-admin/internal/pricing"
	"github.com/portaldev/portal-admin/internal/showcase"
	"github.com/portaldev/portal-admin/internal/users"
)

// Stores collects everything the fixtures populate.
type Stores struct {
	Subscribers   *newsletter.SubscriberStore
	Campaigns     *newsletter.CampaignStore
	Posts         *content.BlogStore
	Users         *users.Store
	Showcases     *showcase.Store
	Plans         *pricing.Store
	Notifications *notify.Center
}

// Load populates every store with demo data relative to now.
func Load(s Stores, now time.Time) {
	loadSubscribers(s.Subscribers, now)
	loadCampaigns(s.Campaigns, now)
	loadPosts(s.Posts, now)
	loadUsers(s.Users, now)
	loadShowcases(s.Showcases, now)
	loadPlans(s.Plans)
	loadNotifications(s.Notifications, now)
	log.Printf("[seed] demo fixtures loaded")
}

func loadSubscribers(store *newsletter.SubscriberStore, now time.Time) {
	if store == nil {
		return
	}
	store.Seed([]newsletter.Subscriber{
		{ID: uuid.New(), Email: "sarah.chen@example.com", Status: newsletter.SubscriberActive, Source: "Website", SubscribedAt: now.AddDate(0, 0, -3)},
		{ID: uuid.New(), Email: "mike.jones@example.com", Status: newsletter.SubscriberActive, Source: "Website", SubscribedAt: now.AddDate(0, 0, -12)},
		{ID: uuid.New(), Email: "emma.wilson@example.com", Status: newsletter.SubscriberActive, Source: newsletter.SourceManualAdd, SubscribedAt: now.AddDate(0, 0, -45)},
		{ID: uuid.New(), Email: "james.brown@example.com", Status: newsletter.SubscriberUnsubscribed, Source: "Website", SubscribedAt: now.AddDate(0, -4, 0)},
		{ID: uuid.New(), Email: "lisa.garcia@example.com", Status: newsletter.SubscriberBounced, Source: "Import", SubscribedAt: now.AddDate(0, -6, 0)},
	})
}

func loadCampaigns(store *newsletter.CampaignStore, now time.Time) {
	if store == nil {
		return
	}
	sent1 := now.AddDate(0, 0, -7)
	sent2 := now.AddDate(0, 0, -21)
	scheduled := now.AddDate(0, 0, 3)
	open1, click1 := 42.8, 12.3
	open2, click2 := 38.5, 9.1

	store.Seed([]newsletter.Campaign{
		{
			ID: uuid.New(), Subject: "Product Update: March Release",
			Preheader: "New features you asked for", Status: newsletter.StatusSent,
			Segment: newsletter.SegmentAll, Recipients: 1248,
			SentAt: &sent1, OpenRate: &open1, ClickRate: &click1,
			CreatedAt: sent1.AddDate(0, 0, -2), UpdatedAt: sent1,
		},
		{
			ID: uuid.New(), Subject: "Welcome to the Community",
			Status: newsletter.StatusSent, Segment: newsletter.SegmentNew, Recipients: 89,
			SentAt: &sent2, OpenRate: &open2, ClickRate: &click2,
			CreatedAt: sent2.AddDate(0, 0, -1), UpdatedAt: sent2,
		},
		{
			ID: uuid.New(), Subject: "Spring Sale Preview",
			Status: newsletter.StatusScheduled, Segment: newsletter.SegmentActive,
			Recipients: 1120, ScheduledAt: &scheduled,
			CreatedAt: now.AddDate(0, 0, -1), UpdatedAt: now.AddDate(0, 0, -1),
		},
		{
			ID: uuid.New(), Subject: "April Newsletter Draft",
			Status: newsletter.StatusDraft, Segment: newsletter.SegmentAll, Recipients: 1253,
			CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now,
		},
	})
}

func loadPosts(store *content.BlogStore, now time.Time) {
	if store == nil {
		return
	}
	pub1 := now.AddDate(0, 0, -10)
	pub2 := now.AddDate(0, 0, -30)
	store.Seed([]content.Post{
		{
			ID: uuid.New(), Title: "Getting Started with the Portal", Slug: "getting-started",
			Excerpt: "Everything you need to launch your first project.", Author: "Sarah Chen",
			Tags: []string{"guide", "onboarding"}, Status: content.StatusPublished,
			Views: 3420, ReadMinutes: 5,
			CreatedAt: pub1.AddDate(0, 0, -3), UpdatedAt: pub1, PublishedAt: &pub1,
		},
		{
			ID: uuid.New(), Title: "Design System Deep Dive", Slug: "design-system-deep-dive",
			Excerpt: "How our token-based theming works.", Author: "Mike Jones",
			Tags: []string{"design", "engineering"}, Status: content.StatusPublished,
			Views: 1876, ReadMinutes: 8,
			CreatedAt: pub2.AddDate(0, 0, -5), UpdatedAt: pub2, PublishedAt: &pub2,
		},
		{
			ID: uuid.New(), Title: "Roadmap: What's Next", Slug: "roadmap-whats-next",
			Excerpt: "A look at the quarters ahead.", Author: "Emma Wilson",
			Tags: []string{"announcement"}, Status: content.StatusDraft,
			ReadMinutes: 3, CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now.AddDate(0, 0, -1),
		},
	})
}

func loadUsers(store *users.Store, now time.Time) {
	if store == nil {
		return
	}
	store.Seed([]users.User{
		{ID: uuid.New(), Name: "Sarah Chen", Email: "sarah@portal.dev", Role: users.RoleAdmin, Status: users.StatusActive, LastActiveAt: now.Add(-2 * time.Hour), CreatedAt: now.AddDate(-1, 0, 0)},
		{ID: uuid.New(), Name: "Mike Jones", Email: "mike@portal.dev", Role: users.RoleEditor, Status: users.StatusActive, LastActiveAt: now.AddDate(0, 0, -1), CreatedAt: now.AddDate(0, -8, 0)},
		{ID: uuid.New(), Name: "Emma Wilson", Email: "emma@portal.dev", Role: users.RoleViewer, Status: users.StatusInactive, LastActiveAt: now.AddDate(0, -2, 0), CreatedAt: now.AddDate(0, -10, 0)},
	})
}

func loadShowcases(store *showcase.Store, now time.Time) {
	if store == nil {
		return
	}
	store.Seed([]showcase.Showcase{
		{
			ID: uuid.New(), Title: "TaskFlow", Description: "A kanban board built on the portal API.",
			Author: "devkate", URL: "https://taskflow.example.com",
			Tags: []string{"productivity"}, Status: showcase.StatusApproved,
			SubmittedAt: now.AddDate(0, 0, -14),
		},
		{
			ID: uuid.New(), Title: "WeatherDash", Description: "Live weather dashboards.",
			Author: "stormchaser", URL: "https://weatherdash.example.com",
			Tags: []string{"data-viz"}, Status: showcase.StatusPending,
			SubmittedAt: now.AddDate(0, 0, -2),
		},
	})
}

func loadPlans(store *pricing.Store) {
	if store == nil {
		return
	}
	store.Seed([]pricing.Plan{
		{
			ID: uuid.New(), Name: "Free", Description: "For personal projects",
			Features: []string{"1 project", "Community support"}, CTA: "Get started",
		},
		{
			ID: uuid.New(), Name: "Pro", Description: "For growing teams",
			PriceMonthlyCents: 2900, PriceYearlyCents: 29900, Popular: true,
			Features: []string{"Unlimited projects", "Priority support", "Custom domains"},
			CTA:      "Start free trial",
		},
		{
			ID: uuid.New(), Name: "Enterprise", Description: "For large organizations",
			PriceMonthlyCents: 9900, PriceYearlyCents: 99900,
			Features: []string{"SSO", "Dedicated support", "SLA"},
			CTA:      "Contact sales",
		},
	})
}

func loadNotifications(center *notify.Center, now time.Time) {
	if center == nil {
		return
	}
	center.Seed([]notify.Notification{
		{ID: uuid.New(), Title: "Campaign sent", Description: "\"Product Update: March Release\" went out to 1,248 subscribers.", Variant: notify.VariantSuccess, Read: true, CreatedAt: now.AddDate(0, 0, -7)},
		{ID: uuid.New(), Title: "New showcase submission", Description: "WeatherDash is waiting for review.", Variant: notify.VariantInfo, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: uuid.New(), Title: "Bounce rate warning", Description: "lisa.garcia@example.com hard bounced.", Variant: notify.VariantWarning, CreatedAt: now.AddDate(0, 0, -1)},
	})
}
