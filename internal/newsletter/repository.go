package newsletter

import "context"

// SubscriberRepository defines the data access contract for subscribers.
// Implementations must be safe for concurrent use.
type SubscriberRepository interface {
	// Add validates and appends a new active subscriber with the given email.
	Add(ctx context.Context, email string) (*Subscriber, error)

	// Remove deletes the subscriber with the given ID. Removing an absent
	// ID is not an error.
	Remove(ctx context.Context, id string) error

	// List returns every subscriber, newest first.
	List(ctx context.Context) ([]Subscriber, error)

	// Search returns subscribers whose email contains the query,
	// case-insensitively. An empty query matches everything.
	Search(ctx context.Context, query string) ([]Subscriber, error)

	// SetStatus updates a subscriber's status. Returns ErrNotFound if the
	// ID doesn't exist.
	SetStatus(ctx context.Context, id, status string) error
}

// CampaignRepository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type CampaignRepository interface {
	// Upsert validates and persists a composed campaign. The status is
	// derived from the action and the recipient count is recomputed from
	// the current subscriber snapshot. Saving an existing ID replaces the
	// record in place; a zero ID creates a new one.
	Upsert(ctx context.Context, draft CampaignDraft, action SaveAction) (*Campaign, error)

	// Get returns a single campaign. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Campaign, error)

	// List returns every campaign, newest first.
	List(ctx context.Context) ([]Campaign, error)

	// Remove deletes a campaign at any status. Removing an absent ID is
	// not an error.
	Remove(ctx context.Context, id string) error
}
