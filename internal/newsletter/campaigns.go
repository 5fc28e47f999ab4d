package newsletter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubscriberSource supplies the current subscriber snapshot for audience
// counts at save time.
type SubscriberSource interface {
	List(ctx context.Context) ([]Subscriber, error)
}

// CampaignStore is the in-memory campaign repository. Recipient counts are
// denormalized snapshots taken against the subscriber source at save time;
// they do not retroactively update when subscribers change.
type CampaignStore struct {
	mu        sync.RWMutex
	campaigns []Campaign
	subs      SubscriberSource
	now       func() time.Time
}

// NewCampaignStore creates an empty campaign store backed by the given
// subscriber source.
func NewCampaignStore(subs SubscriberSource) *CampaignStore {
	return &CampaignStore{subs: subs, now: time.Now}
}

// ValidateSave checks a composed campaign against the rules shared by all
// repository implementations: the subject is required, and scheduling
// requires a target date.
func ValidateSave(draft CampaignDraft, action SaveAction) error {
	if strings.TrimSpace(draft.Subject) == "" {
		return ErrSubjectRequired
	}
	switch action {
	case ActionDraft, ActionSend:
	case ActionSchedule:
		if draft.ScheduleAt == nil {
			return ErrScheduleDateRequired
		}
	default:
		return ErrInvalidAction
	}
	if draft.Segment != "" && !ValidSegment(draft.Segment) {
		return ErrInvalidSegment
	}
	return nil
}

// StatusForAction maps a save action to the resulting campaign status.
func StatusForAction(action SaveAction) string {
	switch action {
	case ActionSend:
		return StatusSent
	case ActionSchedule:
		return StatusScheduled
	default:
		return StatusDraft
	}
}

// Upsert validates and persists a composed campaign. On validation failure
// the store is left untouched. Saving an existing ID replaces the record in
// place; a zero ID prepends a new record with a fresh identifier, so
// re-saving is idempotent on the identifier.
//
// The resulting record is status-consistent: sending stamps SentAt and
// keeps any previously measured rates, scheduling stamps ScheduledAt, and
// saving back to draft clears all of them.
func (s *CampaignStore) Upsert(ctx context.Context, draft CampaignDraft, action SaveAction) (*Campaign, error) {
	if err := ValidateSave(draft, action); err != nil {
		return nil, err
	}

	segment := draft.Segment
	if segment == "" {
		segment = SegmentAll
	}

	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := Campaign{
		ID:          draft.ID,
		Subject:     strings.TrimSpace(draft.Subject),
		Preheader:   draft.Preheader,
		HTMLContent: draft.HTMLContent,
		Status:      StatusForAction(action),
		Segment:     segment,
		Recipients:  RecipientCount(segment, subs, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var prev *Campaign
	idx := -1
	if draft.ID != uuid.Nil {
		for i := range s.campaigns {
			if s.campaigns[i].ID == draft.ID {
				prev = &s.campaigns[i]
				idx = i
				break
			}
		}
	}

	switch action {
	case ActionSend:
		sentAt := now
		c.SentAt = &sentAt
		// Rates are measured post-send; carry the last measurement forward.
		if prev != nil {
			c.OpenRate = prev.OpenRate
			c.ClickRate = prev.ClickRate
		}
	case ActionSchedule:
		at := *draft.ScheduleAt
		c.ScheduledAt = &at
	}

	if prev != nil {
		c.CreatedAt = prev.CreatedAt
		s.campaigns[idx] = c
	} else {
		c.ID = uuid.New()
		s.campaigns = append([]Campaign{c}, s.campaigns...)
	}
	return &c, nil
}

// Get returns a single campaign by ID.
func (s *CampaignStore) Get(_ context.Context, id string) (*Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.campaigns {
		if s.campaigns[i].ID.String() == id {
			cp := s.campaigns[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns a copy of every campaign, newest first.
func (s *CampaignStore) List(_ context.Context) ([]Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out, nil
}

// Remove deletes a campaign at any status if present.
func (s *CampaignStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.campaigns {
		if s.campaigns[i].ID.String() == id {
			s.campaigns = append(s.campaigns[:i], s.campaigns[i+1:]...)
			return nil
		}
	}
	return nil
}

// Seed loads pre-existing campaigns without validation. Intended for
// startup fixtures and tests.
func (s *CampaignStore) Seed(campaigns []Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, campaigns...)
}

// setNow overrides the store clock in tests.
func (s *CampaignStore) setNow(now func() time.Time) {
	s.now = now
}
