package newsletter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubscriberStore is the in-memory subscriber repository. The portal owns
// one per process; all mutations are synchronous and atomic from the
// caller's perspective.
type SubscriberStore struct {
	mu   sync.RWMutex
	subs []Subscriber
	now  func() time.Time
}

// NewSubscriberStore creates an empty subscriber store.
func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{now: time.Now}
}

// Add appends a new subscriber with status "active" and source "Manual Add".
// New records are prepended so the list view shows them first.
func (s *SubscriberStore) Add(_ context.Context, email string) (*Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := Subscriber{
		ID:           uuid.New(),
		Email:        email,
		Status:       SubscriberActive,
		Source:       SourceManualAdd,
		SubscribedAt: s.now(),
	}
	s.subs = append([]Subscriber{sub}, s.subs...)
	return &sub, nil
}

// Remove deletes the subscriber with the given ID if present.
func (s *SubscriberStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.ID.String() == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return nil
		}
	}
	return nil
}

// List returns a copy of every subscriber.
func (s *SubscriberStore) List(_ context.Context) ([]Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Subscriber, len(s.subs))
	copy(out, s.subs)
	return out, nil
}

// Search returns subscribers whose email contains the query,
// case-insensitively. The underlying store is never mutated.
func (s *SubscriberStore) Search(_ context.Context, query string) ([]Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	out := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		if strings.Contains(strings.ToLower(sub.Email), query) {
			out = append(out, sub)
		}
	}
	return out, nil
}

// SetStatus updates a subscriber's status in place.
func (s *SubscriberStore) SetStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subs {
		if s.subs[i].ID.String() == id {
			s.subs[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

// Seed loads pre-existing subscribers without validation. Intended for
// startup fixtures and tests.
func (s *SubscriberStore) Seed(subs []Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, subs...)
}

// ExportCSV serializes the full, unfiltered store for download. Returns
// ErrNoSubscribers when the store is empty.
func (s *SubscriberStore) ExportCSV(ctx context.Context) (*Export, error) {
	subs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, ErrNoSubscribers
	}
	return &Export{
		Filename:    ExportFilename(s.now()),
		ContentType: ExportContentType,
		Data:        MarshalCSV(subs),
	}, nil
}

// setNow overrides the store clock in tests.
func (s *SubscriberStore) setNow(now func() time.Time) {
	s.now = now
}
