// Package showcase manages community showcase submissions and their
// moderation queue.
package showcase

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Moderation statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrURLRequired   = errors.New("url is required")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("showcase not found")
)

// Showcase is a community submission.
type Showcase struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Input holds the fields of a submission.
type Input struct {
	Title       string
	Description string
	Author      string
	URL         string
	Image       string
	Tags        []string
}

// Store is the in-memory showcase repository. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []Showcase
	now   func() time.Time
}

// NewStore creates an empty showcase store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Submit adds a new pending showcase.
func (s *Store) Submit(input Input) (*Showcase, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, ErrURLRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := Showcase{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Author:      input.Author,
		URL:         strings.TrimSpace(input.URL),
		Image:       input.Image,
		Tags:        input.Tags,
		Status:      StatusPending,
		SubmittedAt: s.now(),
	}
	s.items = append([]Showcase{item}, s.items...)
	return &item, nil
}

// SetStatus moves a showcase to approved or rejected.
func (s *Store) SetStatus(id, status string) error {
	if status != StatusApproved && status != StatusRejected && status != StatusPending {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID.String() == id {
			s.items[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a showcase. Deleting an absent ID is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID.String() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// List returns showcases, newest first. An empty status returns everything.
func (s *Store) List(status string) []Showcase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Showcase, 0, len(s.items))
	for _, item := range s.items {
		if status == "" || item.Status == status {
			out = append(out, item)
		}
	}
	return out
}

// Get returns a showcase by ID.
func (s *Store) Get(id string) (*Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID.String() == id {
			cp := s.items[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Seed loads pre-existing showcases. Intended for startup fixtures.
func (s *Store) Seed(items []Showcase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}
