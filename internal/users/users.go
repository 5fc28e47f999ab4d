// Package users manages the portal's admin user accounts.
package users

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrEmailTaken    = errors.New("email already in use")
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("user not found")
)

// User is a portal admin account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Input holds the editable fields of a user.
type Input struct {
	Name  string
	Email string
	Role  string
}

// Store is the in-memory user repository. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	users []User
	now   func() time.Time
}

// NewStore creates an empty user store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

func validRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

func validate(input Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return ErrEmailRequired
	}
	if !validRole(input.Role) {
		return ErrInvalidRole
	}
	return nil
}

// Create adds a new active user.
func (s *Store) Create(input Input) (*User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, ErrEmailTaken
		}
	}

	now := s.now()
	user := User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Role:         input.Role,
		Status:       StatusActive,
		LastActiveAt: now,
		CreatedAt:    now,
	}
	s.users = append([]User{user}, s.users...)
	return &user, nil
}

// Update replaces the editable fields of a user.
func (s *Store) Update(id string, input Input) (*User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID.String() == id {
			s.users[i].Name = strings.TrimSpace(input.Name)
			s.users[i].Email = strings.ToLower(strings.TrimSpace(input.Email))
			s.users[i].Role = input.Role
			cp := s.users[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// SetStatus flips a user between active and inactive.
func (s *Store) SetStatus(id, status string) error {
	if status != StatusActive && status != StatusInactive {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID.String() == id {
			s.users[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a user. Deleting an absent ID is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID.String() == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// Get returns a user by ID.
func (s *Store) Get(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID.String() == id {
			cp := s.users[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns every user, newest first.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Search matches the query against name and email, case-insensitively.
func (s *Store) Search(query string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Name), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out
}

// Touch updates a user's last-active timestamp, e.g. on login.
func (s *Store) Touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID.String() == id {
			s.users[i].LastActiveAt = s.now()
			return
		}
	}
}

// TouchByEmail updates the last-active timestamp of the user with the
// given email, if one exists. Used by the login flow.
func (s *Store) TouchByEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			s.users[i].LastActiveAt = s.now()
			return
		}
	}
}

// Seed loads pre-existing users. Intended for startup fixtures.
func (s *Store) Seed(users []User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
}
