// Package notify implements the portal's in-app notification center.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification variants
const (
	VariantSuccess = "success"
	VariantError   = "error"
	VariantInfo    = "info"
	VariantWarning = "warning"
)

// Retained notifications beyond this are dropped oldest-first.
const maxRetained = 100

// Notification is a single entry in the center.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Center collects notifications emitted by portal services. Safe for
// concurrent use.
type Center struct {
	mu    sync.RWMutex
	notes []Notification
	now   func() time.Time
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Notify records a notification, newest first, and logs it.
func (c *Center) Notify(title, description, variant string) {
	if variant == "" {
		variant = VariantInfo
	}

	c.mu.Lock()
	n := Notification{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   c.now(),
	}
	c.notes = append([]Notification{n}, c.notes...)
	if len(c.notes) > maxRetained {
		c.notes = c.notes[:maxRetained]
	}
	c.mu.Unlock()

	log.Printf("[notify] %s: %s (%s)", variant, title, description)
}

// List returns a copy of all retained notifications, newest first.
func (c *Center) List() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Notification, len(c.notes))
	copy(out, c.notes)
	return out
}

// Unread returns how many notifications haven't been read yet.
func (c *Center) Unread() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, note := range c.notes {
		if !note.Read {
			n++
		}
	}
	return n
}

// MarkRead flags one notification as read. Unknown IDs are ignored.
func (c *Center) MarkRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.notes {
		if c.notes[i].ID.String() == id {
			c.notes[i].Read = true
			return
		}
	}
}

// MarkAllRead flags everything as read.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.notes {
		c.notes[i].Read = true
	}
}

// Seed loads pre-existing notifications. Intended for startup fixtures.
func (c *Center) Seed(notes []Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, notes...)
}
