// Package suppression maintains the set of addresses that must never be
// mailed again (unsubscribes, hard bounces). The send path consults it
// before every delivery.
//
// Addresses are stored as SHA256 hashes of the normalized email so the raw
// address never leaves the subscriber store.
package suppression

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Suppression reasons
const (
	ReasonUnsubscribed = "unsubscribed"
	ReasonBounced      = "bounced"
	ReasonComplaint    = "complaint"
)

// Store tracks suppressed addresses. Implementations must be safe for
// concurrent use.
type Store interface {
	// Suppress adds an address with the given reason. Re-suppressing
	// updates the reason.
	Suppress(ctx context.Context, email, reason string) error

	// IsSuppressed reports whether the address is suppressed and why.
	IsSuppressed(ctx context.Context, email string) (bool, string, error)

	// Count returns the number of suppressed addresses.
	Count(ctx context.Context) (int64, error)
}

// HashEmail returns the SHA256 hex digest of a lowercased, trimmed email.
func HashEmail(email string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(h[:])
}

// MemoryStore is the in-process suppression set used by default.
type MemoryStore struct {
	mu      sync.RWMutex
	reasons map[string]string // email hash → reason
}

// NewMemoryStore creates an empty in-memory suppression set.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reasons: make(map[string]string)}
}

// Suppress adds the address to the set.
func (s *MemoryStore) Suppress(_ context.Context, email, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reasons[HashEmail(email)] = reason
	return nil
}

// IsSuppressed reports membership and the recorded reason.
func (s *MemoryStore) IsSuppressed(_ context.Context, email string) (bool, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reason, ok := s.reasons[HashEmail(email)]
	return ok, reason, nil
}

// Count returns the set size.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.reasons)), nil
}
