package mailer

import (
	"context"
	"sync"
)

// MockSender records messages instead of sending them. Safe for concurrent
// use in tests.
type MockSender struct {
	mu   sync.Mutex
	sent []Message

	// Err, when set, is returned by every Send call.
	Err error
}

// NewMockSender creates an empty mock.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the message.
func (m *MockSender) Send(_ context.Context, msg Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of everything recorded so far.
func (m *MockSender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
