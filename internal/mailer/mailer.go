// Package mailer sends individual emails (test sends and previews) through
// a pluggable provider. Production traffic goes through Amazon SES; tests
// use the in-memory mock.
package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	To        string
	From      string
	Subject   string
	HTMLBody  string
	PlainBody string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
