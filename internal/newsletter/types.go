// Package newsletter implements the campaign and subscriber management core
// of the portal: in-memory stores, segment-based audience resolution,
// campaign analytics, and the editor orchestration that ties them together.
package newsletter

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscriber status constants
const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
	SubscriberBounced      = "bounced"
)

// Campaign status constants
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
)

// Subscriber source label for manually added records
const SourceManualAdd = "Manual Add"

// SaveAction selects how a campaign is persisted from the editor.
type SaveAction string

const (
	ActionDraft    SaveAction = "draft"
	ActionSend     SaveAction = "send"
	ActionSchedule SaveAction = "schedule"
)

// Segment is a named rule partitioning the subscriber list, used to
// estimate campaign audience size.
type Segment string

const (
	SegmentAll    Segment = "all"
	SegmentActive Segment = "active"
	SegmentNew    Segment = "new"
)

// Validation and lookup errors surfaced to callers. Handlers map these to
// 400/404 responses; the editor surfaces them as destructive notifications.
var (
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrSubjectRequired      = errors.New("subject line is required")
	ErrScheduleDateRequired = errors.New("a date is required for scheduling")
	ErrInvalidAction        = errors.New("invalid save action")
	ErrInvalidSegment       = errors.New("invalid segment")
	ErrNoSubscribers        = errors.New("no subscribers to export")
	ErrNotFound             = errors.New("not found")
)

// Subscriber represents a newsletter subscriber record.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Campaign represents a single newsletter send unit.
//
// Records are kept status-consistent: SentAt and the open/click rates are
// populated only while Status is "sent", and ScheduledAt only while Status
// is "scheduled". Recipients is a snapshot of how many subscribers matched
// the segment at save time, not a live reference.
type Campaign struct {
	ID          uuid.UUID  `json:"id"`
	Subject     string     `json:"subject"`
	Preheader   string     `json:"preheader,omitempty"`
	HTMLContent string     `json:"html_content,omitempty"`
	Status      string     `json:"status"`
	Segment     Segment    `json:"segment"`
	Recipients  int        `json:"recipients"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	OpenRate    *float64   `json:"open_rate,omitempty"`
	ClickRate   *float64   `json:"click_rate,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CampaignDraft holds the editable fields of a campaign as composed in the
// editor. A zero ID means a new campaign.
type CampaignDraft struct {
	ID          uuid.UUID
	Subject     string
	Preheader   string
	HTMLContent string
	Segment     Segment
	ScheduleAt  *time.Time
}

// Display formats used by the list views. The stores keep real timestamps;
// formatting happens at the presentation edge.
const (
	SendDateFormat     = "Jan 2, 2006"
	ScheduleDateFormat = "Jan 2, 2006 at 15:04"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address looks like a deliverable email.
// Local parts longer than 64 characters are rejected per RFC 5321.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 254 {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at > 64 {
		return false
	}
	return emailPattern.MatchString(email)
}

// ValidSegment reports whether s is one of the known segments.
func ValidSegment(s Segment) bool {
	switch s {
	case SegmentAll, SegmentActive, SegmentNew:
		return true
	}
	return false
}
