package newsletter

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/portaldev/portal-admin/internal/mailer"
)

// Default send time for scheduled campaigns when the editor omits one.
const defaultScheduleTime = "10:00"

// Notifier receives editor outcome notifications. The notification center
// implements this; tests use a recording fake.
type Notifier interface {
	Notify(title, description, variant string)
}

// SuppressionChecker gates test sends against the do-not-mail set.
type SuppressionChecker interface {
	IsSuppressed(ctx context.Context, email string) (bool, string, error)
}

// EditorInput is what the campaign editor form submits. ScheduledDate and
// ScheduledTime are combined into a single timestamp when the action is a
// schedule.
type EditorInput struct {
	ID            uuid.UUID
	Subject       string
	Preheader     string
	BodyHTML      string
	Segment       Segment
	ScheduledDate *time.Time
	ScheduledTime string // "15:04", defaults to 10:00
}

// EditorService orchestrates the campaign editor: validation, persistence,
// audience estimates, test sends and outcome notifications.
type EditorService struct {
	campaigns   CampaignRepository
	subscribers SubscriberSource
	templates   *TemplateService
	sender      mailer.Sender
	suppression SuppressionChecker
	notifier    Notifier
	now         func() time.Time
}

// NewEditorService wires the editor. sender, suppression and notifier may be
// nil; the corresponding features degrade gracefully.
func NewEditorService(campaigns CampaignRepository, subscribers SubscriberSource, templates *TemplateService, sender mailer.Sender, suppression SuppressionChecker, notifier Notifier) *EditorService {
	return &EditorService{
		campaigns:   campaigns,
		subscribers: subscribers,
		templates:   templates,
		sender:      sender,
		suppression: suppression,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Save validates the form and persists the campaign through the repository.
// On success a notification is emitted describing what happened; on failure
// the error notification carries the validation message and nothing is
// stored.
func (e *EditorService) Save(ctx context.Context, input EditorInput, action SaveAction) (*Campaign, error) {
	draft := CampaignDraft{
		ID:          input.ID,
		Subject:     strings.TrimSpace(input.Subject),
		Preheader:   input.Preheader,
		HTMLContent: input.BodyHTML,
		Segment:     input.Segment,
	}

	if action == ActionSchedule && input.ScheduledDate != nil {
		at, err := combineDateTime(*input.ScheduledDate, input.ScheduledTime)
		if err != nil {
			e.notifyError("Schedule failed", err.Error())
			return nil, err
		}
		draft.ScheduleAt = &at
	}

	saved, err := e.campaigns.Upsert(ctx, draft, action)
	if err != nil {
		e.notifyError(saveErrorTitle(action), editorMessage(err))
		return nil, err
	}

	switch action {
	case ActionSend:
		e.notifySuccess("Campaign sent", fmt.Sprintf("%q went out to %d subscribers.", saved.Subject, saved.Recipients))
	case ActionSchedule:
		e.notifySuccess("Campaign scheduled", fmt.Sprintf("%q is scheduled for %s.", saved.Subject, saved.ScheduledAt.Format(ScheduleDateFormat)))
	default:
		e.notifySuccess("Draft saved", fmt.Sprintf("%q was saved as a draft.", saved.Subject))
	}
	return saved, nil
}

// EstimateAudience returns the current recipient count for a segment. The
// number is an estimate; the actual count is snapshotted at save time.
func (e *EditorService) EstimateAudience(ctx context.Context, segment Segment) (int, error) {
	if segment == "" {
		segment = SegmentAll
	}
	if !ValidSegment(segment) {
		return 0, ErrInvalidSegment
	}
	subs, err := e.subscribers.List(ctx)
	if err != nil {
		return 0, err
	}
	return RecipientCount(segment, subs, e.now()), nil
}

// SendTest renders the campaign body for a single recipient and delivers it.
// Suppressed addresses are refused before anything is rendered.
func (e *EditorService) SendTest(ctx context.Context, input EditorInput, to string) error {
	if e.sender == nil {
		return fmt.Errorf("test sends are not configured")
	}
	to = strings.TrimSpace(to)
	if !ValidateEmail(to) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(input.Subject) == "" {
		return ErrSubjectRequired
	}

	if e.suppression != nil {
		suppressed, reason, err := e.suppression.IsSuppressed(ctx, to)
		if err != nil {
			return fmt.Errorf("suppression check: %w", err)
		}
		if suppressed {
			return fmt.Errorf("%s is suppressed (%s)", to, reason)
		}
	}

	html := input.BodyHTML
	if e.templates != nil {
		rendered, err := e.templates.RenderForRecipient(input.BodyHTML, input.Subject, input.Preheader, to)
		if err != nil {
			return fmt.Errorf("rendering test message: %w", err)
		}
		html = rendered
	}

	msg := mailer.Message{
		To:       to,
		Subject:  "[Test] " + input.Subject,
		HTMLBody: html,
	}
	if err := e.sender.Send(ctx, msg); err != nil {
		return err
	}
	log.Printf("[editor] test message for %q sent to %s", input.Subject, to)
	return nil
}

// combineDateTime merges a calendar date with an "HH:MM" clock string in the
// date's location.
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	if clock == "" {
		clock = defaultScheduleTime
	}
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func saveErrorTitle(action SaveAction) string {
	switch action {
	case ActionSend:
		return "Send failed"
	case ActionSchedule:
		return "Schedule failed"
	default:
		return "Save failed"
	}
}

// editorMessage maps sentinel errors to the phrasing shown in notifications.
func editorMessage(err error) string {
	switch err {
	case ErrSubjectRequired:
		return "Please add a subject line before saving."
	case ErrScheduleDateRequired:
		return "Pick a date before scheduling the campaign."
	default:
		return err.Error()
	}
}

func (e *EditorService) notifySuccess(title, description string) {
	if e.notifier != nil {
		e.notifier.Notify(title, description, "success")
	}
}

func (e *EditorService) notifyError(title, description string) {
	if e.notifier != nil {
		e.notifier.Notify(title, description, "error")
	}
}

func (e *EditorService) setNow(now func() time.Time) { e.now = now }
