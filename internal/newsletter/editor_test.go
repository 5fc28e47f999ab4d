package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/portaldev/portal-admin/internal/mailer"
)

type recordedNote struct {
	title, description, variant string
}

type fakeNotifier struct {
	notes []recordedNote
}

func (f *fakeNotifier) Notify(title, description, variant string) {
	f.notes = append(f.notes, recordedNote{title, description, variant})
}

type fakeSuppression struct {
	suppressed map[string]string
	err        error
}

func (f fakeSuppression) IsSuppressed(_ context.Context, email string) (bool, string, error) {
	if f.err != nil {
		return false, "", f.err
	}
	reason, ok := f.suppressed[email]
	return ok, reason, nil
}

func newTestEditor(now time.Time) (*EditorService, *CampaignStore, *fakeNotifier, *mailer.MockSender) {
	subs := testAudience(now)
	campaigns := NewCampaignStore(subs)
	campaigns.setNow(fixedClock(now))

	notifier := &fakeNotifier{}
	sender := mailer.NewMockSender()
	editor := NewEditorService(campaigns, subs, NewTemplateService(), sender, nil, notifier)
	editor.setNow(fixedClock(now))
	return editor, campaigns, notifier, sender
}

func TestEditorSaveDraft(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	editor, campaigns, notifier, _ := newTestEditor(now)

	saved, err := editor.Save(ctx, EditorInput{Subject: "Hello"}, ActionDraft)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Status != StatusDraft {
		t.Errorf("status = %q", saved.Status)
	}

	if list, _ := campaigns.List(ctx); len(list) != 1 {
		t.Errorf("campaign not persisted")
	}
	if len(notifier.notes) != 1 || notifier.notes[0].variant != "success" {
		t.Fatalf("expected one success notification, got %+v", notifier.notes)
	}
	if notifier.notes[0].title != "Draft saved" {
		t.Errorf("title = %q", notifier.notes[0].title)
	}
}

func TestEditorSaveMissingSubject(t *testing.T) {
	ctx := context.Background()
	editor, campaigns, notifier, _ := newTestEditor(time.Now())

	_, err := editor.Save(ctx, EditorInput{Subject: "  "}, ActionSend)
	if !errors.Is(err, ErrSubjectRequired) {
		t.Fatalf("Save = %v, want ErrSubjectRequired", err)
	}

	if list, _ := campaigns.List(ctx); len(list) != 0 {
		t.Errorf("rejected save mutated the store")
	}
	if len(notifier.notes) != 1 || notifier.notes[0].variant != "error" {
		t.Fatalf("expected one error notification, got %+v", notifier.notes)
	}
	if !strings.Contains(notifier.notes[0].description, "subject line") {
		t.Errorf("description = %q", notifier.notes[0].description)
	}
}

func TestEditorSaveScheduleCombinesDateAndTime(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	editor, _, notifier, _ := newTestEditor(now)

	date := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	saved, err := editor.Save(ctx, EditorInput{
		Subject:       "Scheduled",
		ScheduledDate: &date,
		ScheduledTime: "14:30",
	}, ActionSchedule)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := time.Date(2026, 4, 20, 14, 30, 0, 0, time.UTC)
	if saved.ScheduledAt == nil || !saved.ScheduledAt.Equal(want) {
		t.Errorf("ScheduledAt = %v, want %v", saved.ScheduledAt, want)
	}
	if !strings.Contains(notifier.notes[0].description, "Apr 20, 2026 at 14:30") {
		t.Errorf("notification = %q", notifier.notes[0].description)
	}
}

func TestEditorSaveScheduleDefaultsTime(t *testing.T) {
	ctx := context.Background()
	editor, _, _, _ := newTestEditor(time.Now())

	date := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	saved, err := editor.Save(ctx, EditorInput{Subject: "s", ScheduledDate: &date}, ActionSchedule)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ScheduledAt.Hour() != 10 || saved.ScheduledAt.Minute() != 0 {
		t.Errorf("ScheduledAt = %v, want 10:00 default", saved.ScheduledAt)
	}
}

func TestEditorSaveScheduleWithoutDate(t *testing.T) {
	ctx := context.Background()
	editor, campaigns, notifier, _ := newTestEditor(time.Now())

	_, err := editor.Save(ctx, EditorInput{Subject: "s"}, ActionSchedule)
	if !errors.Is(err, ErrScheduleDateRequired) {
		t.Fatalf("Save = %v, want ErrScheduleDateRequired", err)
	}
	if list, _ := campaigns.List(ctx); len(list) != 0 {
		t.Errorf("rejected schedule mutated the store")
	}
	if notifier.notes[0].variant != "error" {
		t.Errorf("expected error notification, got %+v", notifier.notes)
	}
}

func TestEditorSaveInvalidScheduleTime(t *testing.T) {
	ctx := context.Background()
	editor, _, _, _ := newTestEditor(time.Now())

	date := time.Now().AddDate(0, 0, 1)
	for _, clock := range []string{"25:00", "10:61", "noon", "10"} {
		if _, err := editor.Save(ctx, EditorInput{Subject: "s", ScheduledDate: &date, ScheduledTime: clock}, ActionSchedule); err == nil {
			t.Errorf("ScheduledTime %q accepted, want error", clock)
		}
	}
}

func TestEditorEstimateAudience(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	editor, _, _, _ := newTestEditor(now)

	tests := []struct {
		segment Segment
		want    int
	}{
		{SegmentAll, 3},
		{SegmentActive, 2},
		{SegmentNew, 1},
		{Segment(""), 3}, // empty defaults to all
	}
	for _, tt := range tests {
		got, err := editor.EstimateAudience(ctx, tt.segment)
		if err != nil {
			t.Fatalf("EstimateAudience(%q): %v", tt.segment, err)
		}
		if got != tt.want {
			t.Errorf("EstimateAudience(%q) = %d, want %d", tt.segment, got, tt.want)
		}
	}

	if _, err := editor.EstimateAudience(ctx, Segment("vip")); !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("EstimateAudience(vip) = %v, want ErrInvalidSegment", err)
	}
}

func TestEditorSendTest(t *testing.T) {
	ctx := context.Background()
	editor, _, _, sender := newTestEditor(time.Now())

	input := EditorInput{
		Subject:  "Weekly recap",
		BodyHTML: "<p>Hi {{ email }}</p>",
	}
	if err := editor.SendTest(ctx, input, "tester@example.com"); err != nil {
		t.Fatalf("SendTest: %v", err)
	}

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	if sent[0].Subject != "[Test] Weekly recap" {
		t.Errorf("subject = %q", sent[0].Subject)
	}
	if !strings.Contains(sent[0].HTMLBody, "tester@example.com") {
		t.Errorf("body not personalized: %q", sent[0].HTMLBody)
	}
}

func TestEditorSendTestValidation(t *testing.T) {
	ctx := context.Background()
	editor, _, _, sender := newTestEditor(time.Now())

	if err := editor.SendTest(ctx, EditorInput{Subject: "s"}, "not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("bad address = %v, want ErrInvalidEmail", err)
	}
	if err := editor.SendTest(ctx, EditorInput{Subject: "  "}, "a@example.com"); !errors.Is(err, ErrSubjectRequired) {
		t.Errorf("blank subject = %v, want ErrSubjectRequired", err)
	}
	if len(sender.Sent()) != 0 {
		t.Errorf("rejected test sends still delivered mail")
	}
}

func TestEditorSendTestSuppressed(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	subs := testAudience(now)
	campaigns := NewCampaignStore(subs)
	sender := mailer.NewMockSender()
	sup := fakeSuppression{suppressed: map[string]string{"blocked@example.com": "unsubscribed"}}
	editor := NewEditorService(campaigns, subs, NewTemplateService(), sender, sup, nil)

	err := editor.SendTest(ctx, EditorInput{Subject: "s", BodyHTML: "hi"}, "blocked@example.com")
	if err == nil || !strings.Contains(err.Error(), "suppressed") {
		t.Fatalf("SendTest to suppressed address = %v, want suppression error", err)
	}
	if len(sender.Sent()) != 0 {
		t.Errorf("suppressed address still received mail")
	}

	if err := editor.SendTest(ctx, EditorInput{Subject: "s", BodyHTML: "hi"}, "fine@example.com"); err != nil {
		t.Errorf("unsuppressed address rejected: %v", err)
	}
}
