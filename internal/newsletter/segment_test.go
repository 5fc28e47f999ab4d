package newsletter

import (
	"testing"
	"time"
)

func TestRecipientCount(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	subs := []Subscriber{
		{Email: "fresh@example.com", Status: SubscriberActive, SubscribedAt: now.AddDate(0, 0, -5)},
		{Email: "veteran@example.com", Status: SubscriberActive, SubscribedAt: now.AddDate(0, -6, 0)},
		{Email: "gone@example.com", Status: SubscriberUnsubscribed, SubscribedAt: now.AddDate(0, 0, -2)},
	}

	tests := []struct {
		name    string
		segment Segment
		want    int
	}{
		{"all counts everyone", SegmentAll, 3},
		{"active excludes unsubscribed", SegmentActive, 2},
		{"new requires active and recent", SegmentNew, 1},
		{"unknown segment counts nothing", Segment("vip"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecipientCount(tt.segment, subs, now); got != tt.want {
				t.Errorf("RecipientCount(%q) = %d, want %d", tt.segment, got, tt.want)
			}
		})
	}
}

func TestRecipientCountWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	exactly := Subscriber{Status: SubscriberActive, SubscribedAt: now.Add(-NewSignupWindow)}
	justOver := Subscriber{Status: SubscriberActive, SubscribedAt: now.Add(-NewSignupWindow - time.Second)}

	if got := RecipientCount(SegmentNew, []Subscriber{exactly}, now); got != 1 {
		t.Errorf("signup exactly on the window edge should count as new, got %d", got)
	}
	if got := RecipientCount(SegmentNew, []Subscriber{justOver}, now); got != 0 {
		t.Errorf("signup past the window should not count as new, got %d", got)
	}
}

func TestRecipientCountEmptyList(t *testing.T) {
	now := time.Now()
	for _, seg := range []Segment{SegmentAll, SegmentActive, SegmentNew} {
		if got := RecipientCount(seg, nil, now); got != 0 {
			t.Errorf("RecipientCount(%q, nil) = %d, want 0", seg, got)
		}
	}
}

func TestRecipientCountDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	subs := []Subscriber{
		{Status: SubscriberActive, SubscribedAt: now.AddDate(0, 0, -10)},
		{Status: SubscriberBounced, SubscribedAt: now.AddDate(0, 0, -1)},
	}

	first := RecipientCount(SegmentNew, subs, now)
	for i := 0; i < 10; i++ {
		if got := RecipientCount(SegmentNew, subs, now); got != first {
			t.Fatalf("count changed between identical calls: %d then %d", first, got)
		}
	}
}
