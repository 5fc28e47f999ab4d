package newsletter

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSubscriberStoreAdd(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	sub, err := store.Add(ctx, "  alice@example.com  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sub.Email != "alice@example.com" {
		t.Errorf("email not trimmed: %q", sub.Email)
	}
	if sub.Status != SubscriberActive {
		t.Errorf("status = %q, want %q", sub.Status, SubscriberActive)
	}
	if sub.Source != SourceManualAdd {
		t.Errorf("source = %q, want %q", sub.Source, SourceManualAdd)
	}

	// New records come first.
	if _, err := store.Add(ctx, "bob@example.com"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	subs, _ := store.List(ctx)
	if len(subs) != 2 || subs[0].Email != "bob@example.com" {
		t.Errorf("newest subscriber should be listed first, got %+v", subs)
	}
}

func TestSubscriberStoreAddValidation(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	tests := []struct {
		name  string
		email string
		want  error
	}{
		{"empty", "", ErrEmailRequired},
		{"whitespace only", "   ", ErrEmailRequired},
		{"missing at", "alice.example.com", ErrInvalidEmail},
		{"missing domain", "alice@", ErrInvalidEmail},
		{"missing tld", "alice@example", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Add(ctx, tt.email); !errors.Is(err, tt.want) {
				t.Errorf("Add(%q) err = %v, want %v", tt.email, err, tt.want)
			}
		})
	}

	// Nothing should have been stored.
	if subs, _ := store.List(ctx); len(subs) != 0 {
		t.Errorf("store mutated by rejected adds: %+v", subs)
	}
}

func TestSubscriberStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	sub, _ := store.Add(ctx, "alice@example.com")
	if err := store.Remove(ctx, sub.ID.String()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if subs, _ := store.List(ctx); len(subs) != 0 {
		t.Errorf("subscriber not removed: %+v", subs)
	}

	// Removing an unknown ID is a no-op, not an error.
	if err := store.Remove(ctx, "does-not-exist"); err != nil {
		t.Errorf("Remove of absent ID: %v", err)
	}
}

func TestSubscriberStoreSearch(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()
	for _, email := range []string{"alice@example.com", "bob@test.org", "carol@example.com"} {
		if _, err := store.Add(ctx, email); err != nil {
			t.Fatalf("Add(%s): %v", email, err)
		}
	}

	got, _ := store.Search(ctx, "EXAMPLE")
	if len(got) != 2 {
		t.Errorf("Search(EXAMPLE) returned %d results, want 2", len(got))
	}

	all, _ := store.Search(ctx, "")
	if len(all) != 3 {
		t.Errorf("empty query should match everything, got %d", len(all))
	}

	none, _ := store.Search(ctx, "zz")
	if len(none) != 0 {
		t.Errorf("Search(zz) returned %d results, want 0", len(none))
	}
}

func TestSubscriberStoreSetStatus(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	sub, _ := store.Add(ctx, "alice@example.com")
	if err := store.SetStatus(ctx, sub.ID.String(), SubscriberUnsubscribed); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	subs, _ := store.List(ctx)
	if subs[0].Status != SubscriberUnsubscribed {
		t.Errorf("status = %q, want %q", subs[0].Status, SubscriberUnsubscribed)
	}

	if err := store.SetStatus(ctx, "missing", SubscriberBounced); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetStatus on absent ID = %v, want ErrNotFound", err)
	}
}

func TestExportCSVEmpty(t *testing.T) {
	store := NewSubscriberStore()
	if _, err := store.ExportCSV(context.Background()); !errors.Is(err, ErrNoSubscribers) {
		t.Errorf("ExportCSV on empty store = %v, want ErrNoSubscribers", err)
	}
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)

	store := NewSubscriberStore()
	store.setNow(fixedClock(now))
	store.Seed([]Subscriber{
		{Email: `quote"y@example.com`, Status: SubscriberActive, Source: "Website", SubscribedAt: now.AddDate(0, 0, -3)},
		{Email: "plain@example.com", Status: SubscriberBounced, Source: SourceManualAdd, SubscribedAt: now.AddDate(0, -1, 0)},
	})

	export, err := store.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	if export.Filename != "subscribers-2026-01-20.csv" {
		t.Errorf("filename = %q", export.Filename)
	}
	if export.ContentType != "text/csv;charset=utf-8;" {
		t.Errorf("content type = %q", export.ContentType)
	}

	lines := strings.Split(export.Data, "\n")
	if lines[0] != "Email,Status,Source,Subscribed At" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], `"quote""y@example.com"`) {
		t.Errorf("internal quotes should be doubled: %q", lines[1])
	}

	// The export must be parseable by a standard CSV reader.
	records, err := csv.NewReader(strings.NewReader(export.Data)).ReadAll()
	if err != nil {
		t.Fatalf("export does not parse as CSV: %v", err)
	}
	if records[1][0] != `quote"y@example.com` {
		t.Errorf("round-tripped email = %q", records[1][0])
	}
	if records[1][3] != "2026-01-17" {
		t.Errorf("round-tripped date = %q, want 2026-01-17", records[1][3])
	}
}

func TestMarshalCSVQuotesEveryField(t *testing.T) {
	out := MarshalCSV([]Subscriber{
		{Email: "a@b.co", Status: SubscriberActive, Source: "Website", SubscribedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
	})
	want := "Email,Status,Source,Subscribed At\n\"a@b.co\",\"active\",\"Website\",\"2026-05-01\""
	if out != want {
		t.Errorf("MarshalCSV =\n%s\nwant\n%s", out, want)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@sub.example.org", "USER@EXAMPLE.COM"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "no-at-sign", "@example.com", "a@b", "a b@example.com", strings.Repeat("x", 70) + "@example.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}
