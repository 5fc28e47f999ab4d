// Package postgres provides PostgreSQL-backed implementations of the
// newsletter repositories for deployments that outgrow the in-memory
// stores. Wire with a *sql.DB opened through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/portaldev/portal-admin/internal/newsletter"
)

// SubscriberRepo implements newsletter.SubscriberRepository against PostgreSQL.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

func (r *SubscriberRepo) Add(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newsletter.ErrEmailRequired
	}
	if !newsletter.ValidateEmail(email) {
		return nil, newsletter.ErrInvalidEmail
	}

	sub := &newsletter.Subscriber{
		ID:           uuid.New(),
		Email:        email,
		Status:       newsletter.SubscriberActive,
		Source:       newsletter.SourceManualAdd,
		SubscribedAt: time.Now(),
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portal_subscribers (id, email, status, source, subscribed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Email, sub.Status, sub.Source, sub.SubscribedAt)
	if err != nil {
		return nil, fmt.Errorf("add subscriber: %w", err)
	}
	return sub, nil
}

func (r *SubscriberRepo) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM portal_subscribers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) List(ctx context.Context) ([]newsletter.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, status, source, subscribed_at
		FROM portal_subscribers
		ORDER BY subscribed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func (r *SubscriberRepo) Search(ctx context.Context, query string) ([]newsletter.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, status, source, subscribed_at
		FROM portal_subscribers
		WHERE email ILIKE '%' || $1 || '%'
		ORDER BY subscribed_at DESC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("search subscribers: %w", err)
	}
	defer rows.Close()
	return scanSubscribers(rows)
}

func (r *SubscriberRepo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE portal_subscribers SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("set subscriber status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return newsletter.ErrNotFound
	}
	return nil
}

func scanSubscribers(rows *sql.Rows) ([]newsletter.Subscriber, error) {
	var out []newsletter.Subscriber
	for rows.Next() {
		var s newsletter.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Status, &s.Source, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
