package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SuppressionRepo implements suppression.Store against PostgreSQL, keeping
// the do-not-mail set durable alongside the subscriber data.
type SuppressionRepo struct{ db *sql.DB }

// NewSuppressionRepo creates a Postgres-backed suppression store.
func NewSuppressionRepo(db *sql.DB) *SuppressionRepo { return &SuppressionRepo{db: db} }

// Suppress records the address with its reason. Re-suppressing updates the
// reason in place.
func (r *SuppressionRepo) Suppress(ctx context.Context, email, reason string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portal_suppressions (email, reason, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO UPDATE SET reason = EXCLUDED.reason
	`, email, reason)
	if err != nil {
		return fmt.Errorf("suppress: %w", err)
	}
	return nil
}

// IsSuppressed reports whether the address is in the set, and why.
func (r *SuppressionRepo) IsSuppressed(ctx context.Context, email string) (bool, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var reason string
	err := r.db.QueryRowContext(ctx,
		`SELECT reason FROM portal_suppressions WHERE email = $1`,
		email,
	).Scan(&reason)
	if err == sql.ErrNoRows {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("suppression lookup: %w", err)
	}
	return true, reason, nil
}

// Count returns the size of the suppression set.
func (r *SuppressionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM portal_suppressions`).Scan(&n)
	return n, err
}
