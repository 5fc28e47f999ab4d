package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the portal tables if they don't exist. Called once at
// startup when Postgres persistence is enabled.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS portal_subscribers (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			status        TEXT NOT NULL DEFAULT 'active',
			source        TEXT NOT NULL DEFAULT '',
			subscribed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portal_subscribers_status
			ON portal_subscribers (status, subscribed_at)`,
		`CREATE TABLE IF NOT EXISTS portal_campaigns (
			id           UUID PRIMARY KEY,
			subject      TEXT NOT NULL,
			preheader    TEXT,
			html_content TEXT,
			status       TEXT NOT NULL DEFAULT 'draft',
			segment      TEXT NOT NULL DEFAULT 'all',
			recipients   INTEGER NOT NULL DEFAULT 0,
			sent_at      TIMESTAMPTZ,
			scheduled_at TIMESTAMPTZ,
			open_rate    DOUBLE PRECISION,
			click_rate   DOUBLE PRECISION,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portal_campaigns_status
			ON portal_campaigns (status, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS portal_suppressions (
			email      TEXT PRIMARY KEY,
			reason     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
