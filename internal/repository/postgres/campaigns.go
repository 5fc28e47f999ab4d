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

// CampaignRepo implements newsletter.CampaignRepository against PostgreSQL.
// The recipient snapshot is computed in SQL against portal_subscribers at
// save time, mirroring the in-memory store's semantics.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func (r *CampaignRepo) Upsert(ctx context.Context, draft newsletter.CampaignDraft, action newsletter.SaveAction) (*newsletter.Campaign, error) {
	if err := newsletter.ValidateSave(draft, action); err != nil {
		return nil, err
	}

	segment := draft.Segment
	if segment == "" {
		segment = newsletter.SegmentAll
	}

	now := time.Now()
	recipients, err := r.recipientCount(ctx, segment, now)
	if err != nil {
		return nil, err
	}

	c := &newsletter.Campaign{
		ID:          draft.ID,
		Subject:     strings.TrimSpace(draft.Subject),
		Preheader:   draft.Preheader,
		HTMLContent: draft.HTMLContent,
		Status:      newsletter.StatusForAction(action),
		Segment:     segment,
		Recipients:  recipients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch action {
	case newsletter.ActionSend:
		sentAt := now
		c.SentAt = &sentAt
	case newsletter.ActionSchedule:
		at := *draft.ScheduleAt
		c.ScheduledAt = &at
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	// Existing rows keep created_at; sends keep any measured rates, every
	// other transition clears them.
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO portal_campaigns
			(id, subject, preheader, html_content, status, segment, recipients,
			 sent_at, scheduled_at, open_rate, click_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, NULL, $10, $10)
		ON CONFLICT (id) DO UPDATE SET
			subject      = EXCLUDED.subject,
			preheader    = EXCLUDED.preheader,
			html_content = EXCLUDED.html_content,
			status       = EXCLUDED.status,
			segment      = EXCLUDED.segment,
			recipients   = EXCLUDED.recipients,
			sent_at      = EXCLUDED.sent_at,
			scheduled_at = EXCLUDED.scheduled_at,
			open_rate    = CASE WHEN EXCLUDED.status = 'sent' THEN portal_campaigns.open_rate ELSE NULL END,
			click_rate   = CASE WHEN EXCLUDED.status = 'sent' THEN portal_campaigns.click_rate ELSE NULL END,
			updated_at   = EXCLUDED.updated_at
		RETURNING open_rate, click_rate, created_at
	`, c.ID, c.Subject, c.Preheader, c.HTMLContent, c.Status, c.Segment, c.Recipients,
		c.SentAt, c.ScheduledAt, now).Scan(&c.OpenRate, &c.ClickRate, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) recipientCount(ctx context.Context, segment newsletter.Segment, now time.Time) (int, error) {
	q := `SELECT COUNT(*) FROM portal_subscribers`
	args := []interface{}{}
	switch segment {
	case newsletter.SegmentAll:
	case newsletter.SegmentActive:
		q += ` WHERE status = 'active'`
	case newsletter.SegmentNew:
		q += ` WHERE status = 'active' AND subscribed_at >= $1`
		args = append(args, now.Add(-newsletter.NewSignupWindow))
	default:
		return 0, newsletter.ErrInvalidSegment
	}

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipients: %w", err)
	}
	return n, nil
}

func (r *CampaignRepo) Get(ctx context.Context, id string) (*newsletter.Campaign, error) {
	c := &newsletter.Campaign{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, subject, COALESCE(preheader,''), COALESCE(html_content,''),
		       status, segment, recipients, sent_at, scheduled_at,
		       open_rate, click_rate, created_at, updated_at
		FROM portal_campaigns
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Subject, &c.Preheader, &c.HTMLContent,
		&c.Status, &c.Segment, &c.Recipients, &c.SentAt, &c.ScheduledAt,
		&c.OpenRate, &c.ClickRate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, newsletter.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context) ([]newsletter.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject, COALESCE(preheader,''), COALESCE(html_content,''),
		       status, segment, recipients, sent_at, scheduled_at,
		       open_rate, click_rate, created_at, updated_at
		FROM portal_campaigns
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []newsletter.Campaign
	for rows.Next() {
		var c newsletter.Campaign
		if err := rows.Scan(
			&c.ID, &c.Subject, &c.Preheader, &c.HTMLContent,
			&c.Status, &c.Segment, &c.Recipients, &c.SentAt, &c.ScheduledAt,
			&c.OpenRate, &c.ClickRate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CampaignRepo) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM portal_campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove campaign: %w", err)
	}
	return nil
}
