package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bulkwave/campaign-engine/internal/models"
)

const deliveryReportColumns = `
	id, campaign_id, recipient_id, recipient_phone, status, provider_message_id,
	last_error, sent_at, delivered_at, read_at, failed_at, created_at, updated_at`

type deliveryReportRepository struct {
	db *sqlx.DB
}

func NewDeliveryReportRepository(db *sqlx.DB) DeliveryReportRepository {
	return &deliveryReportRepository{
		db: db,
	}
}

// CreateIfAbsent inserts a pending report for the (campaign, recipient) pair.
// The unique constraint makes re-entrant dispatch passes idempotent: a
// conflicting insert is skipped and the existing row returned instead.
func (r *deliveryReportRepository) CreateIfAbsent(campaignID string, recipient models.Recipient) (*models.DeliveryReport, bool, error) {
	insert := `
		INSERT INTO delivery_reports (id, campaign_id, recipient_id, recipient_phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (campaign_id, recipient_id) DO NOTHING
	`

	now := time.Now()
	res, err := r.db.Exec(insert, uuid.New().String(), campaignID, recipient.ID, recipient.Phone, models.DeliveryStatusPending, now)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create delivery report: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read delivery report insert result: %w", err)
	}

	query := `SELECT ` + deliveryReportColumns + ` FROM delivery_reports WHERE campaign_id = $1 AND recipient_id = $2`

	var report models.DeliveryReport
	if err := r.db.Get(&report, query, campaignID, recipient.ID); err != nil {
		return nil, false, fmt.Errorf("failed to load delivery report: %w", err)
	}

	return &report, affected == 1, nil
}

// MarkSent records a successful provider hand-off.
func (r *deliveryReportRepository) MarkSent(id, providerMessageID string, at time.Time) error {
	query := `
		UPDATE delivery_reports
		SET status = $2, provider_message_id = $3, sent_at = $4, updated_at = $4
		WHERE id = $1
	`

	// A gateway may accept a send without returning a message id; NULL keeps
	// the report eligible for callback backfill.
	var msgID sql.NullString
	if providerMessageID != "" {
		msgID = sql.NullString{String: providerMessageID, Valid: true}
	}

	_, err := r.db.Exec(query, id, models.DeliveryStatusSent, msgID, at)
	if err != nil {
		return fmt.Errorf("failed to mark delivery report sent: %w", err)
	}

	return nil
}

// MarkFailed records a send failure. The report keeps the error for audit.
func (r *deliveryReportRepository) MarkFailed(id, sendError string, at time.Time) error {
	query := `
		UPDATE delivery_reports
		SET status = $2, last_error = $3, failed_at = $4, updated_at = $4
		WHERE id = $1
	`

	_, err := r.db.Exec(query, id, models.DeliveryStatusFailed, sendError, at)
	if err != nil {
		return fmt.Errorf("failed to mark delivery report failed: %w", err)
	}

	return nil
}

// Advance applies a provider status callback. The WHERE clause only matches
// statuses that rank strictly below the new one, so replays and out-of-order
// callbacks degrade to a no-op instead of rewinding the report.
func (r *deliveryReportRepository) Advance(providerMessageID string, status models.DeliveryStatus, at time.Time) (*models.DeliveryReport, bool, error) {
	var prior []string
	for _, s := range []models.DeliveryStatus{
		models.DeliveryStatusPending,
		models.DeliveryStatusSent,
		models.DeliveryStatusDelivered,
	} {
		if s.Advances(status) {
			prior = append(prior, string(s))
		}
	}

	stampColumn := map[models.DeliveryStatus]string{
		models.DeliveryStatusSent:      "sent_at",
		models.DeliveryStatusDelivered: "delivered_at",
		models.DeliveryStatusRead:      "read_at",
		models.DeliveryStatusFailed:    "failed_at",
	}[status]

	query := `
		UPDATE delivery_reports
		SET status = $2, ` + stampColumn + ` = $3, updated_at = $3
		WHERE provider_message_id = $1 AND status = ANY($4)
		RETURNING ` + deliveryReportColumns

	var report models.DeliveryReport
	err := r.db.Get(&report, query, providerMessageID, status, at, pq.Array(prior))
	if err == nil {
		return &report, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to advance delivery report: %w", err)
	}

	// No forward transition matched; distinguish "already past that status"
	// from "report unknown".
	lookup := `SELECT ` + deliveryReportColumns + ` FROM delivery_reports WHERE provider_message_id = $1`
	err = r.db.Get(&report, lookup, providerMessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up delivery report: %w", err)
	}

	return &report, false, nil
}

// FindOrphanSent lists recent sent reports without a provider message id.
// Some providers omit the message id in the send response and only reveal it
// in the first status callback; those reports get backfilled by phone match.
func (r *deliveryReportRepository) FindOrphanSent(since time.Time, limit int) ([]*models.DeliveryReport, error) {
	query := `
		SELECT ` + deliveryReportColumns + `
		FROM delivery_reports
		WHERE provider_message_id IS NULL
		  AND status = $1
		  AND sent_at > $2
		ORDER BY sent_at DESC
		LIMIT $3
	`

	var reports []*models.DeliveryReport
	err := r.db.Select(&reports, query, models.DeliveryStatusSent, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find orphan delivery reports: %w", err)
	}

	return reports, nil
}

// SetProviderMessageID backfills the provider message id on an orphan report.
func (r *deliveryReportRepository) SetProviderMessageID(id, providerMessageID string) error {
	query := `
		UPDATE delivery_reports
		SET provider_message_id = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.Exec(query, id, providerMessageID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set provider message id: %w", err)
	}

	return nil
}

// ListByCampaign retrieves delivery reports for one campaign with pagination.
func (r *deliveryReportRepository) ListByCampaign(campaignID string, offset, limit int) ([]*models.DeliveryReport, error) {
	query := `
		SELECT ` + deliveryReportColumns + `
		FROM delivery_reports
		WHERE campaign_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	var reports []*models.DeliveryReport
	err := r.db.Select(&reports, query, campaignID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery reports: %w", err)
	}

	return reports, nil
}
