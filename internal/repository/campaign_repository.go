package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bulkwave/campaign-engine/internal/models"
)

const campaignColumns = `
	id, tenant_id, name, channel, transport, status, template_ref, list_ref,
	scheduled_at, sent_count, delivered_count, read_count, failed_count,
	created_at, sent_at, completed_at, updated_at`

type campaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

// GetByID fetches a campaign regardless of tenant, for internal use.
func (r *campaignRepository) GetByID(id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	var campaign models.Campaign
	err := r.db.Get(&campaign, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// GetForTenant fetches a campaign scoped to the requesting tenant. A campaign
// owned by another tenant is indistinguishable from a missing one.
func (r *campaignRepository) GetForTenant(tenantID, id string) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND tenant_id = $2`

	var campaign models.Campaign
	err := r.db.Get(&campaign, query, id, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// ListDue retrieves campaigns ready for dispatch: immediately queued ones plus
// scheduled ones whose send time has arrived.
func (r *campaignRepository) ListDue(now time.Time, limit int) ([]*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE status IN ($1, $2)
		   OR (status = $3 AND scheduled_at <= $4)
		ORDER BY created_at ASC
		LIMIT $5
	`

	var campaigns []*models.Campaign
	err := r.db.Select(&campaigns, query,
		models.CampaignStatusQueued, models.CampaignStatusPending,
		models.CampaignStatusScheduled, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due campaigns: %w", err)
	}

	return campaigns, nil
}

// ClaimForSending is the compare-and-swap that serializes dispatch passes. Two
// concurrent ticks observing the same campaign both attempt the update; the
// WHERE clause guarantees only one sees an affected row.
func (r *campaignRepository) ClaimForSending(id string, observed models.CampaignStatus, now time.Time) (bool, error) {
	query := `
		UPDATE campaigns
		SET status = $3,
		    sent_at = COALESCE(sent_at, $4),
		    updated_at = $4
		WHERE id = $1 AND status = $2
	`

	res, err := r.db.Exec(query, id, observed, models.CampaignStatusSending, now)
	if err != nil {
		return false, fmt.Errorf("failed to claim campaign: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read claim result: %w", err)
	}

	return affected == 1, nil
}

// UpdateStatusIf performs a conditional status write guarded by the status the
// caller last observed.
func (r *campaignRepository) UpdateStatusIf(id string, observed, next models.CampaignStatus) (bool, error) {
	query := `
		UPDATE campaigns
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	res, err := r.db.Exec(query, id, observed, next, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to update campaign status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read status update result: %w", err)
	}

	return affected == 1, nil
}

// AddCounters increments campaign aggregates in place so progress is visible
// while a dispatch pass is still running.
func (r *campaignRepository) AddCounters(id string, sent, delivered, read, failed int) error {
	query := `
		UPDATE campaigns
		SET sent_count = sent_count + $2,
		    delivered_count = delivered_count + $3,
		    read_count = read_count + $4,
		    failed_count = failed_count + $5,
		    updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.Exec(query, id, sent, delivered, read, failed, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add campaign counters: %w", err)
	}

	return nil
}

// MarkCompleted stamps the terminal state after all recipients were attempted.
// Only a SENDING campaign completes; a pause issued mid-pass keeps the row
// PAUSED so the operator's intent survives the finishing dispatch.
func (r *campaignRepository) MarkCompleted(id string, at time.Time) error {
	query := `
		UPDATE campaigns
		SET status = $2, completed_at = $3, updated_at = $3
		WHERE id = $1 AND status = $4
	`

	_, err := r.db.Exec(query, id, models.CampaignStatusCompleted, at, models.CampaignStatusSending)
	if err != nil {
		return fmt.Errorf("failed to mark campaign completed: %w", err)
	}

	return nil
}

type recipientRepository struct {
	db *sqlx.DB
}

func NewRecipientRepository(db *sqlx.DB) RecipientRepository {
	return &recipientRepository{
		db: db,
	}
}

// ListByRef resolves a contact-list reference in insertion order. The order is
// the dispatch order; no prioritization is applied.
func (r *recipientRepository) ListByRef(listRef string) ([]models.Recipient, error) {
	query := `
		SELECT id, phone, name
		FROM recipients
		WHERE list_ref = $1
		ORDER BY created_at ASC, id ASC
	`

	var recipients []models.Recipient
	err := r.db.Select(&recipients, query, listRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipient list: %w", err)
	}

	return recipients, nil
}
