package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bulkwave/campaign-engine/internal/models"
)

type webhookEventRepository struct {
	db *sqlx.DB
}

func NewWebhookEventRepository(db *sqlx.DB) WebhookEventRepository {
	return &webhookEventRepository{
		db: db,
	}
}

// Insert stores an inbound event keyed by the provider-supplied event id.
// A replayed delivery hits the conflict clause and reports inserted=false, so
// at-least-once provider retries collapse onto one row and one effect.
func (r *webhookEventRepository) Insert(event *models.WebhookEvent) (bool, error) {
	query := `
		INSERT INTO webhook_events (id, tenant_id, source, event_type, payload, signature_valid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := r.db.Exec(query, event.ID, event.TenantID, event.Source, event.EventType,
		event.Payload, event.SignatureValid, createdAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert webhook event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read webhook event insert result: %w", err)
	}

	return affected == 1, nil
}

func (r *webhookEventRepository) GetByID(id string) (*models.WebhookEvent, error) {
	query := `
		SELECT id, tenant_id, source, event_type, payload, signature_valid, processed_at, created_at
		FROM webhook_events
		WHERE id = $1
	`

	var event models.WebhookEvent
	err := r.db.Get(&event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook event: %w", err)
	}

	return &event, nil
}

// MarkProcessed records that the event's effect was durably applied.
func (r *webhookEventRepository) MarkProcessed(id string, at time.Time) error {
	query := `
		UPDATE webhook_events
		SET processed_at = $2
		WHERE id = $1
	`

	_, err := r.db.Exec(query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event processed: %w", err)
	}

	return nil
}
