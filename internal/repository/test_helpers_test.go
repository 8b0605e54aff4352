package repository_test

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bulkwave/campaign-engine/internal/models"
)

func insertTestCampaign(db *sqlx.DB, status models.CampaignStatus, scheduledAt *time.Time) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO campaigns (id, tenant_id, name, channel, transport, status, template_ref, list_ref, scheduled_at)
		VALUES ($1, 'default', $2, 'WHATSAPP', 'meta', $3, 'tpl-welcome', $4, $5)
	`

	_, err := db.Exec(query, id, "Test campaign "+id[:8], status, "list-"+id[:8], scheduledAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert test campaign: %w", err)
	}

	return id, nil
}

func insertTestRecipients(db *sqlx.DB, listRef string, count int) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.NewString()
		_, err := db.Exec(`
			INSERT INTO recipients (id, list_ref, phone, name, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, id, listRef, fmt.Sprintf("+55119900%04d", i), fmt.Sprintf("Recipient %d", i),
			time.Now().Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return nil, fmt.Errorf("failed to insert test recipient %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertTestReport(db *sqlx.DB, campaignID string, status models.DeliveryStatus, providerMessageID *string) (string, error) {
	id := uuid.NewString()
	now := time.Now()

	var sentAt *time.Time
	if status != models.DeliveryStatusPending {
		sentAt = &now
	}

	_, err := db.Exec(`
		INSERT INTO delivery_reports (id, campaign_id, recipient_id, recipient_phone, status, provider_message_id, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, id, campaignID, uuid.NewString(), "+5511990001234", status, providerMessageID, sentAt, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert test delivery report: %w", err)
	}

	return id, nil
}

func insertTestEvent(db *sqlx.DB, eventID, source string, signatureValid bool) error {
	_, err := db.Exec(`
		INSERT INTO webhook_events (id, tenant_id, source, event_type, payload, signature_valid, created_at)
		VALUES ($1, 'default', $2, 'message_status', '{}'::bytea, $3, $4)
	`, eventID, source, signatureValid, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert test webhook event: %w", err)
	}
	return nil
}

func ptr(s string) *string {
	return &s
}
