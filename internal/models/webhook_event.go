package models

import (
	"database/sql"
	"time"
)

// WebhookEvent is one inbound provider callback, keyed by the provider's
// event id so replays collapse onto a single row.
type WebhookEvent struct {
	ID             string       `db:"id" json:"id"`
	TenantID       string       `db:"tenant_id" json:"tenant_id"`
	Source         string       `db:"source" json:"source"`
	EventType      string       `db:"event_type" json:"event_type"`
	Payload        []byte       `db:"payload" json:"payload"`
	SignatureValid bool         `db:"signature_valid" json:"signature_valid"`
	ProcessedAt    sql.NullTime `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

// RetryJob re-queues a webhook event whose effect could not be applied yet.
// Deleted on success, converted to a DeadLetterEntry past the attempt ceiling.
type RetryJob struct {
	ID            string         `db:"id" json:"id"`
	EventID       string         `db:"event_id" json:"event_id"`
	CampaignID    sql.NullString `db:"campaign_id" json:"campaign_id,omitempty"`
	Source        string         `db:"source" json:"source"`
	Attempts      int            `db:"attempts" json:"attempts"`
	NextAttemptAt time.Time      `db:"next_attempt_at" json:"next_attempt_at"`
	LastError     sql.NullString `db:"last_error" json:"last_error,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// DeadLetterEntry is a permanently quarantined webhook event. Append-only;
// inspected by operators, never replayed automatically.
type DeadLetterEntry struct {
	ID        string         `db:"id" json:"id"`
	EventID   string         `db:"event_id" json:"event_id"`
	Reason    string         `db:"reason" json:"reason"`
	Attempts  int            `db:"attempts" json:"attempts"`
	LastError sql.NullString `db:"last_error" json:"last_error,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	FailedAt  time.Time      `db:"failed_at" json:"failed_at"`
}
