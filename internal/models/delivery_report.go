package models

import (
	"database/sql"
	"time"
)

// DeliveryStatus is the per-recipient delivery state. Transitions only move
// forward along pending -> sent -> delivered -> read; failed is reachable from
// any non-terminal state.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusRead      DeliveryStatus = "read"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// deliveryRank orders statuses so a callback arriving out of provider order
// never moves a report backwards.
var deliveryRank = map[DeliveryStatus]int{
	DeliveryStatusPending:   0,
	DeliveryStatusSent:      1,
	DeliveryStatusDelivered: 2,
	DeliveryStatusRead:      3,
	DeliveryStatusFailed:    4,
}

// Rank returns the forward-progress rank of a delivery status.
func (s DeliveryStatus) Rank() int {
	return deliveryRank[s]
}

// Advances reports whether moving to next is a forward transition from s.
func (s DeliveryStatus) Advances(next DeliveryStatus) bool {
	if s == DeliveryStatusFailed || s == DeliveryStatusRead {
		return false
	}
	return next.Rank() > s.Rank()
}

// DeliveryReport tracks one (campaign, recipient) send through its lifetime.
// Rows are never deleted; they are the audit trail for campaign dashboards.
type DeliveryReport struct {
	ID                string         `db:"id" json:"id"`
	CampaignID        string         `db:"campaign_id" json:"campaign_id"`
	RecipientID       string         `db:"recipient_id" json:"recipient_id"`
	RecipientPhone    string         `db:"recipient_phone" json:"recipient_phone"`
	Status            DeliveryStatus `db:"status" json:"status"`
	ProviderMessageID sql.NullString `db:"provider_message_id" json:"provider_message_id,omitempty"`
	LastError         sql.NullString `db:"last_error" json:"last_error,omitempty"`
	SentAt            sql.NullTime   `db:"sent_at" json:"sent_at,omitempty"`
	DeliveredAt       sql.NullTime   `db:"delivered_at" json:"delivered_at,omitempty"`
	ReadAt            sql.NullTime   `db:"read_at" json:"read_at,omitempty"`
	FailedAt          sql.NullTime   `db:"failed_at" json:"failed_at,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}
