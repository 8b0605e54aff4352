// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"time"
)

// CampaignStatus is a campaign lifecycle state.
type CampaignStatus string

const (
	CampaignStatusScheduled CampaignStatus = "SCHEDULED"
	CampaignStatusQueued    CampaignStatus = "QUEUED"
	CampaignStatusPending   CampaignStatus = "PENDING"
	CampaignStatusSending   CampaignStatus = "SENDING"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
)

// Channel is the outbound channel a campaign sends over.
type Channel string

const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelSMS      Channel = "SMS"
)

// Transport selects the concrete provider for a channel. A WhatsApp campaign
// goes out either through the Meta Cloud API or through a personal-account
// bridge; SMS always uses the gateway.
type Transport string

const (
	TransportMeta   Transport = "meta"
	TransportBridge Transport = "bridge"
	TransportSMS    Transport = "sms"
)

// Campaign represents a bulk-send job in the database.
type Campaign struct {
	ID             string         `db:"id" json:"id"`
	TenantID       string         `db:"tenant_id" json:"tenant_id"`
	Name           string         `db:"name" json:"name"`
	Channel        Channel        `db:"channel" json:"channel"`
	Transport      Transport      `db:"transport" json:"transport"`
	Status         CampaignStatus `db:"status" json:"status"`
	TemplateRef    string         `db:"template_ref" json:"template_ref"`
	ListRef        string         `db:"list_ref" json:"list_ref"`
	ScheduledAt    sql.NullTime   `db:"scheduled_at" json:"scheduled_at,omitempty"`
	SentCount      int            `db:"sent_count" json:"sent_count"`
	DeliveredCount int            `db:"delivered_count" json:"delivered_count"`
	ReadCount      int            `db:"read_count" json:"read_count"`
	FailedCount    int            `db:"failed_count" json:"failed_count"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	SentAt         sql.NullTime   `db:"sent_at" json:"sent_at,omitempty"`
	CompletedAt    sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// Recipient is one contact resolved from a campaign's list reference.
type Recipient struct {
	ID    string `db:"id" json:"id"`
	Phone string `db:"phone" json:"phone"`
	Name  string `db:"name" json:"name"`
}
