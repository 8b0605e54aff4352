package repository

import (
	"time"

	"github.com/bulkwave/campaign-engine/internal/models"
)

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	// Campaign returns campaign repository
	Campaign() CampaignRepository

	// Recipient returns recipient repository
	Recipient() RecipientRepository

	// DeliveryReport returns delivery report repository
	DeliveryReport() DeliveryReportRepository

	// WebhookEvent returns webhook event repository
	WebhookEvent() WebhookEventRepository

	// RetryJob returns retry job repository
	RetryJob() RetryJobRepository

	// DeadLetter returns dead letter repository
	DeadLetter() DeadLetterRepository
}

// CampaignRepository owns campaign rows and their lifecycle transitions.
type CampaignRepository interface {
	GetByID(id string) (*models.Campaign, error)
	GetForTenant(tenantID, id string) (*models.Campaign, error)
	ListDue(now time.Time, limit int) ([]*models.Campaign, error)

	// ClaimForSending flips a campaign into SENDING only if its status still
	// equals the previously observed one. Returns false when another claim won.
	ClaimForSending(id string, observed models.CampaignStatus, now time.Time) (bool, error)

	// UpdateStatusIf is the conditional write behind pause/resume.
	UpdateStatusIf(id string, observed, next models.CampaignStatus) (bool, error)

	// AddCounters applies aggregate deltas as in-place increments.
	AddCounters(id string, sent, delivered, read, failed int) error

	MarkCompleted(id string, at time.Time) error
}

// RecipientRepository resolves a campaign's list reference to contacts.
type RecipientRepository interface {
	ListByRef(listRef string) ([]models.Recipient, error)
}

// DeliveryReportRepository tracks per-recipient delivery state.
type DeliveryReportRepository interface {
	// CreateIfAbsent inserts a pending report unless one already exists for
	// the (campaign, recipient) pair. Returns the row and whether it was new.
	CreateIfAbsent(campaignID string, r models.Recipient) (*models.DeliveryReport, bool, error)

	MarkSent(id, providerMessageID string, at time.Time) error
	MarkFailed(id, sendError string, at time.Time) error

	// Advance moves the report matching providerMessageID forward to status.
	// Backwards or repeated transitions are a no-op (advanced=false). Returns
	// ErrNotFound when no report carries that provider message id.
	Advance(providerMessageID string, status models.DeliveryStatus, at time.Time) (report *models.DeliveryReport, advanced bool, err error)

	// FindOrphanSent lists recent sent reports that never got a provider
	// message id back, for callback backfill matching.
	FindOrphanSent(since time.Time, limit int) ([]*models.DeliveryReport, error)

	SetProviderMessageID(id, providerMessageID string) error
	ListByCampaign(campaignID string, offset, limit int) ([]*models.DeliveryReport, error)
}

// WebhookEventRepository persists inbound callbacks idempotently.
type WebhookEventRepository interface {
	// Insert stores the event unless its provider-supplied id was seen
	// before. Returns whether a new row was created.
	Insert(event *models.WebhookEvent) (bool, error)

	GetByID(id string) (*models.WebhookEvent, error)
	MarkProcessed(id string, at time.Time) error
}

// RetryJobRepository holds work re-queued after transient processing failure.
type RetryJobRepository interface {
	Enqueue(job *models.RetryJob) error
	Due(now time.Time, limit int) ([]*models.RetryJob, error)
	Reschedule(id string, attempts int, nextAttemptAt time.Time, lastError string) error
	Delete(id string) error
	DeleteByCampaign(campaignID string) (int64, error)
	DeleteBySource(source string) (int64, error)
}

// DeadLetterRepository is the append-only quarantine for exhausted retries.
type DeadLetterRepository interface {
	Insert(entry *models.DeadLetterEntry) error
	List(offset, limit int) ([]*models.DeadLetterEntry, error)
	Count() (int64, error)
}
