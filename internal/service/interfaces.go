package service

import (
	"context"

	"github.com/bulkwave/campaign-engine/internal/models"
)

// CampaignService is the single entry point for campaign-status mutation.
type CampaignService interface {
	// ProcessDueCampaigns claims every due campaign and hands each to the
	// dispatcher in the background. Safe to invoke concurrently with itself.
	ProcessDueCampaigns(ctx context.Context) (*TickSummary, error)

	// Trigger starts one campaign immediately, bypassing its schedule.
	Trigger(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)

	Pause(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)
	Resume(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)
	Get(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)
}

// DispatchService turns one claimed campaign into per-recipient sends.
type DispatchService interface {
	Dispatch(ctx context.Context, campaign *models.Campaign) error
}

// WebhookService ingests provider callbacks and owns the retry surface.
type WebhookService interface {
	Ingest(ctx context.Context, tenantID, source string, body []byte, signatureHeader string) (*IngestResult, error)

	// ProcessEvent re-applies a stored event's effect; used by the retry
	// drain and operator requeue.
	ProcessEvent(ctx context.Context, eventID string) error

	Requeue(ctx context.Context, eventID string) error
	CancelRetries(ctx context.Context, campaignID, source string) (int64, error)
	ListDeadLetters(ctx context.Context, page, limit int) (*DeadLetterList, error)

	// VerifyChallenge answers the Meta webhook subscription handshake.
	VerifyChallenge(mode, verifyToken, challenge string) (string, bool)
}

// RetryService drains due retry jobs, dead-lettering exhausted ones.
type RetryService interface {
	DrainDueJobs(ctx context.Context) error
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth() *HealthStatus
}
