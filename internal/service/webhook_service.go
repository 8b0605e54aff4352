package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/repository"
	"github.com/bulkwave/campaign-engine/internal/webhook"
)

const (
	orphanLookback   = 24 * time.Hour
	orphanBatchLimit = 200
	phoneSuffixLen   = 8
)

type webhookService struct {
	cfg         *config.Config
	repo        repository.Repository
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewWebhookService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	logger *zap.Logger,
) WebhookService {
	return &webhookService{
		cfg:         cfg,
		repo:        repo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *webhookService) secretFor(source string) string {
	switch source {
	case webhook.SourceMeta:
		return s.cfg.Webhook.MetaAppSecret
	case webhook.SourceBridge:
		return s.cfg.Webhook.BridgeSecret
	case webhook.SourceSMS:
		return s.cfg.Webhook.SMSSecret
	default:
		return ""
	}
}

// Ingest stores and applies one provider callback. The raw event is always
// persisted first, keyed by the provider event id, so replays collapse to a
// duplicate instead of a double count. Events arriving with a bad signature
// are stored flagged and produce no delivery-state effect.
func (s *webhookService) Ingest(ctx context.Context, tenantID, source string, body []byte, signatureHeader string) (*IngestResult, error) {
	events, err := webhook.ParseStatusEvents(source, body)
	if err != nil {
		return nil, err
	}

	valid := webhook.VerifySignature(s.secretFor(source), body, signatureHeader)

	result := &IngestResult{Valid: valid}

	for _, ev := range events {
		record := &models.WebhookEvent{
			ID:             ev.EventID,
			TenantID:       tenantID,
			Source:         ev.Source,
			EventType:      ev.EventType,
			Payload:        body,
			SignatureValid: valid,
		}

		inserted, err := s.repo.WebhookEvent().Insert(record)
		if err != nil {
			return nil, fmt.Errorf("failed to store webhook event: %w", err)
		}
		if !inserted {
			result.Duplicates++
			continue
		}

		result.Events++

		if !valid {
			s.logger.Warn("Webhook event stored with invalid signature",
				zap.String("source", source),
				zap.String("eventID", ev.EventID))
			continue
		}

		if err := s.applyEvent(ctx, ev); err != nil {
			s.enqueueRetry(ev, err)
		}
	}

	return result, nil
}

// applyEvent advances the delivery report a status event refers to and bumps
// campaign counters for the transition that actually happened. Resolution
// falls back from the provider-id index through the redis cache to phone
// suffix matching before giving up.
func (s *webhookService) applyEvent(ctx context.Context, ev webhook.StatusEvent) error {
	report, advanced, err := s.repo.DeliveryReport().Advance(ev.ProviderMessageID, ev.Status, ev.OccurredAt)
	if errors.Is(err, repository.ErrNotFound) {
		report, advanced, err = s.resolveMiss(ctx, ev)
	}
	if err != nil {
		return err
	}

	if advanced {
		if err := s.bumpCounters(report.CampaignID, ev.Status); err != nil {
			s.logger.Error("Failed to update campaign counters",
				zap.String("campaignID", report.CampaignID),
				zap.Error(err))
		}
	}

	if err := s.repo.WebhookEvent().MarkProcessed(ev.EventID, time.Now()); err != nil {
		s.logger.Error("Failed to mark webhook event processed",
			zap.String("eventID", ev.EventID),
			zap.Error(err))
	}

	return nil
}

// resolveMiss handles a callback whose provider message id matches no report:
// a send whose synchronous response never carried an id. The redis cache is
// tried first, then recent id-less sent reports are matched on phone suffix.
func (s *webhookService) resolveMiss(ctx context.Context, ev webhook.StatusEvent) (*models.DeliveryReport, bool, error) {
	if reportID := s.cachedReportID(ctx, ev.ProviderMessageID); reportID != "" {
		if err := s.repo.DeliveryReport().SetProviderMessageID(reportID, ev.ProviderMessageID); err == nil {
			return s.repo.DeliveryReport().Advance(ev.ProviderMessageID, ev.Status, ev.OccurredAt)
		}
	}

	if ev.RecipientPhone != "" {
		orphans, err := s.repo.DeliveryReport().FindOrphanSent(time.Now().Add(-orphanLookback), orphanBatchLimit)
		if err != nil {
			return nil, false, err
		}

		want := phoneSuffix(ev.RecipientPhone)
		for _, orphan := range orphans {
			if want == "" || phoneSuffix(orphan.RecipientPhone) != want {
				continue
			}
			if err := s.repo.DeliveryReport().SetProviderMessageID(orphan.ID, ev.ProviderMessageID); err != nil {
				return nil, false, err
			}
			s.logger.Info("Backfilled provider message id from callback",
				zap.String("reportID", orphan.ID),
				zap.String("providerMessageID", ev.ProviderMessageID))
			return s.repo.DeliveryReport().Advance(ev.ProviderMessageID, ev.Status, ev.OccurredAt)
		}
	}

	return nil, false, fmt.Errorf("no delivery report for provider message %q: %w", ev.ProviderMessageID, repository.ErrNotFound)
}

func (s *webhookService) cachedReportID(ctx context.Context, providerMessageID string) string {
	if s.redisClient == nil || providerMessageID == "" {
		return ""
	}
	reportID, err := s.redisClient.Get(ctx, "report:"+providerMessageID).Result()
	if err != nil {
		return ""
	}
	return reportID
}

// phoneSuffix normalizes a phone number to its trailing digits so numbers
// that differ only in country-code formatting still match.
func phoneSuffix(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) > phoneSuffixLen {
		d = d[len(d)-phoneSuffixLen:]
	}
	return d
}

func (s *webhookService) bumpCounters(campaignID string, status models.DeliveryStatus) error {
	switch status {
	case models.DeliveryStatusSent:
		return s.repo.Campaign().AddCounters(campaignID, 1, 0, 0, 0)
	case models.DeliveryStatusDelivered:
		return s.repo.Campaign().AddCounters(campaignID, 0, 1, 0, 0)
	case models.DeliveryStatusRead:
		return s.repo.Campaign().AddCounters(campaignID, 0, 0, 1, 0)
	case models.DeliveryStatusFailed:
		return s.repo.Campaign().AddCounters(campaignID, 0, 0, 0, 1)
	default:
		return nil
	}
}

func (s *webhookService) enqueueRetry(ev webhook.StatusEvent, cause error) {
	delay := time.Duration(s.cfg.Retry.BaseDelaySeconds) * time.Second

	job := &models.RetryJob{
		ID:            uuid.NewString(),
		EventID:       ev.EventID,
		Source:        ev.Source,
		Attempts:      0,
		NextAttemptAt: time.Now().Add(delay),
	}
	job.LastError.String = cause.Error()
	job.LastError.Valid = true

	if err := s.repo.RetryJob().Enqueue(job); err != nil {
		s.logger.Error("Failed to enqueue retry job",
			zap.String("eventID", ev.EventID),
			zap.Error(err))
		return
	}

	s.logger.Info("Webhook event queued for retry",
		zap.String("eventID", ev.EventID),
		zap.String("source", ev.Source),
		zap.String("cause", cause.Error()))
}

// ProcessEvent re-applies a stored event from its persisted payload. Used by
// the retry drain and by operator requeue, so a failure here must surface to
// the caller instead of re-enqueueing.
func (s *webhookService) ProcessEvent(ctx context.Context, eventID string) error {
	record, err := s.repo.WebhookEvent().GetByID(eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	if !record.SignatureValid {
		return fmt.Errorf("event %s has an invalid signature", eventID)
	}

	events, err := webhook.ParseStatusEvents(record.Source, record.Payload)
	if err != nil {
		return err
	}

	for _, ev := range events {
		if ev.EventID != eventID {
			continue
		}
		return s.applyEvent(ctx, ev)
	}

	return fmt.Errorf("stored payload for event %s no longer yields that event", eventID)
}

// Requeue puts a stored event back on the retry queue as immediately due.
func (s *webhookService) Requeue(ctx context.Context, eventID string) error {
	record, err := s.repo.WebhookEvent().GetByID(eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	job := &models.RetryJob{
		ID:            uuid.NewString(),
		EventID:       record.ID,
		Source:        record.Source,
		Attempts:      0,
		NextAttemptAt: time.Now(),
	}

	if err := s.repo.RetryJob().Enqueue(job); err != nil {
		return fmt.Errorf("failed to enqueue retry job: %w", err)
	}

	s.logger.Info("Webhook event requeued", zap.String("eventID", eventID))
	return nil
}

// CancelRetries drops pending retry jobs in bulk, either for one campaign or
// for a whole callback source. Exactly one selector must be given.
func (s *webhookService) CancelRetries(ctx context.Context, campaignID, source string) (int64, error) {
	switch {
	case campaignID != "" && source != "":
		return 0, errors.New("specify campaign_id or source, not both")
	case campaignID != "":
		return s.repo.RetryJob().DeleteByCampaign(campaignID)
	case source != "":
		return s.repo.RetryJob().DeleteBySource(source)
	default:
		return 0, errors.New("campaign_id or source is required")
	}
}

func (s *webhookService) ListDeadLetters(ctx context.Context, page, limit int) (*DeadLetterList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := s.repo.DeadLetter().List((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.DeadLetter().Count()
	if err != nil {
		return nil, err
	}

	return &DeadLetterList{
		Entries:    entries,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// VerifyChallenge implements the Meta webhook subscription handshake: the
// challenge echoes back only for a subscribe request carrying our token.
func (s *webhookService) VerifyChallenge(mode, verifyToken, challenge string) (string, bool) {
	if mode != "subscribe" || verifyToken == "" {
		return "", false
	}
	if verifyToken != s.cfg.Webhook.MetaVerifyToken {
		return "", false
	}
	return challenge, true
}
