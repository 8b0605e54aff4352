package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/provider"
	"github.com/bulkwave/campaign-engine/internal/ratelimit"
	"github.com/bulkwave/campaign-engine/internal/repository"
)

type dispatchService struct {
	cfg         *config.Config
	repo        repository.Repository
	registry    *provider.Registry
	limiter     *ratelimit.Limiter
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewDispatchService(
	cfg *config.Config,
	repo repository.Repository,
	registry *provider.Registry,
	limiter *ratelimit.Limiter,
	redisClient *redis.Client,
	logger *zap.Logger,
) DispatchService {
	return &dispatchService{
		cfg:         cfg,
		repo:        repo,
		registry:    registry,
		limiter:     limiter,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Dispatch runs one pass over a claimed campaign's recipient list. Sends run
// under bounded concurrency, each behind a (tenant, provider) limiter permit.
// One recipient failing never aborts the rest; outcomes land incrementally in
// delivery reports and campaign counters, and the pass ends by marking the
// campaign completed.
func (s *dispatchService) Dispatch(ctx context.Context, campaign *models.Campaign) error {
	recipients, err := s.repo.Recipient().ListByRef(campaign.ListRef)
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}

	sender, err := s.registry.For(campaign.Transport)
	if err != nil {
		return err
	}

	providerCfg := s.cfg.Providers.For(sender.Name())
	if providerCfg == nil {
		return fmt.Errorf("no provider config for %q", sender.Name())
	}

	limiterKey := campaign.TenantID + ":" + sender.Name()

	s.logger.Info("Starting campaign dispatch",
		zap.String("campaignID", campaign.ID),
		zap.String("provider", sender.Name()),
		zap.Int("recipients", len(recipients)))

	concurrency := s.cfg.Dispatcher.SendConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		wg      sync.WaitGroup
		sem     = make(chan struct{}, concurrency)
		mu      sync.Mutex
		sent    int
		failed  int
		skipped int
	)

	for _, recipient := range recipients {
		report, created, err := s.repo.DeliveryReport().CreateIfAbsent(campaign.ID, recipient)
		if err != nil {
			s.logger.Error("Failed to prepare delivery report",
				zap.String("campaignID", campaign.ID),
				zap.String("recipientID", recipient.ID),
				zap.Error(err))
			continue
		}

		// A non-pending report means a previous pass already attempted this
		// recipient; re-entry skips it rather than double-sending.
		if !created && report.Status != models.DeliveryStatusPending {
			mu.Lock()
			skipped++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(recipient models.Recipient, reportID string) {
			defer wg.Done()
			defer func() { <-sem }()

			ok := s.sendOne(ctx, campaign, sender, providerCfg, limiterKey, recipient, reportID)

			mu.Lock()
			if ok {
				sent++
			} else {
				failed++
			}
			mu.Unlock()
		}(recipient, report.ID)
	}

	wg.Wait()

	if err := s.repo.Campaign().MarkCompleted(campaign.ID, time.Now()); err != nil {
		return fmt.Errorf("failed to complete campaign: %w", err)
	}

	s.logger.Info("Campaign dispatch completed",
		zap.String("campaignID", campaign.ID),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped))

	return nil
}

// sendOne pushes a single recipient through the limiter and provider, then
// records the outcome. Returns true on a successful hand-off.
func (s *dispatchService) sendOne(
	ctx context.Context,
	campaign *models.Campaign,
	sender provider.Sender,
	providerCfg *config.ProviderConfig,
	limiterKey string,
	recipient models.Recipient,
	reportID string,
) bool {
	if err := s.limiter.Wait(ctx, limiterKey, providerCfg.SendsPerMinute); err != nil {
		s.recordFailure(campaign.ID, reportID, fmt.Sprintf("rate limiter wait aborted: %v", err))
		return false
	}

	providerMessageID, err := sender.Send(ctx, provider.Message{
		TenantID:    campaign.TenantID,
		CampaignID:  campaign.ID,
		To:          recipient.Phone,
		TemplateRef: campaign.TemplateRef,
		Body:        campaign.Name,
	})
	if err != nil {
		s.logger.Error("Send failed",
			zap.String("campaignID", campaign.ID),
			zap.String("recipientID", recipient.ID),
			zap.Error(err))
		s.recordFailure(campaign.ID, reportID, err.Error())
		return false
	}

	if err := s.repo.DeliveryReport().MarkSent(reportID, providerMessageID, time.Now()); err != nil {
		s.logger.Error("Failed to mark delivery report sent",
			zap.String("reportID", reportID),
			zap.Error(err))
		return false
	}

	if err := s.repo.Campaign().AddCounters(campaign.ID, 1, 0, 0, 0); err != nil {
		s.logger.Error("Failed to increment sent counter",
			zap.String("campaignID", campaign.ID),
			zap.Error(err))
	}

	s.cacheProviderMessageID(providerMessageID, reportID)

	return true
}

func (s *dispatchService) recordFailure(campaignID, reportID, sendError string) {
	if err := s.repo.DeliveryReport().MarkFailed(reportID, sendError, time.Now()); err != nil {
		s.logger.Error("Failed to mark delivery report failed",
			zap.String("reportID", reportID),
			zap.Error(err))
	}

	if err := s.repo.Campaign().AddCounters(campaignID, 0, 0, 0, 1); err != nil {
		s.logger.Error("Failed to increment failed counter",
			zap.String("campaignID", campaignID),
			zap.Error(err))
	}
}

// cacheProviderMessageID keeps a provider-id to report-id mapping so callback
// resolution can skip the table scan on the hot path. Best effort; the
// database remains the source of truth.
func (s *dispatchService) cacheProviderMessageID(providerMessageID, reportID string) {
	if s.redisClient == nil || providerMessageID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ttl := time.Duration(s.cfg.Webhook.CacheTTLHours) * time.Hour
	cacheKey := "report:" + providerMessageID

	if err := s.redisClient.Set(ctx, cacheKey, reportID, ttl).Err(); err != nil {
		s.logger.Warn("Failed to cache provider message id",
			zap.String("providerMessageID", providerMessageID),
			zap.Error(err))
	}
}
