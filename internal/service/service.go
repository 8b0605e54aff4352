package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/provider"
	"github.com/bulkwave/campaign-engine/internal/ratelimit"
	"github.com/bulkwave/campaign-engine/internal/repository"
)

// Service bundles every engine service behind one constructor so the server
// entrypoint wires a single dependency.
type Service struct {
	Campaign  CampaignService
	Dispatch  DispatchService
	Webhook   WebhookService
	Retry     RetryService
	Scheduler SchedulerService
	Health    HealthService

	runner *Runner
}

// NewService builds the full engine: circuit-wrapped senders, the send rate
// limiter (redis-backed when redis is configured, in-memory otherwise), and
// the services on top of them.
func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	meta := provider.NewCircuitSender(
		provider.NewMetaSender(&cfg.Providers.Meta, logger),
		&cfg.Providers.Meta.CircuitBreaker, logger)
	bridge := provider.NewCircuitSender(
		provider.NewBridgeSender(&cfg.Providers.Bridge, logger),
		&cfg.Providers.Bridge.CircuitBreaker, logger)
	sms := provider.NewCircuitSender(
		provider.NewSMSSender(&cfg.Providers.SMS, logger),
		&cfg.Providers.SMS.CircuitBreaker, logger)

	registry := provider.NewRegistry()
	registry.Register(models.TransportMeta, meta)
	registry.Register(models.TransportBridge, bridge)
	registry.Register(models.TransportSMS, sms)

	var store ratelimit.Store
	if redisClient != nil {
		store = ratelimit.NewRedisStore(redisClient)
	} else {
		store = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(store, ratelimit.DefaultWindow)

	runner := NewRunner(logger)

	dispatch := NewDispatchService(cfg, repo, registry, limiter, redisClient, logger)
	campaigns := NewCampaignService(cfg, repo, dispatch, runner, logger)
	webhooks := NewWebhookService(cfg, repo, redisClient, logger)
	retries := NewRetryService(cfg, repo, webhooks, logger)
	schedulers := NewSchedulerService(cfg, campaigns, retries, logger)
	health := NewHealthService(repo, redisClient, schedulers,
		[]*provider.CircuitSender{meta, bridge, sms}, logger)

	return &Service{
		Campaign:  campaigns,
		Dispatch:  dispatch,
		Webhook:   webhooks,
		Retry:     retries,
		Scheduler: schedulers,
		Health:    health,
		runner:    runner,
	}
}

// WaitBackground blocks until in-flight background dispatches finish. Called
// during graceful shutdown after the schedulers have stopped.
func (s *Service) WaitBackground() {
	s.runner.Wait()
}
