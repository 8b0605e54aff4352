package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/scheduler"
)

type schedulerService struct {
	campaignPoll *scheduler.Scheduler
	retryDrain   *scheduler.Scheduler
	logger       *zap.Logger
}

// NewSchedulerService wires the two periodic loops: the campaign poll that
// claims due campaigns and the retry drain that works the retry queue.
func NewSchedulerService(
	cfg *config.Config,
	campaigns CampaignService,
	retries RetryService,
	logger *zap.Logger,
) SchedulerService {
	pollInterval := time.Duration(cfg.Scheduler.IntervalSeconds) * time.Second
	drainInterval := time.Duration(cfg.Retry.IntervalSeconds) * time.Second

	pollTask := func(ctx context.Context) error {
		summary, err := campaigns.ProcessDueCampaigns(ctx)
		if err != nil {
			return err
		}
		if summary.Processed > 0 {
			logger.Info("Campaign poll tick",
				zap.Int("processed", summary.Processed),
				zap.Int("claimed", summary.Claimed),
				zap.Int("skipped", summary.Skipped),
				zap.Int("failed", summary.Failed))
		}
		return nil
	}

	return &schedulerService{
		campaignPoll: scheduler.NewScheduler("campaign-poll", logger, pollInterval, pollTask),
		retryDrain:   scheduler.NewScheduler("retry-drain", logger, drainInterval, retries.DrainDueJobs),
		logger:       logger,
	}
}

func (s *schedulerService) Start() error {
	if err := s.campaignPoll.Start(context.Background()); err != nil {
		return err
	}
	if err := s.retryDrain.Start(context.Background()); err != nil {
		if stopErr := s.campaignPoll.Stop(); stopErr != nil {
			s.logger.Error("Failed to stop campaign poll after partial start", zap.Error(stopErr))
		}
		return err
	}
	return nil
}

func (s *schedulerService) Stop() error {
	var firstErr error
	if err := s.retryDrain.Stop(); err != nil {
		firstErr = err
	}
	if err := s.campaignPoll.Stop(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *schedulerService) IsRunning() bool {
	return s.campaignPoll.IsRunning() && s.retryDrain.IsRunning()
}
