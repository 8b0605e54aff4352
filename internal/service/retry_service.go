package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/repository"
)

type retryService struct {
	cfg      *config.Config
	repo     repository.Repository
	webhooks WebhookService
	pacer    *rate.Limiter
	logger   *zap.Logger
}

func NewRetryService(
	cfg *config.Config,
	repo repository.Repository,
	webhooks WebhookService,
	logger *zap.Logger,
) RetryService {
	perSecond := cfg.Retry.DrainPerSecond
	if perSecond <= 0 {
		perSecond = 10
	}

	return &retryService{
		cfg:      cfg,
		repo:     repo,
		webhooks: webhooks,
		pacer:    rate.NewLimiter(rate.Limit(perSecond), perSecond),
		logger:   logger,
	}
}

// DrainDueJobs runs one pass over due retry jobs. Each job re-applies its
// stored event; success removes the job, failure backs it off exponentially,
// and a job at the attempt ceiling moves to the dead letter table instead.
func (s *retryService) DrainDueJobs(ctx context.Context) error {
	now := time.Now()

	jobs, err := s.repo.RetryJob().Due(now, s.cfg.Retry.BatchSize)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	var succeeded, rescheduled, deadLettered int

	for _, job := range jobs {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}

		if err := s.webhooks.ProcessEvent(ctx, job.EventID); err != nil {
			s.handleFailure(job, err)
			if job.Attempts+1 >= s.cfg.Retry.MaxAttempts {
				deadLettered++
			} else {
				rescheduled++
			}
			continue
		}

		if err := s.repo.RetryJob().Delete(job.ID); err != nil {
			s.logger.Error("Failed to delete completed retry job",
				zap.String("jobID", job.ID),
				zap.Error(err))
			continue
		}
		succeeded++
	}

	s.logger.Info("Retry drain pass finished",
		zap.Int("due", len(jobs)),
		zap.Int("succeeded", succeeded),
		zap.Int("rescheduled", rescheduled),
		zap.Int("deadLettered", deadLettered))

	return nil
}

// handleFailure either backs a job off or quarantines it. Attempts counts
// completed tries, so the job dead-letters once this failure reaches the
// configured ceiling.
func (s *retryService) handleFailure(job *models.RetryJob, cause error) {
	attempts := job.Attempts + 1

	if attempts >= s.cfg.Retry.MaxAttempts {
		now := time.Now()
		entry := &models.DeadLetterEntry{
			ID:        uuid.NewString(),
			EventID:   job.EventID,
			Reason:    "retry attempts exhausted",
			Attempts:  attempts,
			CreatedAt: now,
			FailedAt:  now,
		}
		entry.LastError.String = cause.Error()
		entry.LastError.Valid = true

		if err := s.repo.DeadLetter().Insert(entry); err != nil {
			s.logger.Error("Failed to dead-letter retry job",
				zap.String("jobID", job.ID),
				zap.String("eventID", job.EventID),
				zap.Error(err))
			return
		}
		if err := s.repo.RetryJob().Delete(job.ID); err != nil {
			s.logger.Error("Failed to delete dead-lettered retry job",
				zap.String("jobID", job.ID),
				zap.Error(err))
		}

		s.logger.Warn("Webhook event dead-lettered",
			zap.String("eventID", job.EventID),
			zap.Int("attempts", attempts),
			zap.String("lastError", cause.Error()))
		return
	}

	delay := s.backoff(attempts)
	if err := s.repo.RetryJob().Reschedule(job.ID, attempts, time.Now().Add(delay), cause.Error()); err != nil {
		s.logger.Error("Failed to reschedule retry job",
			zap.String("jobID", job.ID),
			zap.Error(err))
		return
	}

	s.logger.Info("Retry job rescheduled",
		zap.String("eventID", job.EventID),
		zap.Int("attempts", attempts),
		zap.Duration("delay", delay))
}

// backoff doubles the base delay per completed attempt: base, 2*base, 4*base.
func (s *retryService) backoff(attempts int) time.Duration {
	base := time.Duration(s.cfg.Retry.BaseDelaySeconds) * time.Second
	if base <= 0 {
		base = time.Minute
	}
	return base << (attempts - 1)
}
