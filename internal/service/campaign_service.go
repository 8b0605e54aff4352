package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/repository"
)

// triggerable are the statuses a manual trigger or poll claim may start from.
var triggerable = map[models.CampaignStatus]bool{
	models.CampaignStatusScheduled: true,
	models.CampaignStatusPending:   true,
	models.CampaignStatusQueued:    true,
}

// pausable are the statuses pause may be called from.
var pausable = map[models.CampaignStatus]bool{
	models.CampaignStatusQueued:    true,
	models.CampaignStatusSending:   true,
	models.CampaignStatusScheduled: true,
}

type campaignService struct {
	cfg        *config.Config
	repo       repository.Repository
	dispatcher DispatchService
	runner     *Runner
	logger     *zap.Logger
}

func NewCampaignService(
	cfg *config.Config,
	repo repository.Repository,
	dispatcher DispatchService,
	runner *Runner,
	logger *zap.Logger,
) CampaignService {
	return &campaignService{
		cfg:        cfg,
		repo:       repo,
		dispatcher: dispatcher,
		runner:     runner,
		logger:     logger,
	}
}

// ProcessDueCampaigns is the poll/claim tick. Each due campaign is claimed
// with a conditional update guarded by the status this pass observed; a lost
// claim means another tick or a manual trigger got there first and is counted
// as skipped, not an error.
func (s *campaignService) ProcessDueCampaigns(ctx context.Context) (*TickSummary, error) {
	now := time.Now()

	due, err := s.repo.Campaign().ListDue(now, s.cfg.Scheduler.ClaimBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list due campaigns: %w", err)
	}

	summary := &TickSummary{
		Processed: len(due),
		Timestamp: now,
	}

	if len(due) == 0 {
		return summary, nil
	}

	s.logger.Info("Found due campaigns", zap.Int("count", len(due)))

	for _, campaign := range due {
		claimed, err := s.repo.Campaign().ClaimForSending(campaign.ID, campaign.Status, now)
		if err != nil {
			s.logger.Error("Failed to claim campaign",
				zap.String("campaignID", campaign.ID),
				zap.Error(err))
			summary.Failed++
			continue
		}

		if !claimed {
			s.logger.Info("Campaign already claimed elsewhere, skipping",
				zap.String("campaignID", campaign.ID))
			summary.Skipped++
			continue
		}

		summary.Claimed++
		s.launchDispatch(campaign.ID)
	}

	s.logger.Info("Campaign tick completed",
		zap.Int("processed", summary.Processed),
		zap.Int("claimed", summary.Claimed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

// Trigger starts a campaign right away. Acceptance is returned to the caller
// while the dispatch pass runs under the supervised runner.
func (s *campaignService) Trigger(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	campaign, err := s.getForTenant(tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	if !triggerable[campaign.Status] {
		return nil, &InvalidTransitionError{Action: "trigger", Current: campaign.Status}
	}

	claimed, err := s.repo.Campaign().ClaimForSending(campaign.ID, campaign.Status, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to claim campaign: %w", err)
	}
	if !claimed {
		// Someone moved the campaign between our read and the claim.
		return nil, s.staleTransition("trigger", tenantID, campaignID)
	}

	s.launchDispatch(campaign.ID)

	return s.getForTenant(tenantID, campaignID)
}

// Pause stops the campaign from being picked up by later scheduler passes.
// Per-recipient sends already issued by a running dispatch pass complete on
// their own.
func (s *campaignService) Pause(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	campaign, err := s.getForTenant(tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	if !pausable[campaign.Status] {
		return nil, &InvalidTransitionError{Action: "pause", Current: campaign.Status}
	}

	updated, err := s.repo.Campaign().UpdateStatusIf(campaign.ID, campaign.Status, models.CampaignStatusPaused)
	if err != nil {
		return nil, fmt.Errorf("failed to pause campaign: %w", err)
	}
	if !updated {
		return nil, s.staleTransition("pause", tenantID, campaignID)
	}

	s.logger.Info("Campaign paused",
		zap.String("campaignID", campaign.ID),
		zap.String("from", string(campaign.Status)))

	return s.getForTenant(tenantID, campaignID)
}

// Resume moves a paused campaign back into the scheduler's reach: SCHEDULED
// when its send time is still ahead, QUEUED otherwise.
func (s *campaignService) Resume(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	campaign, err := s.getForTenant(tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Status != models.CampaignStatusPaused {
		return nil, &InvalidTransitionError{Action: "resume", Current: campaign.Status}
	}

	next := models.CampaignStatusQueued
	if campaign.ScheduledAt.Valid && campaign.ScheduledAt.Time.After(time.Now()) {
		next = models.CampaignStatusScheduled
	}

	updated, err := s.repo.Campaign().UpdateStatusIf(campaign.ID, models.CampaignStatusPaused, next)
	if err != nil {
		return nil, fmt.Errorf("failed to resume campaign: %w", err)
	}
	if !updated {
		return nil, s.staleTransition("resume", tenantID, campaignID)
	}

	s.logger.Info("Campaign resumed",
		zap.String("campaignID", campaign.ID),
		zap.String("to", string(next)))

	return s.getForTenant(tenantID, campaignID)
}

func (s *campaignService) Get(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return s.getForTenant(tenantID, campaignID)
}

func (s *campaignService) getForTenant(tenantID, campaignID string) (*models.Campaign, error) {
	campaign, err := s.repo.Campaign().GetForTenant(tenantID, campaignID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return campaign, nil
}

// staleTransition re-reads the row after a lost conditional write so the
// error names the status that actually won.
func (s *campaignService) staleTransition(action, tenantID, campaignID string) error {
	current, err := s.getForTenant(tenantID, campaignID)
	if err != nil {
		return err
	}
	return &InvalidTransitionError{Action: action, Current: current.Status}
}

func (s *campaignService) launchDispatch(campaignID string) {
	s.runner.Go("dispatch:"+campaignID, func(ctx context.Context) error {
		campaign, err := s.repo.Campaign().GetByID(campaignID)
		if err != nil {
			return fmt.Errorf("failed to reload claimed campaign: %w", err)
		}
		return s.dispatcher.Dispatch(ctx, campaign)
	})
}
