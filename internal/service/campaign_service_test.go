package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/repository"
	"github.com/bulkwave/campaign-engine/internal/repository/mocks"
)

type fakeDispatcher struct {
	mu       sync.Mutex
	campaign []string
	err      error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, campaign *models.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaign = append(f.campaign, campaign.ID)
	return f.err
}

func (f *fakeDispatcher) dispatched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.campaign...)
}

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			IntervalSeconds: 30,
			ClaimBatchSize:  10,
		},
		Dispatcher: config.DispatcherConfig{
			SendConcurrency: 2,
		},
		Retry: config.RetryConfig{
			MaxAttempts:      3,
			BaseDelaySeconds: 2,
			IntervalSeconds:  15,
			BatchSize:        50,
			DrainPerSecond:   100,
		},
	}
}

func newCampaignFixture(t *testing.T) (*mocks.MockRepository, *mocks.MockCampaignRepository, *fakeDispatcher, *Runner, CampaignService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	campaigns := mocks.NewMockCampaignRepository(ctrl)
	repo.EXPECT().Campaign().Return(campaigns).AnyTimes()

	dispatcher := &fakeDispatcher{}
	runner := NewRunner(zap.NewNop())
	svc := NewCampaignService(testConfig(), repo, dispatcher, runner, zap.NewNop())

	return repo, campaigns, dispatcher, runner, svc
}

func TestCampaignService_ProcessDueCampaigns(t *testing.T) {
	_, campaigns, dispatcher, runner, svc := newCampaignFixture(t)

	due := []*models.Campaign{
		{ID: "c-1", Status: models.CampaignStatusQueued},
		{ID: "c-2", Status: models.CampaignStatusScheduled},
		{ID: "c-3", Status: models.CampaignStatusPending},
	}

	campaigns.EXPECT().ListDue(gomock.Any(), 10).Return(due, nil)

	// c-1 and c-3 claim cleanly, c-2 loses its race.
	campaigns.EXPECT().ClaimForSending("c-1", models.CampaignStatusQueued, gomock.Any()).Return(true, nil)
	campaigns.EXPECT().ClaimForSending("c-2", models.CampaignStatusScheduled, gomock.Any()).Return(false, nil)
	campaigns.EXPECT().ClaimForSending("c-3", models.CampaignStatusPending, gomock.Any()).Return(true, nil)

	campaigns.EXPECT().GetByID("c-1").Return(due[0], nil)
	campaigns.EXPECT().GetByID("c-3").Return(due[2], nil)

	summary, err := svc.ProcessDueCampaigns(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Claimed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	runner.Wait()
	assert.ElementsMatch(t, []string{"c-1", "c-3"}, dispatcher.dispatched())
}

func TestCampaignService_ProcessDueCampaigns_Empty(t *testing.T) {
	_, campaigns, dispatcher, runner, svc := newCampaignFixture(t)

	campaigns.EXPECT().ListDue(gomock.Any(), 10).Return(nil, nil)

	summary, err := svc.ProcessDueCampaigns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)

	runner.Wait()
	assert.Empty(t, dispatcher.dispatched())
}

func TestCampaignService_Trigger(t *testing.T) {
	t.Run("triggers a scheduled campaign immediately", func(t *testing.T) {
		_, campaigns, dispatcher, runner, svc := newCampaignFixture(t)

		campaign := &models.Campaign{
			ID:       "c-1",
			TenantID: "default",
			Status:   models.CampaignStatusScheduled,
		}

		campaigns.EXPECT().GetForTenant("default", "c-1").Return(campaign, nil)
		campaigns.EXPECT().ClaimForSending("c-1", models.CampaignStatusScheduled, gomock.Any()).Return(true, nil)
		campaigns.EXPECT().GetByID("c-1").Return(campaign, nil)

		sending := *campaign
		sending.Status = models.CampaignStatusSending
		campaigns.EXPECT().GetForTenant("default", "c-1").Return(&sending, nil)

		result, err := svc.Trigger(context.Background(), "default", "c-1")
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusSending, result.Status)

		runner.Wait()
		assert.Equal(t, []string{"c-1"}, dispatcher.dispatched())
	})

	t.Run("rejects a completed campaign", func(t *testing.T) {
		_, campaigns, _, _, svc := newCampaignFixture(t)

		campaigns.EXPECT().GetForTenant("default", "c-done").Return(&models.Campaign{
			ID:     "c-done",
			Status: models.CampaignStatusCompleted,
		}, nil)

		_, err := svc.Trigger(context.Background(), "default", "c-done")
		require.Error(t, err)
		assert.True(t, IsInvalidTransition(err))
		assert.Contains(t, err.Error(), "COMPLETED")
	})

	t.Run("unknown campaign", func(t *testing.T) {
		_, campaigns, _, _, svc := newCampaignFixture(t)

		campaigns.EXPECT().GetForTenant("default", "nope").Return(nil, repository.ErrNotFound)

		_, err := svc.Trigger(context.Background(), "default", "nope")
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("lost claim reports the winning status", func(t *testing.T) {
		_, campaigns, _, _, svc := newCampaignFixture(t)

		campaigns.EXPECT().GetForTenant("default", "c-1").Return(&models.Campaign{
			ID: "c-1", Status: models.CampaignStatusQueued,
		}, nil)
		campaigns.EXPECT().ClaimForSending("c-1", models.CampaignStatusQueued, gomock.Any()).Return(false, nil)
		campaigns.EXPECT().GetForTenant("default", "c-1").Return(&models.Campaign{
			ID: "c-1", Status: models.CampaignStatusSending,
		}, nil)

		_, err := svc.Trigger(context.Background(), "default", "c-1")
		require.Error(t, err)
		assert.True(t, IsInvalidTransition(err))
		assert.Contains(t, err.Error(), "SENDING")
	})
}

func TestCampaignService_Pause(t *testing.T) {
	tests := []struct {
		name    string
		status  models.CampaignStatus
		allowed bool
	}{
		{"queued can pause", models.CampaignStatusQueued, true},
		{"sending can pause", models.CampaignStatusSending, true},
		{"scheduled can pause", models.CampaignStatusScheduled, true},
		{"completed cannot pause", models.CampaignStatusCompleted, false},
		{"paused cannot pause again", models.CampaignStatusPaused, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, campaigns, _, _, svc := newCampaignFixture(t)

			campaign := &models.Campaign{ID: "c-1", Status: tt.status}
			campaigns.EXPECT().GetForTenant("default", "c-1").Return(campaign, nil)

			if tt.allowed {
				campaigns.EXPECT().UpdateStatusIf("c-1", tt.status, models.CampaignStatusPaused).Return(true, nil)
				paused := *campaign
				paused.Status = models.CampaignStatusPaused
				campaigns.EXPECT().GetForTenant("default", "c-1").Return(&paused, nil)
			}

			result, err := svc.Pause(context.Background(), "default", "c-1")
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, models.CampaignStatusPaused, result.Status)
			} else {
				require.Error(t, err)
				assert.True(t, IsInvalidTransition(err))
			}
		})
	}
}

func TestCampaignService_Resume(t *testing.T) {
	t.Run("future schedule goes back to scheduled", func(t *testing.T) {
		_, campaigns, _, _, svc := newCampaignFixture(t)

		campaign := &models.Campaign{
			ID:          "c-1",
			Status:      models.CampaignStatusPaused,
			ScheduledAt: sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true},
		}

		campaigns.EXPECT().GetForTenant("default", "c-1").Return(campaign, nil)
		campaigns.EXPECT().UpdateStatusIf("c-1", models.CampaignStatusPaused, models.CampaignStatusScheduled).Return(true, nil)

		resumed := *campaign
		resumed.Status = models.CampaignStatusScheduled
		campaigns.EXPECT().GetForTenant("default", "c-1").Return(&resumed, nil)

		result, err := svc.Resume(context.Background(), "default", "c-1")
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusScheduled, result.Status)
	})

	t.Run("elapsed schedule goes straight to queued", func(t *testing.T) {
		_, campaigns, _, _, svc := newCampaignFixture(t)

		campaign := &models.Campaign{
			ID:          "c-1",
			Status:      models.CampaignStatusPaused,
			ScheduledAt: sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true},
		}

		campaigns.EXPECT().GetForTenant("default", "c-1").Return(campaign, nil)
		campaigns.EXPECT().UpdateStatusIf("c-1", models.CampaignStatusPaused, models.CampaignStatusQueued).Return(true, nil)

		resumed := *campaign
		resumed.Status = models.CampaignStatusQueued
		campaigns.EXPECT().GetForTenant("default", "c-1").Return(&resumed, nil)

		result, err := svc.Resume(context.Background(), "default", "c-1")
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusQueued, result.Status)
	})

	t.Run("only paused campaigns resume", func(t *testing.T) {
		_, campaigns, _, _, svc := newCampaignFixture(t)

		campaigns.EXPECT().GetForTenant("default", "c-1").Return(&models.Campaign{
			ID: "c-1", Status: models.CampaignStatusQueued,
		}, nil)

		_, err := svc.Resume(context.Background(), "default", "c-1")
		require.Error(t, err)
		assert.True(t, IsInvalidTransition(err))
	})
}
