package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
)

// fakeCampaigns counts poll ticks; the other methods never run here.
type fakeCampaigns struct {
	mu    sync.Mutex
	ticks int
}

func (f *fakeCampaigns) ProcessDueCampaigns(ctx context.Context) (*TickSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks++
	return &TickSummary{Timestamp: time.Now()}, nil
}

func (f *fakeCampaigns) Trigger(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaigns) Pause(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaigns) Resume(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaigns) Get(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaigns) tickCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks
}

type fakeRetries struct {
	mu     sync.Mutex
	drains int
}

func (f *fakeRetries) DrainDueJobs(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drains++
	return nil
}

func (f *fakeRetries) drainCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drains
}

func schedulerTestConfig() *config.Config {
	cfg := testConfig()
	cfg.Scheduler.IntervalSeconds = 1
	cfg.Retry.IntervalSeconds = 1
	return cfg
}

func TestSchedulerService_StartStop(t *testing.T) {
	campaigns := &fakeCampaigns{}
	retries := &fakeRetries{}
	svc := NewSchedulerService(schedulerTestConfig(), campaigns, retries, zap.NewNop())

	assert.False(t, svc.IsRunning())

	require.NoError(t, svc.Start())
	assert.True(t, svc.IsRunning())

	// Both loops run their task once immediately on start.
	time.Sleep(100 * time.Millisecond)
	assert.GreaterOrEqual(t, campaigns.tickCount(), 1)
	assert.GreaterOrEqual(t, retries.drainCount(), 1)

	require.NoError(t, svc.Stop())
	assert.False(t, svc.IsRunning())
}

func TestSchedulerService_DoubleStart(t *testing.T) {
	svc := NewSchedulerService(schedulerTestConfig(), &fakeCampaigns{}, &fakeRetries{}, zap.NewNop())

	require.NoError(t, svc.Start())
	defer svc.Stop()

	assert.Error(t, svc.Start())
	assert.True(t, svc.IsRunning())
}

func TestSchedulerService_StopWithoutStart(t *testing.T) {
	svc := NewSchedulerService(schedulerTestConfig(), &fakeCampaigns{}, &fakeRetries{}, zap.NewNop())

	assert.Error(t, svc.Stop())
}
