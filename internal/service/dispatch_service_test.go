package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/provider"
	"github.com/bulkwave/campaign-engine/internal/ratelimit"
	"github.com/bulkwave/campaign-engine/internal/repository/mocks"
)

// fakeSender fails the phone numbers listed in failFor and hands out
// sequential provider ids otherwise.
type fakeSender struct {
	mu      sync.Mutex
	name    string
	failFor map[string]bool
	blankID bool
	sent    []string
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(ctx context.Context, msg provider.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[msg.To] {
		return "", &provider.Error{Provider: f.name, StatusCode: 400, Message: "invalid recipient"}
	}

	f.sent = append(f.sent, msg.To)
	if f.blankID {
		return "", nil
	}
	return "pmid-" + msg.To, nil
}

func dispatchConfig() *config.Config {
	cfg := testConfig()
	cfg.Providers.Meta = config.ProviderConfig{
		URL:            "http://localhost",
		SendsPerMinute: 10000,
	}
	return cfg
}

func TestDispatchService_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	campaigns := mocks.NewMockCampaignRepository(ctrl)
	recipients := mocks.NewMockRecipientRepository(ctrl)
	reports := mocks.NewMockDeliveryReportRepository(ctrl)
	repo.EXPECT().Campaign().Return(campaigns).AnyTimes()
	repo.EXPECT().Recipient().Return(recipients).AnyTimes()
	repo.EXPECT().DeliveryReport().Return(reports).AnyTimes()

	sender := &fakeSender{name: "meta", failFor: map[string]bool{"+55B": true}}
	registry := provider.NewRegistry()
	registry.Register(models.TransportMeta, sender)

	limiter := ratelimit.New(ratelimit.NewMemoryStore(), time.Minute)
	svc := NewDispatchService(dispatchConfig(), repo, registry, limiter, nil, zap.NewNop())

	campaign := &models.Campaign{
		ID:        "c-1",
		TenantID:  "default",
		Transport: models.TransportMeta,
		ListRef:   "list-1",
	}

	list := []models.Recipient{
		{ID: "r-a", Phone: "+55A"},
		{ID: "r-b", Phone: "+55B"},
		{ID: "r-c", Phone: "+55C"},
	}
	recipients.EXPECT().ListByRef("list-1").Return(list, nil)

	for _, r := range list {
		reports.EXPECT().CreateIfAbsent("c-1", r).Return(&models.DeliveryReport{
			ID:     "rep-" + r.ID,
			Status: models.DeliveryStatusPending,
		}, true, nil)
	}

	reports.EXPECT().MarkSent("rep-r-a", "pmid-+55A", gomock.Any()).Return(nil)
	reports.EXPECT().MarkSent("rep-r-c", "pmid-+55C", gomock.Any()).Return(nil)
	reports.EXPECT().MarkFailed("rep-r-b", gomock.Any(), gomock.Any()).Return(nil)

	campaigns.EXPECT().AddCounters("c-1", 1, 0, 0, 0).Return(nil).Times(2)
	campaigns.EXPECT().AddCounters("c-1", 0, 0, 0, 1).Return(nil)
	campaigns.EXPECT().MarkCompleted("c-1", gomock.Any()).Return(nil)

	err := svc.Dispatch(context.Background(), campaign)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"+55A", "+55C"}, sender.sent)
}

func TestDispatchService_SkipsAlreadyAttempted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	campaigns := mocks.NewMockCampaignRepository(ctrl)
	recipients := mocks.NewMockRecipientRepository(ctrl)
	reports := mocks.NewMockDeliveryReportRepository(ctrl)
	repo.EXPECT().Campaign().Return(campaigns).AnyTimes()
	repo.EXPECT().Recipient().Return(recipients).AnyTimes()
	repo.EXPECT().DeliveryReport().Return(reports).AnyTimes()

	sender := &fakeSender{name: "meta"}
	registry := provider.NewRegistry()
	registry.Register(models.TransportMeta, sender)

	limiter := ratelimit.New(ratelimit.NewMemoryStore(), time.Minute)
	svc := NewDispatchService(dispatchConfig(), repo, registry, limiter, nil, zap.NewNop())

	campaign := &models.Campaign{
		ID:        "c-1",
		Transport: models.TransportMeta,
		ListRef:   "list-1",
	}

	already := models.Recipient{ID: "r-done", Phone: "+55D"}
	fresh := models.Recipient{ID: "r-new", Phone: "+55N"}
	recipients.EXPECT().ListByRef("list-1").Return([]models.Recipient{already, fresh}, nil)

	// A re-entered pass finds r-done already sent and leaves it alone.
	reports.EXPECT().CreateIfAbsent("c-1", already).Return(&models.DeliveryReport{
		ID:     "rep-done",
		Status: models.DeliveryStatusSent,
	}, false, nil)
	reports.EXPECT().CreateIfAbsent("c-1", fresh).Return(&models.DeliveryReport{
		ID:     "rep-new",
		Status: models.DeliveryStatusPending,
	}, true, nil)

	reports.EXPECT().MarkSent("rep-new", "pmid-+55N", gomock.Any()).Return(nil)
	campaigns.EXPECT().AddCounters("c-1", 1, 0, 0, 0).Return(nil)
	campaigns.EXPECT().MarkCompleted("c-1", gomock.Any()).Return(nil)

	err := svc.Dispatch(context.Background(), campaign)
	require.NoError(t, err)
	assert.Equal(t, []string{"+55N"}, sender.sent)
}

func TestDispatchService_BlankProviderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	campaigns := mocks.NewMockCampaignRepository(ctrl)
	recipients := mocks.NewMockRecipientRepository(ctrl)
	reports := mocks.NewMockDeliveryReportRepository(ctrl)
	repo.EXPECT().Campaign().Return(campaigns).AnyTimes()
	repo.EXPECT().Recipient().Return(recipients).AnyTimes()
	repo.EXPECT().DeliveryReport().Return(reports).AnyTimes()

	// A gateway that accepts the send but returns no message id still counts
	// as sent; the report stays id-less until a callback backfills it.
	sender := &fakeSender{name: "meta", blankID: true}
	registry := provider.NewRegistry()
	registry.Register(models.TransportMeta, sender)

	limiter := ratelimit.New(ratelimit.NewMemoryStore(), time.Minute)
	svc := NewDispatchService(dispatchConfig(), repo, registry, limiter, nil, zap.NewNop())

	campaign := &models.Campaign{
		ID:        "c-1",
		Transport: models.TransportMeta,
		ListRef:   "list-1",
	}

	r := models.Recipient{ID: "r-a", Phone: "+55A"}
	recipients.EXPECT().ListByRef("list-1").Return([]models.Recipient{r}, nil)
	reports.EXPECT().CreateIfAbsent("c-1", r).Return(&models.DeliveryReport{
		ID:     "rep-a",
		Status: models.DeliveryStatusPending,
	}, true, nil)
	reports.EXPECT().MarkSent("rep-a", "", gomock.Any()).Return(nil)
	campaigns.EXPECT().AddCounters("c-1", 1, 0, 0, 0).Return(nil)
	campaigns.EXPECT().MarkCompleted("c-1", gomock.Any()).Return(nil)

	require.NoError(t, svc.Dispatch(context.Background(), campaign))
}

func TestDispatchService_UnknownTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	recipients := mocks.NewMockRecipientRepository(ctrl)
	repo.EXPECT().Recipient().Return(recipients).AnyTimes()

	recipients.EXPECT().ListByRef(gomock.Any()).Return(nil, nil)

	limiter := ratelimit.New(ratelimit.NewMemoryStore(), time.Minute)
	svc := NewDispatchService(dispatchConfig(), repo, provider.NewRegistry(), limiter, nil, zap.NewNop())

	err := svc.Dispatch(context.Background(), &models.Campaign{
		ID:        "c-1",
		Transport: models.Transport("carrier-pigeon"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sender registered")
}
