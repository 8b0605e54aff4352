package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/handler"
	"github.com/bulkwave/campaign-engine/internal/middleware"
	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/service"
	"github.com/bulkwave/campaign-engine/internal/service/mocks"
	"github.com/bulkwave/campaign-engine/internal/webhook"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, body []byte) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// serveRequest routes r through the handler with the tenant middleware in
// place, as the server chain does.
func serveRequest(t *testing.T, svc *service.Service, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	middleware.Tenant(handler.NewHandler(svc, zap.NewNop()).Routes()).ServeHTTP(w, r)
	return w
}

func TestHandler_TriggerDueCampaigns(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockCampaignService)
		expectedStatus int
		expectedBody   func(*testing.T, []byte)
	}{
		{
			name: "success",
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().ProcessDueCampaigns(gomock.Any()).Return(&service.TickSummary{
					Processed: 3,
					Claimed:   2,
					Skipped:   1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: func(t *testing.T, body []byte) {
				var summary service.TickSummary
				require.NoError(t, json.Unmarshal(body, &summary))
				assert.Equal(t, 3, summary.Processed)
				assert.Equal(t, 2, summary.Claimed)
				assert.Equal(t, 1, summary.Skipped)
			},
		},
		{
			name: "internal error",
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().ProcessDueCampaigns(gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody: func(t *testing.T, body []byte) {
				assert.Equal(t, middleware.ErrorCodeInternal, decodeError(t, body).Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			campaigns := mocks.NewMockCampaignService(ctrl)
			tt.setupMocks(campaigns)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/trigger", nil)
			w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.expectedBody(t, w.Body.Bytes())
		})
	}
}

func TestHandler_GetCampaign(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Get(gomock.Any(), "acme", "c-1").Return(&models.Campaign{
			ID:       "c-1",
			TenantID: "acme",
			Status:   models.CampaignStatusSending,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/c-1", nil)
		req.Header.Set(middleware.TenantIDHeader, "acme")
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var campaign models.Campaign
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &campaign))
		assert.Equal(t, "c-1", campaign.ID)
		assert.Equal(t, models.CampaignStatusSending, campaign.Status)
	})

	t.Run("missing tenant header uses default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Get(gomock.Any(), middleware.DefaultTenantID, "c-1").
			Return(&models.Campaign{ID: "c-1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/c-1", nil)
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Get(gomock.Any(), gomock.Any(), "ghost").
			Return(nil, service.ErrCampaignNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/ghost", nil)
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "CAMPAIGN_NOT_FOUND", decodeError(t, w.Body.Bytes()).Error)
	})
}

func TestHandler_TriggerCampaign(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Trigger(gomock.Any(), gomock.Any(), "c-1").Return(&models.Campaign{
			ID:     "c-1",
			Status: models.CampaignStatusSending,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/c-1/trigger", nil)
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Trigger(gomock.Any(), gomock.Any(), "c-1").
			Return(nil, &service.InvalidTransitionError{
				Action:  "trigger",
				Current: models.CampaignStatusCompleted,
			})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/c-1/trigger", nil)
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeError(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_TRANSITION", resp.Error)
		assert.Contains(t, resp.Message, "COMPLETED")
	})
}

func TestHandler_PauseResumeCampaign(t *testing.T) {
	t.Run("pause", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Pause(gomock.Any(), gomock.Any(), "c-1").Return(&models.Campaign{
			ID:     "c-1",
			Status: models.CampaignStatusPaused,
		}, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/campaigns/c-1/pause", nil)
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("resume rejected when not paused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		campaigns := mocks.NewMockCampaignService(ctrl)
		campaigns.EXPECT().Resume(gomock.Any(), gomock.Any(), "c-1").
			Return(nil, &service.InvalidTransitionError{
				Action:  "resume",
				Current: models.CampaignStatusQueued,
			})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/campaigns/c-1/resume", nil)
		w := serveRequest(t, &service.Service{Campaign: campaigns}, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_VerifyMetaWebhook(t *testing.T) {
	t.Run("echoes challenge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().VerifyChallenge("subscribe", "verify-me", "12345").Return("12345", true)

		req := httptest.NewRequest(http.MethodGet,
			"/webhooks/meta?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil)
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "12345", w.Body.String())
		assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	})

	t.Run("rejects bad token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().VerifyChallenge("subscribe", "wrong", "12345").Return("", false)

		req := httptest.NewRequest(http.MethodGet,
			"/webhooks/meta?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_ReceiveWebhook(t *testing.T) {
	payload := []byte(`{"object":"whatsapp_business_account","entry":[]}`)

	t.Run("meta callback passes hub signature header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().Ingest(gomock.Any(), "default", "meta", payload, "sha256=abc").
			Return(&service.IngestResult{Events: 1, Valid: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/meta", bytes.NewReader(payload))
		req.Header.Set("X-Hub-Signature-256", "sha256=abc")
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result service.IngestResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 1, result.Events)
		assert.True(t, result.Valid)
	})

	t.Run("tenant header reaches ingest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().Ingest(gomock.Any(), "acme", "meta", payload, "sha256=abc").
			Return(&service.IngestResult{Events: 1, Valid: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/meta", bytes.NewReader(payload))
		req.Header.Set("X-Hub-Signature-256", "sha256=abc")
		req.Header.Set("X-Tenant-ID", "acme")
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other sources use the plain signature header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		body := []byte(`{"messageId":"bm-1","status":"delivered"}`)
		webhooks.EXPECT().Ingest(gomock.Any(), "default", "bridge", body, "cafe").
			Return(&service.IngestResult{Events: 1, Valid: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/bridge", bytes.NewReader(body))
		req.Header.Set("X-Signature-256", "cafe")
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().Ingest(gomock.Any(), "default", "pigeon", gomock.Any(), gomock.Any()).
			Return(nil, webhook.ErrUnknownSource)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/pigeon", bytes.NewReader(payload))
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "UNKNOWN_SOURCE", decodeError(t, w.Body.Bytes()).Error)
	})

	t.Run("malformed payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().Ingest(gomock.Any(), "default", "meta", gomock.Any(), gomock.Any()).
			Return(nil, webhook.ErrMalformedPayload)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/meta", bytes.NewReader([]byte("not json")))
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MALFORMED_PAYLOAD", decodeError(t, w.Body.Bytes()).Error)
	})
}

func TestHandler_RequeueEvent(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().Requeue(gomock.Any(), "evt-1").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/retry",
			bytes.NewReader([]byte(`{"event_id":"evt-1"}`)))
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("missing event_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/retry",
			bytes.NewReader([]byte(`{}`)))
		w := serveRequest(t, &service.Service{}, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w.Body.Bytes()).Error)
	})

	t.Run("event not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().Requeue(gomock.Any(), "ghost").Return(service.ErrEventNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/retry",
			bytes.NewReader([]byte(`{"event_id":"ghost"}`)))
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "EVENT_NOT_FOUND", decodeError(t, w.Body.Bytes()).Error)
	})
}

func TestHandler_CancelRetries(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().CancelRetries(gomock.Any(), "c-1", "").Return(int64(4), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/retry/cancel",
			bytes.NewReader([]byte(`{"campaign_id":"c-1"}`)))
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]int64
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(4), resp["canceled"])
	})

	t.Run("selector validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		webhooks := mocks.NewMockWebhookService(ctrl)
		webhooks.EXPECT().CancelRetries(gomock.Any(), "", "").
			Return(int64(0), errors.New("campaign_id or source is required"))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/retry/cancel",
			bytes.NewReader([]byte(`{}`)))
		w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w.Body.Bytes()).Error)
	})
}

func TestHandler_ListDeadLetters(t *testing.T) {
	ctrl := gomock.NewController(t)
	webhooks := mocks.NewMockWebhookService(ctrl)
	webhooks.EXPECT().ListDeadLetters(gomock.Any(), 2, 10).Return(&service.DeadLetterList{
		Entries:    []*models.DeadLetterEntry{{ID: "dl-1", EventID: "evt-1"}},
		TotalCount: 11,
		Page:       2,
		Limit:      10,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/webhooks/deadletter?page=2&limit=10", nil)
	w := serveRequest(t, &service.Service{Webhook: webhooks}, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list service.DeadLetterList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(11), list.TotalCount)
	assert.Len(t, list.Entries, 1)
}

func TestHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		health         *service.HealthStatus
		expectedStatus int
	}{
		{
			name:           "healthy",
			health:         &service.HealthStatus{Status: service.HealthHealthy},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "degraded still serves 200",
			health:         &service.HealthStatus{Status: service.HealthDegraded},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unhealthy",
			health:         &service.HealthStatus{Status: service.HealthUnhealthy},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			health := mocks.NewMockHealthService(ctrl)
			health.EXPECT().GetHealth().Return(tt.health)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := serveRequest(t, &service.Service{Health: health}, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.health.Status, resp["status"])
			assert.NotEmpty(t, resp["timestamp"])
		})
	}
}
