// Package handler provides HTTP request handlers for the application.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/middleware"
	"github.com/bulkwave/campaign-engine/internal/service"
	"github.com/bulkwave/campaign-engine/internal/webhook"
)

const (
	errorCodeValidation        = "VALIDATION_ERROR"
	errorCodeCampaignNotFound  = "CAMPAIGN_NOT_FOUND"
	errorCodeEventNotFound     = "EVENT_NOT_FOUND"
	errorCodeInvalidTransition = "INVALID_TRANSITION"
	errorCodeUnknownSource     = "UNKNOWN_SOURCE"
	errorCodeMalformedPayload  = "MALFORMED_PAYLOAD"
)

const (
	errorMessageCampaignNotFound = "Campaign not found"
	errorMessageEventNotFound    = "Webhook event not found"
	errorMessageTickFailed       = "Failed to process due campaigns"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Routes mounts every API route on a fresh chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns/trigger", h.TriggerDueCampaigns)
		r.Route("/campaigns/{campaignID}", func(r chi.Router) {
			r.Get("/", h.GetCampaign)
			r.Post("/trigger", h.TriggerCampaign)
			r.Put("/pause", h.PauseCampaign)
			r.Put("/resume", h.ResumeCampaign)
		})

		r.Post("/webhooks/retry", h.RequeueEvent)
		r.Post("/webhooks/retry/cancel", h.CancelRetries)
		r.Get("/webhooks/deadletter", h.ListDeadLetters)
	})

	r.Get("/webhooks/meta", h.VerifyMetaWebhook)
	r.Post("/webhooks/{source}", h.ReceiveWebhook)

	r.Get("/health", h.HealthCheck)

	return r
}

// TriggerDueCampaigns runs one claim pass immediately, outside the scheduler.
func (h *Handler) TriggerDueCampaigns(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Campaign.ProcessDueCampaigns(r.Context())
	if err != nil {
		h.logger.Error("Manual tick failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageTickFailed)
		return
	}

	render.JSON(w, r, summary)
}

func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.Campaign.Get(r.Context(),
		middleware.GetTenantID(r.Context()), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.sendCampaignError(w, r, err)
		return
	}

	render.JSON(w, r, campaign)
}

func (h *Handler) TriggerCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.Campaign.Trigger(r.Context(),
		middleware.GetTenantID(r.Context()), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.sendCampaignError(w, r, err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, campaign)
}

func (h *Handler) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.Campaign.Pause(r.Context(),
		middleware.GetTenantID(r.Context()), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.sendCampaignError(w, r, err)
		return
	}

	render.JSON(w, r, campaign)
}

func (h *Handler) ResumeCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.Campaign.Resume(r.Context(),
		middleware.GetTenantID(r.Context()), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.sendCampaignError(w, r, err)
		return
	}

	render.JSON(w, r, campaign)
}

// VerifyMetaWebhook answers Meta's subscription handshake with the echoed
// challenge, or 403 when the verify token does not match.
func (h *Handler) VerifyMetaWebhook(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	challenge, ok := h.service.Webhook.VerifyChallenge(
		query.Get("hub.mode"),
		query.Get("hub.verify_token"),
		query.Get("hub.challenge"))
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(challenge)); err != nil {
		h.logger.Error("Failed to write handshake challenge", zap.Error(err))
	}
}

// ReceiveWebhook ingests one provider callback. The response is 200 even for
// replays so providers stop re-delivering; only an unreadable payload or an
// unknown source is rejected.
func (h *Handler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")

	body, err := readBody(r)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeMalformedPayload, "Failed to read request body")
		return
	}

	result, err := h.service.Webhook.Ingest(r.Context(), middleware.GetTenantID(r.Context()), source, body, signatureHeader(r, source))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrUnknownSource):
			h.sendError(w, r, http.StatusNotFound, errorCodeUnknownSource, err.Error())
		case errors.Is(err, webhook.ErrMalformedPayload):
			h.sendError(w, r, http.StatusBadRequest, errorCodeMalformedPayload, err.Error())
		default:
			h.logger.Error("Webhook ingest failed",
				zap.String("source", source),
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.Error(err))
			h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, "Failed to ingest webhook")
		}
		return
	}

	render.JSON(w, r, result)
}

type requeueRequest struct {
	EventID string `json:"event_id"`
}

func (h *Handler) RequeueEvent(w http.ResponseWriter, r *http.Request) {
	var req requeueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EventID == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "event_id is required")
		return
	}

	if err := h.service.Webhook.Requeue(r.Context(), req.EventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			h.sendError(w, r, http.StatusNotFound, errorCodeEventNotFound, errorMessageEventNotFound)
			return
		}
		h.logger.Error("Failed to requeue webhook event",
			zap.String("event_id", req.EventID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, "Failed to requeue event")
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]string{"status": "queued", "event_id": req.EventID})
}

type cancelRetriesRequest struct {
	CampaignID string `json:"campaign_id"`
	Source     string `json:"source"`
}

func (h *Handler) CancelRetries(w http.ResponseWriter, r *http.Request) {
	var req cancelRetriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "Invalid request body")
		return
	}

	canceled, err := h.service.Webhook.CancelRetries(r.Context(), req.CampaignID, req.Source)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, err.Error())
		return
	}

	render.JSON(w, r, map[string]int64{"canceled": canceled})
}

func (h *Handler) ListDeadLetters(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	result, err := h.service.Webhook.ListDeadLetters(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("Failed to list dead letters",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, "Failed to list dead letters")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	if health.Status == service.HealthUnhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, struct {
		*service.HealthStatus
		Timestamp time.Time `json:"timestamp"`
	}{health, time.Now()})
}

func (h *Handler) sendCampaignError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound):
		h.sendError(w, r, http.StatusNotFound, errorCodeCampaignNotFound, errorMessageCampaignNotFound)
	case service.IsInvalidTransition(err):
		h.sendError(w, r, http.StatusConflict, errorCodeInvalidTransition, err.Error())
	default:
		h.logger.Error("Campaign operation failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, "Campaign operation failed")
	}
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, map[string]interface{}{
		"error":     errorCode,
		"message":   message,
		"timestamp": time.Now(),
	})
}

// signatureHeader picks the signature header each source actually sends.
func signatureHeader(r *http.Request, source string) string {
	if source == webhook.SourceMeta {
		return r.Header.Get("X-Hub-Signature-256")
	}
	return r.Header.Get("X-Signature-256")
}

// readBody drains the request body with a 1 MiB cap; provider callbacks are
// small and anything larger is abuse.
func readBody(r *http.Request) ([]byte, error) {
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
