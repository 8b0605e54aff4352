package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
)

// SMSSender posts to the SMS gateway's message endpoint.
type SMSSender struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSMSSender(cfg *config.ProviderConfig, logger *zap.Logger) *SMSSender {
	return &SMSSender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

func (s *SMSSender) Name() string {
	return "sms"
}

type smsSendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type smsSendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error"`
}

func (s *SMSSender) Send(ctx context.Context, msg Message) (string, error) {
	reqBody := smsSendRequest{
		To:      msg.To,
		Message: msg.Body,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.AuthKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &Error{Provider: s.Name(), Message: err.Error(), Transient: true}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	var sendResp smsSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		message := sendResp.Error
		if message == "" {
			message = "unexpected status"
		}
		return "", &Error{
			Provider:   s.Name(),
			StatusCode: resp.StatusCode,
			Message:    message,
			Transient:  transientStatus(resp.StatusCode),
		}
	}

	return sendResp.MessageID, nil
}
