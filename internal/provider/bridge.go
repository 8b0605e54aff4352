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

// BridgeSender posts to the personal-WhatsApp bridge sidecar, which proxies
// sends through a linked personal account session.
type BridgeSender struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewBridgeSender(cfg *config.ProviderConfig, logger *zap.Logger) *BridgeSender {
	return &BridgeSender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

func (s *BridgeSender) Name() string {
	return "bridge"
}

type bridgeSendRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

type bridgeSendResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

func (s *BridgeSender) Send(ctx context.Context, msg Message) (string, error) {
	reqBody := bridgeSendRequest{
		To:      msg.To,
		Content: msg.Body,
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
	req.Header.Set("x-auth-key", s.cfg.AuthKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &Error{Provider: s.Name(), Message: err.Error(), Transient: true}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", &Error{
			Provider:   s.Name(),
			StatusCode: resp.StatusCode,
			Message:    "unexpected status",
			Transient:  transientStatus(resp.StatusCode),
		}
	}

	var sendResp bridgeSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		// The bridge acknowledged but returned no usable body; a synthetic id
		// keeps the report traceable until a callback corrects it.
		sendResp.MessageID = fmt.Sprintf("bridge-%s-%d", msg.CampaignID, time.Now().Unix())
	}

	return sendResp.MessageID, nil
}
