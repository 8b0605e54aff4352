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

// MetaSender talks to a Meta-style WhatsApp Business API: template sends
// against a messages endpoint with bearer authentication.
type MetaSender struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewMetaSender(cfg *config.ProviderConfig, logger *zap.Logger) *MetaSender {
	return &MetaSender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

func (s *MetaSender) Name() string {
	return "meta"
}

type metaSendRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         metaTemplate `json:"template"`
}

type metaTemplate struct {
	Name     string       `json:"name"`
	Language metaLanguage `json:"language"`
}

type metaLanguage struct {
	Code string `json:"code"`
}

type metaSendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (s *MetaSender) Send(ctx context.Context, msg Message) (string, error) {
	reqBody := metaSendRequest{
		MessagingProduct: "whatsapp",
		To:               msg.To,
		Type:             "template",
		Template: metaTemplate{
			Name:     msg.TemplateRef,
			Language: metaLanguage{Code: "pt_BR"},
		},
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
	req.Header.Set("Authorization", "Bearer "+s.cfg.AuthKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &Error{Provider: s.Name(), Message: err.Error(), Transient: true}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	var sendResp metaSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := "unexpected status"
		if sendResp.Error != nil {
			message = sendResp.Error.Message
		}
		return "", &Error{
			Provider:   s.Name(),
			StatusCode: resp.StatusCode,
			Message:    message,
			Transient:  transientStatus(resp.StatusCode),
		}
	}

	if len(sendResp.Messages) == 0 || sendResp.Messages[0].ID == "" {
		// Meta occasionally accepts without returning a wamid; the delivery
		// report stays orphaned until the first status callback backfills it.
		return "", nil
	}

	return sendResp.Messages[0].ID, nil
}
