package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bulkwave/campaign-engine/internal/models"
)

var (
	// ErrUnknownSource is returned for a callback source with no parser.
	ErrUnknownSource = errors.New("unknown webhook source")

	// ErrMalformedPayload is returned when the body does not match the
	// source's documented shape.
	ErrMalformedPayload = errors.New("malformed webhook payload")
)

// Known callback sources.
const (
	SourceMeta   = "meta"
	SourceBridge = "bridge"
	SourceSMS    = "sms"
)

// StatusEvent is the normalized form every source's callback is reduced to
// before entering the idempotency and retry pipeline.
type StatusEvent struct {
	// EventID is the provider-supplied identifier; replays carry the same id.
	EventID           string
	Source            string
	EventType         string
	ProviderMessageID string
	RecipientPhone    string
	Status            models.DeliveryStatus
	OccurredAt        time.Time
}

// mapStatus translates a provider status word into the engine's delivery
// status. "played" is the voice-note read receipt.
func mapStatus(s string) (models.DeliveryStatus, bool) {
	switch s {
	case "sent":
		return models.DeliveryStatusSent, true
	case "delivered":
		return models.DeliveryStatusDelivered, true
	case "read", "played":
		return models.DeliveryStatusRead, true
	case "failed", "undelivered":
		return models.DeliveryStatusFailed, true
	default:
		return "", false
	}
}

// ParseStatusEvents dispatches on source. A payload that is valid but carries
// no delivery statuses (e.g. an inbound user message) yields an empty slice.
func ParseStatusEvents(source string, body []byte) ([]StatusEvent, error) {
	switch source {
	case SourceMeta:
		return parseMeta(body)
	case SourceBridge:
		return parseBridge(body)
	case SourceSMS:
		return parseSMS(body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

type metaPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Statuses []metaStatus `json:"statuses"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type metaStatus struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	Timestamp   string          `json:"timestamp"`
	RecipientID string          `json:"recipient_id"`
	Errors      json.RawMessage `json:"errors"`
}

// parseMeta walks the Business API envelope. Meta status entries have no
// event id of their own, so the id is derived from (wamid, status), which is
// stable across provider redeliveries.
func parseMeta(body []byte) ([]StatusEvent, error) {
	var payload metaPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Object != "whatsapp_business_account" {
		return nil, fmt.Errorf("%w: unexpected object %q", ErrMalformedPayload, payload.Object)
	}

	var events []StatusEvent
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, status := range change.Value.Statuses {
				if status.ID == "" {
					continue
				}
				mapped, ok := mapStatus(status.Status)
				if !ok {
					continue
				}
				events = append(events, StatusEvent{
					EventID:           status.ID + ":" + status.Status,
					Source:            SourceMeta,
					EventType:         "message_status",
					ProviderMessageID: status.ID,
					RecipientPhone:    status.RecipientID,
					Status:            mapped,
					OccurredAt:        metaTimestamp(status.Timestamp),
				})
			}
		}
	}

	return events, nil
}

func metaTimestamp(s string) time.Time {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil || secs <= 0 {
		return time.Now()
	}
	return time.Unix(secs, 0)
}

type bridgePayload struct {
	Event     string `json:"event"`
	EventID   string `json:"eventId"`
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	To        string `json:"to"`
	Timestamp int64  `json:"timestamp"`
}

func parseBridge(body []byte) ([]StatusEvent, error) {
	var payload bridgePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.MessageID == "" {
		return nil, fmt.Errorf("%w: missing messageId", ErrMalformedPayload)
	}

	mapped, ok := mapStatus(payload.Status)
	if !ok {
		return nil, nil
	}

	eventID := payload.EventID
	if eventID == "" {
		eventID = payload.MessageID + ":" + payload.Status
	}

	occurredAt := time.Now()
	if payload.Timestamp > 0 {
		occurredAt = time.Unix(payload.Timestamp, 0)
	}

	return []StatusEvent{{
		EventID:           eventID,
		Source:            SourceBridge,
		EventType:         payload.Event,
		ProviderMessageID: payload.MessageID,
		RecipientPhone:    payload.To,
		Status:            mapped,
		OccurredAt:        occurredAt,
	}}, nil
}

type smsPayload struct {
	MessageSID string `json:"message_sid"`
	Status     string `json:"status"`
	To         string `json:"to"`
	Timestamp  string `json:"timestamp"`
}

func parseSMS(body []byte) ([]StatusEvent, error) {
	var payload smsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.MessageSID == "" {
		return nil, fmt.Errorf("%w: missing message_sid", ErrMalformedPayload)
	}

	mapped, ok := mapStatus(payload.Status)
	if !ok {
		return nil, nil
	}

	occurredAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, payload.Timestamp); err == nil {
		occurredAt = ts
	}

	return []StatusEvent{{
		EventID:           payload.MessageSID + ":" + payload.Status,
		Source:            SourceSMS,
		EventType:         "delivery_status",
		ProviderMessageID: payload.MessageSID,
		RecipientPhone:    payload.To,
		Status:            mapped,
		OccurredAt:        occurredAt,
	}}, nil
}
