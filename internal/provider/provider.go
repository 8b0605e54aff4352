// Package provider implements the outbound send capability: one message in,
// a provider message id or a classified error out. Each transport speaks its
// gateway's native dialect behind the same narrow interface.
package provider

import (
	"context"
	"fmt"

	"github.com/bulkwave/campaign-engine/internal/models"
)

// Message is the engine's send contract. Cross-provider payload normalization
// beyond these fields is out of scope; each sender maps them onto its
// gateway's wire shape.
type Message struct {
	TenantID    string
	CampaignID  string
	To          string
	TemplateRef string
	Body        string
}

// Sender delivers a single message and returns the provider's message id.
type Sender interface {
	// Name identifies the transport, used for limiter keys and breaker names.
	Name() string

	Send(ctx context.Context, msg Message) (providerMessageID string, err error)
}

// Error is a send failure with enough context to decide whether retrying at a
// later time could help.
type Error struct {
	Provider   string
	StatusCode int
	Message    string
	Transient  bool
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s send failed: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s send failed: %s", e.Provider, e.Message)
}

// transientStatus reports whether an HTTP status from a gateway is worth
// retrying: server errors and throttling are, other client errors are not.
func transientStatus(code int) bool {
	if code >= 500 && code < 600 {
		return true
	}
	return code == 429
}

// Registry resolves the sender for a campaign's transport.
type Registry struct {
	senders map[models.Transport]Sender
}

func NewRegistry() *Registry {
	return &Registry{
		senders: make(map[models.Transport]Sender),
	}
}

func (r *Registry) Register(transport models.Transport, sender Sender) {
	r.senders[transport] = sender
}

func (r *Registry) For(transport models.Transport) (Sender, error) {
	sender, ok := r.senders[transport]
	if !ok {
		return nil, fmt.Errorf("no sender registered for transport %q", transport)
	}
	return sender, nil
}
