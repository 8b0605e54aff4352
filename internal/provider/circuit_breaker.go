package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/config"
)

// BreakerState mirrors gobreaker's state for health reporting.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerHalfOpen BreakerState = "half-open"
	BreakerOpen     BreakerState = "open"
)

// CircuitSender wraps a Sender in a circuit breaker so a dying gateway fails
// fast instead of tying up dispatch workers on timeouts.
type CircuitSender struct {
	inner  Sender
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

func NewCircuitSender(inner Sender, cfg *config.CircuitBreakerConfig, logger *zap.Logger) *CircuitSender {
	settings := gobreaker.Settings{
		Name:        inner.Name() + "-circuit-breaker",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.ConsecutiveFails && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	}

	return &CircuitSender{
		inner:  inner,
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

func (s *CircuitSender) Name() string {
	return s.inner.Name()
}

// Send runs the wrapped sender through the circuit breaker. An open breaker
// surfaces as a transient provider error so the recipient is recorded failed
// without the gateway being hit.
func (s *CircuitSender) Send(ctx context.Context, msg Message) (string, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			return s.inner.Send(ctx, msg)
		}
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Warn("Circuit breaker rejected send",
				zap.String("provider", s.inner.Name()))
			return "", &Error{
				Provider:  s.inner.Name(),
				Message:   "circuit breaker is open",
				Transient: true,
			}
		}
		return "", err
	}

	id, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected circuit breaker result type %T", result)
	}

	return id, nil
}

// State returns the current breaker state.
func (s *CircuitSender) State() BreakerState {
	switch s.cb.State() {
	case gobreaker.StateHalfOpen:
		return BreakerHalfOpen
	case gobreaker.StateOpen:
		return BreakerOpen
	default:
		return BreakerClosed
	}
}

// Counts returns total requests and failures observed by the breaker.
func (s *CircuitSender) Counts() (requests, failures uint32) {
	counts := s.cb.Counts()
	return counts.Requests, counts.TotalFailures
}
