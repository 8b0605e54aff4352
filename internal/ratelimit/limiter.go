// Package ratelimit implements a continuous-refill token bucket keyed by an
// arbitrary string (caller IP, tenant+provider, ...). The bucket state lives
// behind a Store so a single-process map and a shared Redis deployment expose
// the same Acquire contract.
package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of one Acquire call.
type Result struct {
	Limited   bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds a limited caller should wait, never
// below one second.
func (r Result) RetryAfter(now time.Time) int {
	if !r.Limited {
		return 0
	}
	secs := int(r.ResetAt.Sub(now).Seconds() + 0.999)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Store holds bucket state. Take must perform the check-and-decrement as one
// atomic step per key.
type Store interface {
	Take(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

// Limiter grants at most limit permits per window per key, refilling
// continuously rather than in discrete windows.
type Limiter struct {
	store  Store
	window time.Duration
}

// DefaultWindow is the refill window used when none is configured.
const DefaultWindow = time.Minute

func New(store Store, window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		store:  store,
		window: window,
	}
}

// Acquire takes one token for key, or reports when the caller may retry.
func (l *Limiter) Acquire(ctx context.Context, key string, limit int) (Result, error) {
	return l.store.Take(ctx, key, limit, l.window)
}

// Wait blocks until a token is granted or the context is done. Callers that
// cannot surface a 429, like the dispatcher's send loop, use this instead of
// Acquire.
func (l *Limiter) Wait(ctx context.Context, key string, limit int) error {
	for {
		res, err := l.store.Take(ctx, key, limit, l.window)
		if err != nil {
			return err
		}
		if !res.Limited {
			return nil
		}

		delay := time.Until(res.ResetAt)
		if delay <= 0 {
			delay = 10 * time.Millisecond
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
