package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket holds token state for one key.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// MemoryStore keeps buckets in a process-local map. Buckets are created lazily
// on first use and swept after sitting idle for several windows.
type MemoryStore struct {
	buckets map[string]*bucket
	mu      sync.Mutex
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}

	go s.sweepIdle()

	return s
}

// newMemoryStoreAt builds a store with a fake clock and no sweeper, for tests.
func newMemoryStoreAt(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     now,
	}
}

// sweepIdle removes buckets untouched for longer than three windows' worth of
// the default window, mirroring the lazy-recreate lifecycle.
func (s *MemoryStore) sweepIdle() {
	for {
		time.Sleep(time.Minute)

		s.mu.Lock()
		cutoff := s.now().Add(-3 * DefaultWindow)
		for key, b := range s.buckets {
			if b.lastRefill.Before(cutoff) {
				delete(s.buckets, key)
			}
		}
		s.mu.Unlock()
	}
}

// Take refills the key's bucket proportionally to elapsed time, capped at
// limit, then consumes one token if available. The whole step runs under the
// store mutex so concurrent callers on one key cannot double-spend.
func (s *MemoryStore) Take(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(limit), lastRefill: now}
		s.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 {
		refill := elapsed.Seconds() / window.Seconds() * float64(limit)
		b.tokens = minFloat(float64(limit), b.tokens+refill)
		b.lastRefill = now
	}

	if b.tokens < 1 {
		// Wait only for the missing fraction of a token to refill, not for
		// the whole window.
		deficit := 1 - b.tokens
		wait := time.Duration(deficit / float64(limit) * float64(window))
		return Result{
			Limited:   true,
			Remaining: 0,
			ResetAt:   now.Add(wait),
		}, nil
	}

	b.tokens--

	return Result{
		Limited:   false,
		Remaining: int(b.tokens),
	}, nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
