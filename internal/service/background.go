package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Runner supervises fire-and-forget work. Every task gets panic recovery and
// an error sink, so a background dispatch that fails is observable in the
// logs instead of silently lost, and shutdown can wait for stragglers.
type Runner struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Go launches fn on a fresh background context. The context is deliberately
// not tied to the caller's request: an accepted dispatch keeps running after
// the triggering HTTP request completes.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("Background task panicked",
					zap.String("task", name),
					zap.Any("panic", rec))
			}
		}()

		if err := fn(context.Background()); err != nil {
			r.logger.Error("Background task failed",
				zap.String("task", name),
				zap.Error(err))
		}
	}()
}

// Wait blocks until all launched tasks finish.
func (r *Runner) Wait() {
	r.wg.Wait()
}
