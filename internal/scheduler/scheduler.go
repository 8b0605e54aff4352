package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs a task function on a fixed interval. The engine uses two
// instances: the campaign poll (claim due campaigns) and the retry drain.
// A failing tick is logged and the next tick retries naturally; the loop
// never stops on task error.
type Scheduler struct {
	name      string
	logger    *zap.Logger
	interval  time.Duration
	taskFunc  func(context.Context) error
	stopCh    chan struct{}
	doneCh    chan struct{}
	isRunning bool
	mu        sync.RWMutex
}

// NewScheduler creates a named scheduler instance.
func NewScheduler(name string, logger *zap.Logger, interval time.Duration, taskFunc func(context.Context) error) *Scheduler {
	return &Scheduler{
		name:     name,
		logger:   logger,
		interval: interval,
		taskFunc: taskFunc,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the tick loop. The task also runs once immediately so a
// restart does not wait a full interval before picking up due work.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrSchedulerAlreadyRunning
	}

	s.isRunning = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("Scheduler started",
		zap.String("scheduler", s.name),
		zap.Duration("interval", s.interval))
	return nil
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	close(s.stopCh)
	<-s.doneCh

	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()

	s.logger.Info("Scheduler stopped", zap.String("scheduler", s.name))
	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)
	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	if err := s.executeTask(ctx); err != nil {
		s.logger.Error("Initial tick failed",
			zap.String("scheduler", s.name), zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context canceled", zap.String("scheduler", s.name))
			return
		case <-s.stopCh:
			s.logger.Info("Scheduler stop signal received", zap.String("scheduler", s.name))
			return
		case <-ticker.C:
			if err := s.executeTask(ctx); err != nil {
				s.logger.Error("Tick failed",
					zap.String("scheduler", s.name), zap.Error(err))
			}
		}
	}
}

// executeTask runs one tick bounded to just under the interval so overlapping
// ticks of the same loop cannot pile up.
func (s *Scheduler) executeTask(ctx context.Context) error {
	timeout := s.interval - time.Second
	if timeout <= 0 {
		timeout = s.interval
	}

	taskCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.taskFunc(taskCtx)
}
