package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/bulkwave/campaign-engine/internal/provider"
	"github.com/bulkwave/campaign-engine/internal/repository"
)

type healthService struct {
	repo        repository.Repository
	redisClient *redis.Client
	schedulers  SchedulerService
	breakers    []*provider.CircuitSender
	logger      *zap.Logger
}

func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	schedulers SchedulerService,
	breakers []*provider.CircuitSender,
	logger *zap.Logger,
) HealthService {
	return &healthService{
		repo:        repo,
		redisClient: redisClient,
		schedulers:  schedulers,
		breakers:    breakers,
		logger:      logger,
	}
}

// GetHealth probes each dependency. The database being down makes the whole
// engine unhealthy; redis or the schedulers being down only degrades it since
// dispatch falls back to in-memory limiting and ticks can be fired manually.
func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status:          HealthHealthy,
		SchedulerStatus: statusStopped,
		DatabaseStatus:  statusDisconnected,
		RedisStatus:     statusDisconnected,
		Breakers:        make(map[string]provider.BreakerState),
	}

	if err := s.repo.Ping(); err != nil {
		s.logger.Error("Database health check failed", zap.Error(err))
		status.Status = HealthUnhealthy
	} else {
		status.DatabaseStatus = statusConnected
	}

	if s.redisClient == nil {
		status.RedisStatus = statusDisconnected
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := s.redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			s.logger.Warn("Redis health check failed", zap.Error(err))
			if status.Status == HealthHealthy {
				status.Status = HealthDegraded
			}
		} else {
			status.RedisStatus = statusConnected
		}
	}

	if s.schedulers.IsRunning() {
		status.SchedulerStatus = statusRunning
	} else if status.Status == HealthHealthy {
		status.Status = HealthDegraded
	}

	for _, breaker := range s.breakers {
		state := breaker.State()
		status.Breakers[breaker.Name()] = state
		if state == provider.BreakerOpen && status.Status == HealthHealthy {
			status.Status = HealthDegraded
		}
	}

	return status
}
