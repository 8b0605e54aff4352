package service

import (
	"time"

	"github.com/bulkwave/campaign-engine/internal/models"
	"github.com/bulkwave/campaign-engine/internal/provider"
)

// TickSummary reports one scheduler pass over due campaigns. A tick that
// finds nothing due is a normal outcome, not an error.
type TickSummary struct {
	Processed int       `json:"processed"`
	Claimed   int       `json:"claimed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

// IngestResult describes what one webhook delivery did.
type IngestResult struct {
	Events     int  `json:"events"`
	Duplicates int  `json:"duplicates"`
	Valid      bool `json:"signature_valid"`
}

// DeadLetterList is a paginated view over quarantined events.
type DeadLetterList struct {
	Entries    []*models.DeadLetterEntry `json:"entries"`
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
}

// HealthStatus aggregates component health for the health endpoint.
type HealthStatus struct {
	Status          string                           `json:"status"`
	SchedulerStatus string                           `json:"scheduler_status"`
	DatabaseStatus  string                           `json:"database_status"`
	RedisStatus     string                           `json:"redis_status"`
	Breakers        map[string]provider.BreakerState `json:"breakers,omitempty"`
}

const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"

	statusRunning      = "running"
	statusStopped      = "stopped"
	statusConnected    = "connected"
	statusDisconnected = "disconnected"
)
