package services

import (
	"context"
	"log/slog"
	"time"

	"retailpulse/internal/dataset"
)

// HealthStatus is the payload for the health endpoint
type HealthStatus struct {
	Status    string    `json:"status"`
	Dataset   string    `json:"dataset"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// HealthService reports process liveness and dataset readiness
type HealthService struct {
	manager *dataset.Manager
	version string
	started time.Time
	logger  *slog.Logger
}

// NewHealthService creates a health service
func NewHealthService(manager *dataset.Manager, version string, logger *slog.Logger) *HealthService {
	return &HealthService{
		manager: manager,
		version: version,
		started: time.Now(),
		logger:  logger.With(slog.String("service", "health")),
	}
}

// Check reports overall health. The process stays "healthy" as long as it can
// serve; a failed dataset load degrades status rather than failing the check,
// since the viz endpoints remain usable.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Dataset:   "loaded",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Version:   s.version,
	}

	if _, err := s.manager.Table(); err != nil {
		status.Status = "degraded"
		status.Dataset = "unavailable"
		s.logger.WarnContext(ctx, "health check found dataset unavailable",
			slog.String("error", err.Error()))
	}

	return status
}
