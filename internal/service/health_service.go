package service

import (
	"context"
	"sync"
	"time"

	"traductor/backend/internal/logger"
	"traductor/backend/internal/tracking"
)

// Tracking backend states reported by HealthService.
const (
	TrackingUnknown     = "unknown"
	TrackingOK          = "ok"
	TrackingUnavailable = "unavailable"
)

// HealthStatus is the last observed state of the tracking backend.
type HealthStatus struct {
	Tracking  string     `json:"tracking"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// HealthService probes the tracking backend and caches the outcome.
type HealthService interface {
	// Check probes the backend once and records the result.
	Check(ctx context.Context) error
	// Status returns the result of the last Check.
	Status() HealthStatus
}

type healthService struct {
	pinger tracking.Pinger

	mu     sync.RWMutex
	status HealthStatus
}

// NewHealthService creates a health service for recorder. Recorders that
// cannot be pinged stay in the unknown state.
func NewHealthService(recorder tracking.Recorder) HealthService {
	pinger, _ := recorder.(tracking.Pinger)
	return &healthService{
		pinger: pinger,
		status: HealthStatus{Tracking: TrackingUnknown},
	}
}

func (s *healthService) Check(ctx context.Context) error {
	if s.pinger == nil {
		return nil
	}

	err := s.pinger.Ping(ctx)
	now := time.Now()
	status := HealthStatus{Tracking: TrackingOK, CheckedAt: &now}
	if err != nil {
		status.Tracking = TrackingUnavailable
		status.Error = err.Error()
	}

	s.mu.Lock()
	previous := s.status.Tracking
	s.status = status
	s.mu.Unlock()

	if previous != status.Tracking {
		if err != nil {
			logger.Warn("tracking backend unavailable", "module", "service", "action", "check", "resource", "tracking", "result", "failed", "error", err)
		} else {
			logger.Info("tracking backend reachable", "module", "service", "action", "check", "resource", "tracking", "result", "ok")
		}
	}
	return err
}

func (s *healthService) Status() HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
