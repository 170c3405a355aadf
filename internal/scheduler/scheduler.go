package scheduler

import (
	"context"
	"sync"
	"time"

	"traductor/backend/internal/logger"
	"traductor/backend/internal/service"
)

// Scheduler probes the tracking backend on a fixed interval.
type Scheduler struct {
	healthService service.HealthService
	interval      time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
	cancelFunc    context.CancelFunc // cancels the current probe
	mu            sync.Mutex         // protects cancelFunc
}

func New(healthService service.HealthService, interval time.Duration) *Scheduler {
	return &Scheduler{
		healthService: healthService,
		interval:      interval,
		stopCh:        make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "check", "resource", "tracking", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "check", "resource", "tracking", "result", "ok")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Probe immediately so /healthz has a result before the first tick.
	s.probe()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.probe()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	if err := s.healthService.Check(ctx); err != nil {
		if ctx.Err() != nil {
			logger.Debug("tracking probe cancelled", "module", "scheduler", "action", "check", "resource", "tracking", "result", "cancelled")
			return
		}
		logger.Debug("tracking probe failed", "module", "scheduler", "action", "check", "resource", "tracking", "result", "failed", "error", err)
	}
}
