package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/gateway"
	"github.com/linesmerrill/dl-generator-api/metrics"
	"github.com/linesmerrill/dl-generator-api/sessions"
)

const (
	// DefaultProbeSchedule is used when no probe schedule is configured
	DefaultProbeSchedule = "@every 30s"
	reapSchedule         = "@every 1m"
	probeTimeout         = 10 * time.Second
)

// Scheduler runs the background jobs: the rendering service health probe and
// the idle session reaper
type Scheduler struct {
	cron     *cron.Cron
	Gateway  gateway.Gateway
	Sessions *sessions.Store
	Metrics  *metrics.Metrics

	probeSchedule string

	mu        sync.Mutex
	available *bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(gw gateway.Gateway, store *sessions.Store, m *metrics.Metrics, probeSchedule string) *Scheduler {
	if probeSchedule == "" {
		probeSchedule = DefaultProbeSchedule
	}
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(time.UTC)),
		Gateway:       gw,
		Sessions:      store,
		Metrics:       m,
		probeSchedule: probeSchedule,
	}
}

// Start registers the jobs and starts the scheduler. It fails when a
// schedule does not parse.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.probeSchedule, s.probeGateway); err != nil {
		zap.S().Errorw("failed to register gateway probe job", "schedule", s.probeSchedule, "error", err)
		return err
	}
	if _, err := s.cron.AddFunc(reapSchedule, s.reapSessions); err != nil {
		zap.S().Errorw("failed to register session reaper job", "error", err)
		return err
	}

	s.cron.Start()
	zap.S().Infow("scheduler started", "probeSchedule", s.probeSchedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

// Available returns the result of the last probe; ok is false before the
// first probe has run
func (s *Scheduler) Available() (available, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.available == nil {
		return false, false
	}
	return *s.available, true
}

// probeGateway checks the rendering service and logs when its availability
// changes
func (s *Scheduler) probeGateway() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	available := s.Gateway.Probe(ctx).Available
	s.Metrics.SetGatewayAvailable(available)

	s.mu.Lock()
	changed := s.available == nil || *s.available != available
	s.available = &available
	s.mu.Unlock()

	switch {
	case changed && available:
		zap.S().Infow("rendering service is available")
	case changed:
		zap.S().Warnw("rendering service is unavailable")
	default:
		zap.S().Debugw("rendering service probe", "available", available)
	}
}

// reapSessions releases expired request sessions
func (s *Scheduler) reapSessions() {
	n := s.Sessions.Reap()
	s.Metrics.ActiveSessions.Set(float64(s.Sessions.Len()))
	if n > 0 {
		zap.S().Infow("reaped idle sessions", "count", n)
	}
}
