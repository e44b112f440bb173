// Package scheduler triggers periodic feed scans on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
)

// ScanFunc runs one scan cycle. Overlapping runs are the scan pipeline's
// problem to reject; the scheduler just logs the refusal.
type ScanFunc func(ctx context.Context) error

// Service wraps a cron runner around the scan pipeline.
type Service struct {
	config  *common.SchedulerConfig
	scan    ScanFunc
	cron    *cron.Cron
	logger  arbor.ILogger
	mu      sync.Mutex
	running bool
	lastRun *time.Time
}

// NewService creates a scheduler for periodic scans
func NewService(config *common.SchedulerConfig, scan ScanFunc, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		scan:   scan,
		cron:   cron.New(),
		logger: logger.WithPrefix("scheduler"),
	}
}

// Start begins periodic scanning. A no-op when the scheduler is disabled.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info().Msg("Scheduler disabled")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	schedule := s.config.Schedule
	if schedule == "" {
		schedule = "*/3 * * * *"
	}

	if _, err := s.cron.AddFunc(schedule, s.runScan); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", schedule).
		Msg("Scheduler started")

	return nil
}

func (s *Service) runScan() {
	now := time.Now()
	s.mu.Lock()
	s.lastRun = &now
	s.mu.Unlock()

	s.logger.Info().Msg("Scheduled scan starting")

	if err := s.scan(context.Background()); err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled scan failed")
		return
	}

	s.logger.Info().Msg("Scheduled scan finished")
}

// Running reports whether the scheduler has been started.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastRun returns when the most recent scheduled scan started, or nil.
func (s *Service) LastRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// NextRun returns the next scheduled scan time, or zero when stopped.
func (s *Service) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop halts the scheduler, waiting for a running scan to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
}
