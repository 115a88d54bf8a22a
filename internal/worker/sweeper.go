// Package worker holds the background jobs that run beside the HTTP server.
package worker

import (
	"context"
	"time"

	"github.com/facebookgo/clock"
	"go.uber.org/zap"

	"projectapi/internal/metrics"
)

const defaultSweepInterval = time.Minute

// StatusRefresher persists the computed status of every open reminder.
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context) (int64, error)
}

// ReminderSweeper periodically writes reminder statuses back to storage so
// that stored rows converge on what reads already report.
type ReminderSweeper struct {
	refresher StatusRefresher
	clock     clock.Clock
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// SweeperOption configures a ReminderSweeper.
type SweeperOption func(*ReminderSweeper)

// WithInterval sets the time between sweeps. Non-positive values keep the default of one minute.
func WithInterval(d time.Duration) SweeperOption {
	return func(s *ReminderSweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.Clock) SweeperOption {
	return func(s *ReminderSweeper) {
		s.clock = c
	}
}

// WithMetrics records every sweep in m.
func WithMetrics(m *metrics.Metrics) SweeperOption {
	return func(s *ReminderSweeper) {
		s.metrics = m
	}
}

// NewReminderSweeper creates a sweeper. It does nothing until Run is called.
func NewReminderSweeper(r StatusRefresher, logger *zap.Logger, opts ...SweeperOption) *ReminderSweeper {
	s := &ReminderSweeper{
		refresher: r,
		clock:     clock.New(),
		interval:  defaultSweepInterval,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	// A sweep must finish before the next tick is due.
	s.timeout = s.interval
	return s
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
// Failed sweeps are logged and retried on the next tick.
func (s *ReminderSweeper) Run(ctx context.Context) {
	s.logger.Info("reminder_sweeper_started", zap.Duration("interval", s.interval))
	defer s.logger.Info("reminder_sweeper_stopped")

	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single refresh and returns the number of reminders updated.
func (s *ReminderSweeper) Sweep(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.refresher.RefreshStatuses(ctx)
	s.metrics.ReminderSweep(err)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Warn("reminder_sweep_interrupted", zap.Error(err))
		} else {
			s.logger.Error("reminder_sweep_failed", zap.Error(err))
		}
		return 0
	}
	return n
}
