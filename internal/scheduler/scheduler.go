// Package scheduler repeats digest runs on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// RunFunc executes one digest pass.
type RunFunc func(ctx context.Context) error

// Scheduler owns the main loop: one immediate run, then a run per tick.
type Scheduler struct {
	run      RunFunc
	interval time.Duration
	logger   *slog.Logger
}

// New creates a scheduler that repeats run at the given interval.
func New(run RunFunc, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		run:      run,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate pass, then ticks on the
// configured interval. A failed pass is logged and the loop keeps going; the
// next tick gets a fresh chance. Returns nil when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	started := time.Now()
	if err := s.run(ctx); err != nil {
		s.logger.Error("digest run failed", "error", err)
		return
	}
	s.logger.Info("digest run finished", "took", time.Since(started).String())
}
