// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tovren/mirador/internal/logging"
)

// Scheduler runs Build and Deliver on a cron schedule. It implements
// suture's Serve contract and is run as a service of the supervision
// tree.
type Scheduler struct {
	schedule  cron.Schedule
	spec      string
	builder   *Builder
	deliverer Deliverer
	logger    zerolog.Logger

	// buildTimeout bounds one build+deliver run.
	buildTimeout time.Duration
}

// NewScheduler creates a digest scheduler from a standard 5-field cron
// expression.
func NewScheduler(spec string, builder *Builder, deliverer Deliverer) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse digest schedule %q: %w", spec, err)
	}
	return &Scheduler{
		schedule:     schedule,
		spec:         spec,
		builder:      builder,
		deliverer:    deliverer,
		logger:       logging.WithComponent("digest.scheduler"),
		buildTimeout: 5 * time.Minute,
	}, nil
}

// Serve blocks, firing a digest run at each schedule boundary, until
// the context is cancelled. Run failures are logged and the schedule
// continues; only context cancellation ends the service.
func (s *Scheduler) Serve(ctx context.Context) error {
	s.logger.Info().Str("schedule", s.spec).Msg("digest scheduler started")

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("digest scheduler stopped")
			return ctx.Err()
		case at := <-timer.C:
			if err := s.run(ctx, at); err != nil {
				s.logger.Error().Err(err).Msg("digest run failed")
			}
		}
	}
}

// RunNow triggers one immediate digest run, used by the preview
// endpoint and by tests.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.run(ctx, time.Now())
}

func (s *Scheduler) run(ctx context.Context, at time.Time) error {
	runCtx, cancel := context.WithTimeout(ctx, s.buildTimeout)
	defer cancel()

	d, err := s.builder.Build(runCtx, at)
	if err != nil {
		return err
	}
	if err := s.deliverer.Deliver(runCtx, d); err != nil {
		return fmt.Errorf("deliver digest: %w", err)
	}
	return nil
}

// String names the service in supervisor logs.
func (s *Scheduler) String() string {
	return "digest-scheduler"
}
