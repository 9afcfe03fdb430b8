// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tovren/mirador/internal/logging"
)

// GarbageCollector is implemented by *store.Store.
type GarbageCollector interface {
	RunGC() error
}

// GCService periodically runs badger value-log garbage collection.
// Badger never reclaims value-log space on its own; something has to
// call RunValueLogGC, and that something is this service.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewGCService creates the GC loop. interval must be positive.
func NewGCService(gc GarbageCollector, interval time.Duration) *GCService {
	return &GCService{
		gc:       gc,
		interval: interval,
		logger:   logging.WithComponent("store-gc"),
	}
}

// Serve implements suture.Service. GC failures are logged and the loop
// keeps running; a busted GC pass is not worth a restart storm.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.gc.RunGC(); err != nil {
				g.logger.Warn().Err(err).Msg("value-log GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (g *GCService) String() string {
	return "store-gc"
}
