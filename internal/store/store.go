// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tovren/mirador/internal/logging"
	"github.com/tovren/mirador/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	itemKeyPrefix  = "item:"
	prefKeyPrefix  = "pref:"
	vecKeyPrefix   = "vec:"
	eventKeyPrefix = "evt:"
)

// Config controls how the underlying BadgerDB is opened.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory opens an ephemeral database, used in tests.
	InMemory bool

	// GCDiscardRatio is passed to Badger's value-log GC.
	// Default: 0.5.
	GCDiscardRatio float64
}

// Store wraps a BadgerDB instance shared by all Mirador record types.
type Store struct {
	db             *badger.DB
	gcDiscardRatio float64
	logger         zerolog.Logger

	itemLocks keyedMutex
	vecLocks  keyedMutex
}

// Open opens (or creates) the store at cfg.Path.
func Open(cfg Config) (*Store, error) {
	logger := logging.WithComponent("store")

	opts := badger.DefaultOptions(cfg.Path).
		WithLogger(badgerLogger{logger}).
		WithInMemory(cfg.InMemory)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", cfg.Path, err)
	}

	ratio := cfg.GCDiscardRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}

	logger.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("store opened")
	return &Store{
		db:             db,
		gcDiscardRatio: ratio,
		logger:         logger,
	}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunGC runs one round of Badger value-log garbage collection. Badger
// returns ErrNoRewrite when nothing was reclaimed; that is not an error.
func (s *Store) RunGC() error {
	start := time.Now()
	err := s.db.RunValueLogGC(s.gcDiscardRatio)
	switch {
	case err == nil:
		metrics.StoreGCRuns.WithLabelValues("reclaimed").Inc()
		s.logger.Debug().Dur("elapsed", time.Since(start)).Msg("value log GC reclaimed space")
		return nil
	case errors.Is(err, badger.ErrNoRewrite):
		metrics.StoreGCRuns.WithLabelValues("noop").Inc()
		return nil
	default:
		metrics.StoreGCRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("value log GC: %w", err)
	}
}

// badgerLogger adapts Badger's internal logging onto zerolog. Badger is
// chatty at INFO during compaction, so its info output is demoted to
// debug.
type badgerLogger struct {
	zl zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.zl.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(strings.TrimSpace(format), args...)
}
