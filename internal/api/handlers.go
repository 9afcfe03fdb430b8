// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package api

import (
	"context"
	"time"

	"github.com/tovren/mirador/internal/digest"
	"github.com/tovren/mirador/internal/prefs"
)

// ItemStore is the slice of the persistence layer the handlers need.
// Implemented by internal/store.
type ItemStore interface {
	PutItem(itemID string, attributes map[string]string, embedding []float64) error
	Attributes(itemID string) (map[string]string, bool, error)
	ItemVector(itemID string) ([]float64, bool, error)
	ItemIDs(ctx context.Context) ([]string, error)
}

// Config controls the HTTP surface.
type Config struct {
	// CORSOrigins lists allowed origins for the feedback web page.
	CORSOrigins []string

	// RateLimitReqs / RateLimitWindow bound feedback submissions per
	// client IP.
	RateLimitReqs   int
	RateLimitWindow time.Duration

	// MaxBatchSize caps events per batch submission.
	MaxBatchSize int

	// MaxFeedItems caps the live-feed page size.
	MaxFeedItems int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   60,
		RateLimitWindow: time.Minute,
		MaxBatchSize:    100,
		MaxFeedItems:    200,
	}
}

// Handlers holds the dependencies of all endpoint handlers.
type Handlers struct {
	cfg       Config
	processor *prefs.Processor
	engine    *prefs.Engine
	model     *prefs.Model
	items     ItemStore
	builder   *digest.Builder
}

// NewHandlers wires the endpoint handlers.
func NewHandlers(cfg Config, processor *prefs.Processor, engine *prefs.Engine, model *prefs.Model, items ItemStore, builder *digest.Builder) *Handlers {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 100
	}
	if cfg.MaxFeedItems <= 0 {
		cfg.MaxFeedItems = 200
	}
	return &Handlers{
		cfg:       cfg,
		processor: processor,
		engine:    engine,
		model:     model,
		items:     items,
		builder:   builder,
	}
}
