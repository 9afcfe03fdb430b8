// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// Config is the root configuration for the Mirador server.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Prefs   PrefsConfig   `koanf:"prefs"`
	Digest  DigestConfig  `koanf:"digest"`
	API     APIConfig     `koanf:"api"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info.
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic"`

	// Format is json or console.
	// Default: json.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file:line in log entries.
	// Default: false.
	Caller bool `koanf:"caller"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	// Host is the listen address.
	// Default: 0.0.0.0.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	// Default: 3861.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// ReadTimeout bounds request reads.
	// Default: 15s.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writes.
	// Default: 30s.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout is the graceful shutdown window.
	// Default: 10s.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StorageConfig controls the BadgerDB store.
type StorageConfig struct {
	// Path is the BadgerDB directory.
	// Default: /data/mirador.
	Path string `koanf:"path" validate:"required"`

	// GCInterval is how often the value-log garbage collector runs.
	// Default: 10m.
	GCInterval time.Duration `koanf:"gc_interval"`

	// GCDiscardRatio is the Badger value-log rewrite threshold.
	// Default: 0.5.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`

	// EventTTL is how long processed feedback event IDs are remembered
	// for replay suppression. Default: 168h (7 days).
	EventTTL time.Duration `koanf:"event_ttl"`
}

// PrefsConfig controls the preference model and scoring engine.
type PrefsConfig struct {
	// LikeWeight is the signed weight applied for a "like" event.
	// Must be positive. Default: 1.0.
	LikeWeight float64 `koanf:"like_weight" validate:"gt=0"`

	// DislikeWeight is the signed weight applied for a "dislike" event.
	// Must be negative. Default: -1.0.
	DislikeWeight float64 `koanf:"dislike_weight" validate:"lt=0"`

	// VectorWeight is the blend factor between the attribute-match score
	// and the normalized vector-similarity score. Default: 0.7.
	VectorWeight float64 `koanf:"vector_weight" validate:"gte=0,lte=1"`

	// DefaultUserID is the profile used when a request carries no user.
	// Default: "default".
	DefaultUserID string `koanf:"default_user_id" validate:"required"`
}

// DigestConfig controls daily digest generation.
type DigestConfig struct {
	// Enabled controls whether the digest scheduler runs.
	// Default: true.
	Enabled bool `koanf:"enabled"`

	// Schedule is a standard 5-field cron expression.
	// Default: "0 8 * * *" (08:00 daily).
	Schedule string `koanf:"schedule" validate:"required"`

	// TopN is how many items a digest contains.
	// Default: 20.
	TopN int `koanf:"top_n" validate:"min=1,max=500"`
}

// APIConfig controls the HTTP API surface.
type APIConfig struct {
	// CORSOrigins lists allowed origins for the feedback web page.
	// Default: ["*"].
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the feedback-endpoint request budget per window.
	// Default: 60.
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"min=1"`

	// RateLimitWindow is the rate-limit window.
	// Default: 1m.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// MaxBatchSize caps the number of events in one batch submission.
	// Default: 100.
	MaxBatchSize int `koanf:"max_batch_size" validate:"min=1,max=10000"`

	// MaxFeedItems caps the live-feed page size.
	// Default: 200.
	MaxFeedItems int `koanf:"max_feed_items" validate:"min=1"`
}

// Default returns a Config populated with production defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3861,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Path:           "/data/mirador",
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
			EventTTL:       168 * time.Hour,
		},
		Prefs: PrefsConfig{
			LikeWeight:    1.0,
			DislikeWeight: -1.0,
			VectorWeight:  0.7,
			DefaultUserID: "default",
		},
		Digest: DigestConfig{
			Enabled:  true,
			Schedule: "0 8 * * *",
			TopN:     20,
		},
		API: APIConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
			MaxBatchSize:    100,
			MaxFeedItems:    200,
		},
	}
}

// validate is the shared validator instance; struct tag validation is
// stateless so a single instance is safe for concurrent use.
var validate = validator.New()

// Validate checks the configuration, combining struct tags with semantic
// checks that tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive, got %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive, got %v", c.Server.WriteTimeout)
	}
	if c.Storage.GCInterval <= 0 {
		return fmt.Errorf("storage.gc_interval must be positive, got %v", c.Storage.GCInterval)
	}
	if c.Storage.EventTTL <= 0 {
		return fmt.Errorf("storage.event_ttl must be positive, got %v", c.Storage.EventTTL)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %v", c.API.RateLimitWindow)
	}

	if _, err := cron.ParseStandard(c.Digest.Schedule); err != nil {
		return fmt.Errorf("digest.schedule %q is not a valid cron expression: %w", c.Digest.Schedule, err)
	}

	return nil
}
