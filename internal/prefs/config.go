// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"fmt"
	"time"
)

// Config contains the tunable parameters of the preference subsystem.
type Config struct {
	// LikeWeight is the signed weight applied to every attribute pair of
	// a liked item. Must be positive.
	LikeWeight float64 `json:"like_weight"`

	// DislikeWeight is the signed weight for a disliked item. Must be
	// negative.
	DislikeWeight float64 `json:"dislike_weight"`

	// VectorWeight is the share of the blended score contributed by
	// vector similarity; the attribute-match score contributes the
	// remaining 1-VectorWeight. Range [0,1].
	VectorWeight float64 `json:"vector_weight"`

	// UserID selects the profile vector updated and scored against.
	UserID string `json:"user_id"`

	// EventTTL is how long processed event IDs are remembered. Replays
	// of an ID older than this are processed as new events.
	EventTTL time.Duration `json:"event_ttl"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		LikeWeight:    1.0,
		DislikeWeight: -1.0,
		VectorWeight:  0.7,
		UserID:        "default",
		EventTTL:      168 * time.Hour,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	if c.LikeWeight <= 0 {
		return fmt.Errorf("like weight must be positive, got %v", c.LikeWeight)
	}
	if c.DislikeWeight >= 0 {
		return fmt.Errorf("dislike weight must be negative, got %v", c.DislikeWeight)
	}
	if c.VectorWeight < 0 || c.VectorWeight > 1 {
		return fmt.Errorf("vector weight must be in [0,1], got %v", c.VectorWeight)
	}
	if c.UserID == "" {
		return fmt.Errorf("user ID must not be empty")
	}
	if c.EventTTL <= 0 {
		return fmt.Errorf("event TTL must be positive, got %v", c.EventTTL)
	}
	return nil
}
