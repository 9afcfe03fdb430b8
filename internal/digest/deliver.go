// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package digest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tovren/mirador/internal/logging"
)

// Deliverer ships a built digest to its consumer. Email rendering and
// transport are external; implementations here only hand the digest
// off.
type Deliverer interface {
	Deliver(ctx context.Context, d *Digest) error
}

// LogDeliverer records the digest in the log. Used when no external
// delivery hook is configured.
type LogDeliverer struct {
	logger zerolog.Logger
}

// NewLogDeliverer creates a log-backed deliverer.
func NewLogDeliverer() *LogDeliverer {
	return &LogDeliverer{logger: logging.WithComponent("digest.deliver")}
}

// Deliver logs the digest's top entries.
func (l *LogDeliverer) Deliver(_ context.Context, d *Digest) error {
	ev := l.logger.Info().
		Time("generated_at", d.GeneratedAt).
		Int("candidates", d.Candidates).
		Int("items", len(d.Items))

	if len(d.Items) > 0 {
		top := d.Items[0]
		ev = ev.Str("top_item", top.ItemID).Float64("top_score", top.Score)
	}
	ev.Msg("digest delivered")
	return nil
}
