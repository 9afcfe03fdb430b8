// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tovren/mirador/internal/logging"
	"github.com/tovren/mirador/internal/metrics"
	"github.com/tovren/mirador/internal/prefs"
)

// Ranker scores and orders a candidate item list, best first.
type Ranker interface {
	Rank(ctx context.Context, itemIDs []string) ([]prefs.ScoredItem, error)
}

// ItemSource enumerates stored items and resolves their attributes.
type ItemSource interface {
	ItemIDs(ctx context.Context) ([]string, error)
	Attributes(itemID string) (map[string]string, bool, error)
}

// Digest is one generated digest.
type Digest struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Items       []DigestItem `json:"items"`

	// Candidates is how many stored items were considered.
	Candidates int `json:"candidates"`
}

// DigestItem is one ranked entry of a digest.
type DigestItem struct {
	ItemID     string            `json:"item_id"`
	Score      float64           `json:"score"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Builder assembles digests from the ranked item population.
type Builder struct {
	topN   int
	ranker Ranker
	items  ItemSource
	logger zerolog.Logger
}

// NewBuilder creates a digest builder keeping the top n items.
func NewBuilder(topN int, ranker Ranker, items ItemSource) *Builder {
	if topN <= 0 {
		topN = 20
	}
	return &Builder{
		topN:   topN,
		ranker: ranker,
		items:  items,
		logger: logging.WithComponent("digest.builder"),
	}
}

// Build ranks every stored item and returns the top N with their
// attributes attached. An empty item population yields an empty digest,
// not an error.
func (b *Builder) Build(ctx context.Context, at time.Time) (*Digest, error) {
	start := time.Now()

	ids, err := b.items.ItemIDs(ctx)
	if err != nil {
		metrics.RecordDigestBuild("error", time.Since(start))
		return nil, fmt.Errorf("enumerate items: %w", err)
	}

	d := &Digest{GeneratedAt: at.UTC(), Candidates: len(ids)}
	if len(ids) == 0 {
		metrics.RecordDigestBuild("empty", time.Since(start))
		b.logger.Info().Msg("no items stored, digest is empty")
		return d, nil
	}

	ranked, err := b.ranker.Rank(ctx, ids)
	if err != nil {
		metrics.RecordDigestBuild("error", time.Since(start))
		return nil, fmt.Errorf("rank items: %w", err)
	}
	if len(ranked) > b.topN {
		ranked = ranked[:b.topN]
	}

	d.Items = make([]DigestItem, 0, len(ranked))
	for _, item := range ranked {
		attrs, _, err := b.items.Attributes(item.ItemID)
		if err != nil {
			metrics.RecordDigestBuild("error", time.Since(start))
			return nil, fmt.Errorf("attributes for %s: %w", item.ItemID, err)
		}
		d.Items = append(d.Items, DigestItem{
			ItemID:     item.ItemID,
			Score:      item.Score,
			Attributes: attrs,
		})
	}

	metrics.RecordDigestBuild("success", time.Since(start))
	b.logger.Info().
		Int("candidates", d.Candidates).
		Int("items", len(d.Items)).
		Dur("elapsed", time.Since(start)).
		Msg("digest built")
	return d, nil
}
