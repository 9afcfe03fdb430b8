// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tovren/mirador/internal/metrics"
)

// Engine produces the blended ranking score used to order content for
// the digest and the live feed.
type Engine struct {
	cfg      Config
	model    *Model
	features FeatureSource
	profiles ProfileStore
}

// NewEngine creates a scoring engine.
func NewEngine(cfg Config, model *Model, features FeatureSource, profiles ProfileStore) *Engine {
	return &Engine{
		cfg:      cfg,
		model:    model,
		features: features,
		profiles: profiles,
	}
}

// Score returns the ranking score for one item.
//
// An item with no stored attributes scores 0: unscored items sort as
// neutral, they are not excluded. When the item has no embedding or no
// profile vector exists yet, the attribute-match score is returned
// unblended. Otherwise the cosine similarity between embedding and
// profile is mapped from [-1,1] onto [0,10] and blended with the match
// score by VectorWeight.
func (e *Engine) Score(ctx context.Context, itemID string) (float64, error) {
	start := time.Now()
	score, err := e.score(ctx, itemID)
	metrics.RecordScoring("score", time.Since(start))
	return score, err
}

func (e *Engine) score(ctx context.Context, itemID string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	attributes, found, err := e.features.Attributes(itemID)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", itemID, err)
	}
	if !found {
		return 0, nil
	}

	tagScore, err := e.model.MatchScore(attributes)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", itemID, err)
	}

	itemVec, found, err := e.features.ItemVector(itemID)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", itemID, err)
	}
	if !found {
		return tagScore, nil
	}

	profile, _, found, err := e.profiles.UserProfile(e.cfg.UserID)
	if err != nil {
		return 0, fmt.Errorf("score %s: %w", itemID, err)
	}
	if !found {
		return tagScore, nil
	}

	similarity := cosineSimilarity(profile, itemVec)
	normalized := (similarity + 1) * 5

	return tagScore*(1-e.cfg.VectorWeight) + normalized*e.cfg.VectorWeight, nil
}

// Rank scores a candidate list and sorts it descending. The sort is
// stable: equal scores keep their input order.
func (e *Engine) Rank(ctx context.Context, itemIDs []string) ([]ScoredItem, error) {
	start := time.Now()
	defer func() {
		metrics.RecordScoring("rank", time.Since(start))
		metrics.ScoringItemsRanked.Observe(float64(len(itemIDs)))
	}()

	ranked := make([]ScoredItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		score, err := e.score(ctx, id)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, ScoredItem{ItemID: id, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// cosineSimilarity returns dot(a,b) / (||a||*||b||). A zero-norm vector
// or a length mismatch yields 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
