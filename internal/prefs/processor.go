// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tovren/mirador/internal/logging"
	"github.com/tovren/mirador/internal/metrics"
)

// Processor is the single entry point for feedback events. One event
// drives both the preference model and the user profile vector.
type Processor struct {
	cfg      Config
	model    *Model
	features FeatureSource
	profiles ProfileStore
	seen     SeenStore
	logger   zerolog.Logger
}

// NewProcessor creates a feedback processor. seen may be nil, in which
// case event IDs are not deduplicated.
func NewProcessor(cfg Config, model *Model, features FeatureSource, profiles ProfileStore, seen SeenStore) *Processor {
	return &Processor{
		cfg:      cfg,
		model:    model,
		features: features,
		profiles: profiles,
		seen:     seen,
		logger:   logging.WithComponent("prefs.processor"),
	}
}

// ProcessFeedback applies one feedback event.
//
// An item with no stored attributes yields OK=false with no side
// effects; there is nothing to attribute the signal to. A replayed
// EventID yields OK=true, Duplicate=true with no side effects. A like
// on an item without an embedding still updates attribute preferences;
// the profile step is skipped and logged, not an error. The returned
// error is reserved for storage failures.
func (p *Processor) ProcessFeedback(ctx context.Context, ev Event) (Result, error) {
	start := time.Now()
	res := Result{ItemID: ev.ItemID}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	attributes, found, err := p.features.Attributes(ev.ItemID)
	if err != nil {
		metrics.RecordFeedback(ev.Type.String(), "error", time.Since(start))
		return res, fmt.Errorf("fetch attributes for %s: %w", ev.ItemID, err)
	}
	if !found {
		p.logger.Debug().Str("item_id", ev.ItemID).Msg("feedback on unanalyzed item, skipped")
		metrics.RecordFeedback(ev.Type.String(), "skipped", time.Since(start))
		return res, nil
	}

	// Replay suppression happens after the attributes check so a
	// feedback that arrives before analysis can be retried later under
	// the same event ID.
	marked := false
	if ev.EventID != "" && p.seen != nil {
		dup, err := p.seen.MarkEventSeen(ev.EventID, p.cfg.EventTTL)
		if err != nil {
			metrics.RecordFeedback(ev.Type.String(), "error", time.Since(start))
			return res, fmt.Errorf("check event %s: %w", ev.EventID, err)
		}
		if dup {
			p.logger.Debug().
				Str("item_id", ev.ItemID).
				Str("event_id", ev.EventID).
				Msg("duplicate feedback event suppressed")
			metrics.RecordFeedback(ev.Type.String(), "duplicate", time.Since(start))
			res.OK = true
			res.Duplicate = true
			return res, nil
		}
		marked = true
	}

	weight := p.cfg.LikeWeight
	if ev.Type == FeedbackDislike {
		weight = p.cfg.DislikeWeight
	}

	if err := p.model.RecordFeedback(attributes, weight); err != nil {
		if marked {
			p.releaseEvent(ev.EventID)
		}
		metrics.RecordFeedback(ev.Type.String(), "error", time.Since(start))
		return res, err
	}
	res.OK = true

	if ev.Type == FeedbackLike {
		updated, err := p.updateProfile(ev.ItemID)
		if err != nil {
			if marked {
				p.releaseEvent(ev.EventID)
			}
			metrics.RecordFeedback(ev.Type.String(), "error", time.Since(start))
			return res, err
		}
		res.ProfileUpdated = updated
	}

	p.logger.Debug().
		Str("item_id", ev.ItemID).
		Str("type", ev.Type.String()).
		Bool("profile_updated", res.ProfileUpdated).
		Int("attributes", len(attributes)).
		Msg("feedback processed")
	metrics.RecordFeedback(ev.Type.String(), "processed", time.Since(start))
	return res, nil
}

// releaseEvent hands back an event ID whose updates failed, so the
// client's retry of the same ID is processed rather than suppressed as
// a replay.
func (p *Processor) releaseEvent(eventID string) {
	if err := p.seen.UnmarkEvent(eventID); err != nil {
		p.logger.Error().Err(err).Str("event_id", eventID).
			Msg("failed to release event marker, retries of this event will be dropped")
	}
}

func (p *Processor) updateProfile(itemID string) (bool, error) {
	embedding, found, err := p.features.ItemVector(itemID)
	if err != nil {
		return false, fmt.Errorf("fetch embedding for %s: %w", itemID, err)
	}
	if !found {
		p.logger.Debug().Str("item_id", itemID).Msg("liked item has no embedding, profile unchanged")
		return false, nil
	}

	if _, err := p.profiles.UpdateUserProfile(p.cfg.UserID, embedding); err != nil {
		return false, fmt.Errorf("update profile from %s: %w", itemID, err)
	}
	return true, nil
}

// ProcessBatch applies events strictly in input order, one event fully
// completed before the next begins. Failures are reported per event and
// do not abort the batch.
func (p *Processor) ProcessBatch(ctx context.Context, events []Event) []Result {
	metrics.FeedbackBatchSize.Observe(float64(len(events)))

	results := make([]Result, 0, len(events))
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{ItemID: ev.ItemID, Error: err.Error()})
			continue
		}

		res, err := p.ProcessFeedback(ctx, ev)
		if err != nil {
			p.logger.Error().Err(err).Str("item_id", ev.ItemID).Msg("feedback event failed")
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}
