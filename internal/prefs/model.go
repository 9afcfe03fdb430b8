// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"
)

// pairLockShards must be a power of two.
const pairLockShards = 64

// Model maintains the running-mean preference score per attribute pair.
type Model struct {
	entries EntryStore

	// pairLocks serializes read-modify-write per attribute pair so
	// concurrent feedback touching the same pair cannot lose updates.
	pairLocks [pairLockShards]sync.Mutex
}

// NewModel creates a preference model backed by the given entry store.
func NewModel(entries EntryStore) *Model {
	return &Model{entries: entries}
}

// RecordFeedback applies one signed feedback weight to every attribute
// pair of an item. A pair seen for the first time gets score=weight and
// one sample; an existing pair's score moves to the exact running mean
// of all weights ever applied to it. Pairs absent from attributes are
// untouched.
//
// There is no event deduplication here; replaying the same feedback
// shifts the means again. Callers needing idempotency go through
// Processor, which suppresses duplicate event IDs.
func (m *Model) RecordFeedback(attributes map[string]string, weight float64) error {
	for key, value := range attributes {
		if err := m.applyWeight(key, value, weight); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) applyWeight(key, value string, weight float64) error {
	mu := m.pairLock(key, value)
	mu.Lock()
	defer mu.Unlock()

	entry, found, err := m.entries.GetPreference(key, value)
	if err != nil {
		return fmt.Errorf("record feedback for %s=%s: %w", key, value, err)
	}

	if !found {
		entry = Entry{Key: key, Value: value, Score: weight, Samples: 1}
	} else {
		n := float64(entry.Samples)
		entry.Score = (entry.Score*n + weight) / (n + 1)
		entry.Samples++
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := m.entries.PutPreference(entry); err != nil {
		return fmt.Errorf("record feedback for %s=%s: %w", key, value, err)
	}
	return nil
}

// AttributeScore returns the stored score and sample count for one
// attribute pair. ok is false when the pair was never observed.
func (m *Model) AttributeScore(key, value string) (float64, int, bool, error) {
	entry, found, err := m.entries.GetPreference(key, value)
	if err != nil {
		return 0, 0, false, err
	}
	if !found {
		return 0, 0, false, nil
	}
	return entry.Score, entry.Samples, true, nil
}

// MatchScore aggregates the stored preferences matching an item's
// attributes into one value: the mean over contributing pairs of
// score*ln(samples+1). Only pairs with a stored entry and a positive
// score contribute; negative entries never penalize an item for
// sharing one disliked trait with an otherwise good match. With no
// contributing pair the result is 0.
//
// The log factor dampens confidence: a pair with enormous sample count
// cannot dominate, and taking the mean rather than the sum keeps an
// item matching one strong attribute from automatically outranking an
// item matching many weaker ones.
func (m *Model) MatchScore(attributes map[string]string) (float64, error) {
	var sum float64
	matched := 0

	for key, value := range attributes {
		entry, found, err := m.entries.GetPreference(key, value)
		if err != nil {
			return 0, fmt.Errorf("match score for %s=%s: %w", key, value, err)
		}
		if !found || entry.Score <= 0 {
			continue
		}
		sum += entry.Score * math.Log(float64(entry.Samples)+1)
		matched++
	}

	if matched == 0 {
		return 0, nil
	}
	return sum / float64(matched), nil
}

// Entries returns every learned preference entry.
func (m *Model) Entries() ([]Entry, error) {
	return m.entries.Preferences()
}

func (m *Model) pairLock(key, value string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	_, _ = h.Write([]byte{0x1f})
	_, _ = h.Write([]byte(value))
	return &m.pairLocks[h.Sum32()&(pairLockShards-1)]
}
