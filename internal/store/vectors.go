// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tovren/mirador/internal/metrics"
)

// ErrDimensionMismatch is returned when an incoming embedding's length
// differs from the stored profile's. Mixing dimensionalities would
// silently corrupt the running mean, so the write is rejected.
var ErrDimensionMismatch = errors.New("embedding dimensionality does not match stored profile")

// profileRecord is the persisted form of a user's taste vector: the
// running mean of the embeddings of every item the user liked.
type profileRecord struct {
	UserID    string    `json:"user_id"`
	Vector    []float64 `json:"vector"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

func vecKey(userID string) []byte {
	return []byte(vecKeyPrefix + userID)
}

// UpdateUserProfile folds a liked item's embedding into the user's
// profile vector by per-dimension running mean and returns the new
// vector. An absent profile is created equal to the embedding with
// count 1. The read-modify-write runs inside one transaction under a
// per-user lock, so concurrent likes for the same user serialize.
func (s *Store) UpdateUserProfile(userID string, embedding []float64) ([]float64, error) {
	if len(embedding) == 0 {
		return nil, errors.New("empty embedding")
	}

	mu := s.vecLocks.lock(userID)
	defer mu.Unlock()

	start := time.Now()
	var updated []float64

	err := s.db.Update(func(txn *badger.Txn) error {
		rec := profileRecord{UserID: userID}

		item, err := txn.Get(vecKey(userID))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("unmarshal profile: %w", err)
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if rec.Count == 0 {
			rec.Vector = append([]float64(nil), embedding...)
			rec.Count = 1
		} else {
			if len(rec.Vector) != len(embedding) {
				return fmt.Errorf("profile %s has %d dimensions, embedding has %d: %w",
					userID, len(rec.Vector), len(embedding), ErrDimensionMismatch)
			}
			n := float64(rec.Count)
			for i, v := range embedding {
				rec.Vector[i] = (rec.Vector[i]*n + v) / (n + 1)
			}
			rec.Count++
		}
		rec.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		if err := txn.Set(vecKey(userID), data); err != nil {
			return err
		}

		updated = append([]float64(nil), rec.Vector...)
		return nil
	})

	metrics.RecordStoreOp("upsert", time.Since(start), err)
	if err != nil {
		if errors.Is(err, ErrDimensionMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile %s: %w", userID, err)
	}
	return updated, nil
}

// UserProfile returns the user's profile vector and how many liked
// items it averages. ok is false when the user has no profile yet.
func (s *Store) UserProfile(userID string) ([]float64, int, bool, error) {
	start := time.Now()
	var rec profileRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(vecKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	metrics.RecordStoreOp("get", time.Since(start), err)
	if err != nil {
		return nil, 0, false, fmt.Errorf("get profile %s: %w", userID, err)
	}
	if !found {
		return nil, 0, false, nil
	}
	return rec.Vector, rec.Count, true, nil
}
