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

	"github.com/tovren/mirador/internal/metrics"
)

// MarkEventSeen atomically records a feedback event ID and reports
// whether it had been seen before. The entry expires after ttl, after
// which the same ID would be accepted again. The check and the write
// happen in one transaction so two concurrent submissions of the same
// ID cannot both come back unseen.
func (s *Store) MarkEventSeen(eventID string, ttl time.Duration) (bool, error) {
	key := []byte(eventKeyPrefix + eventID)

	start := time.Now()
	seen := false

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			seen = true
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		e := badger.NewEntry(key, []byte{1}).WithTTL(ttl)
		return txn.SetEntry(e)
	})

	metrics.RecordStoreOp("upsert", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return seen, nil
}

// UnmarkEvent deletes a recorded event ID. The feedback processor
// calls this when an event's updates fail after the ID was marked, so
// the client's retry is processed instead of suppressed as a replay.
// Deleting an absent ID is a no-op.
func (s *Store) UnmarkEvent(eventID string) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(eventKeyPrefix + eventID))
	})

	metrics.RecordStoreOp("delete", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("unmark event %s: %w", eventID, err)
	}
	return nil
}
