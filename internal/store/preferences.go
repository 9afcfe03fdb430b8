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
	"github.com/tovren/mirador/internal/prefs"
)

// prefKeySep separates attribute key from value inside a storage key.
// The unit separator cannot appear in well-formed attribute strings, so
// ("a", "b:c") and ("a:b", "c") never collide.
const prefKeySep = "\x1f"

func prefKey(key, value string) []byte {
	return []byte(prefKeyPrefix + key + prefKeySep + value)
}

// GetPreference returns the stored entry for one attribute pair. found
// is false when the pair has never received feedback.
func (s *Store) GetPreference(key, value string) (prefs.Entry, bool, error) {
	start := time.Now()
	var entry prefs.Entry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefKey(key, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	metrics.RecordStoreOp("get", time.Since(start), err)
	if err != nil {
		return prefs.Entry{}, false, fmt.Errorf("get preference %s=%s: %w", key, value, err)
	}
	return entry, found, nil
}

// PutPreference stores an attribute preference entry, replacing any
// previous value for the pair.
func (s *Store) PutPreference(entry prefs.Entry) error {
	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("marshal preference: %w", err)
	}

	start := time.Now()
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(prefKey(entry.Key, entry.Value), data)
	})
	metrics.RecordStoreOp("upsert", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("put preference %s=%s: %w", entry.Key, entry.Value, err)
	}

	return nil
}

// Preferences returns every stored attribute preference entry.
func (s *Store) Preferences() ([]prefs.Entry, error) {
	start := time.Now()
	var entries []prefs.Entry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry prefs.Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})

	metrics.RecordStoreOp("scan", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("scan preferences: %w", err)
	}

	metrics.PreferenceEntries.Set(float64(len(entries)))
	return entries, nil
}
