// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tovren/mirador/internal/metrics"
)

// ItemRecord holds the analyzed features of one feed item: the semantic
// attribute tags and the embedding produced by the external analysis
// pipeline.
type ItemRecord struct {
	ItemID     string            `json:"item_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Embedding  []float64         `json:"embedding,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func itemKey(itemID string) []byte {
	return []byte(itemKeyPrefix + itemID)
}

// PutItem stores a complete item record, replacing any previous
// attributes and embedding for the item.
func (s *Store) PutItem(itemID string, attributes map[string]string, embedding []float64) error {
	mu := s.itemLocks.lock(itemID)
	defer mu.Unlock()

	rec := ItemRecord{
		ItemID:     itemID,
		Attributes: attributes,
		Embedding:  embedding,
		UpdatedAt:  time.Now().UTC(),
	}
	return s.putItemRecord(&rec)
}

// PutAttributes replaces the item's attribute map, keeping any stored
// embedding.
func (s *Store) PutAttributes(itemID string, attributes map[string]string) error {
	mu := s.itemLocks.lock(itemID)
	defer mu.Unlock()

	rec, _, err := s.getItemRecord(itemID)
	if err != nil {
		return err
	}
	rec.ItemID = itemID
	rec.Attributes = attributes
	rec.UpdatedAt = time.Now().UTC()
	return s.putItemRecord(&rec)
}

// PutItemVector replaces the item's embedding, keeping any stored
// attributes. Last write wins.
func (s *Store) PutItemVector(itemID string, embedding []float64) error {
	mu := s.itemLocks.lock(itemID)
	defer mu.Unlock()

	rec, _, err := s.getItemRecord(itemID)
	if err != nil {
		return err
	}
	rec.ItemID = itemID
	rec.Embedding = embedding
	rec.UpdatedAt = time.Now().UTC()
	return s.putItemRecord(&rec)
}

// Item returns the full record for an item. ok is false when the item
// is unknown.
func (s *Store) Item(itemID string) (ItemRecord, bool, error) {
	return s.getItemRecord(itemID)
}

// Attributes returns the item's attribute map. ok is false when the
// item is unknown or carries no attributes.
func (s *Store) Attributes(itemID string) (map[string]string, bool, error) {
	rec, found, err := s.getItemRecord(itemID)
	if err != nil || !found || len(rec.Attributes) == 0 {
		return nil, false, err
	}
	return rec.Attributes, true, nil
}

// ItemVector returns the item's embedding. ok is false when the item is
// unknown or has no embedding.
func (s *Store) ItemVector(itemID string) ([]float64, bool, error) {
	rec, found, err := s.getItemRecord(itemID)
	if err != nil || !found || len(rec.Embedding) == 0 {
		return nil, false, err
	}
	return rec.Embedding, true, nil
}

// ItemIDs enumerates all stored item IDs. The context is checked
// between keys so a large scan can be abandoned.
func (s *Store) ItemIDs(ctx context.Context) ([]string, error) {
	start := time.Now()
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, itemKeyPrefix))
		}
		return nil
	})

	metrics.RecordStoreOp("scan", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	return ids, nil
}

// DeleteItem removes an item record. Deleting an unknown item is a
// no-op.
func (s *Store) DeleteItem(itemID string) error {
	mu := s.itemLocks.lock(itemID)
	defer mu.Unlock()

	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(itemKey(itemID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	metrics.RecordStoreOp("delete", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", itemID, err)
	}
	return nil
}

func (s *Store) getItemRecord(itemID string) (ItemRecord, bool, error) {
	start := time.Now()
	var rec ItemRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(itemKey(itemID))
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
		return ItemRecord{}, false, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return rec, found, nil
}

func (s *Store) putItemRecord(rec *ItemRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal item %s: %w", rec.ItemID, err)
	}

	start := time.Now()
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(rec.ItemID), data)
	})
	metrics.RecordStoreOp("upsert", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("put item %s: %w", rec.ItemID, err)
	}
	return nil
}
