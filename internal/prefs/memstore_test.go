// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// memStore is an in-memory implementation of the package's storage
// interfaces for tests. failOps injects storage failures by operation
// name.
type memStore struct {
	mu       sync.Mutex
	entries  map[string]Entry
	attrs    map[string]map[string]string
	vectors  map[string][]float64
	profiles map[string]*memProfile
	seen     map[string]bool
	failOps  map[string]bool
}

type memProfile struct {
	vector []float64
	count  int
}

func newMemStore() *memStore {
	return &memStore{
		entries:  make(map[string]Entry),
		attrs:    make(map[string]map[string]string),
		vectors:  make(map[string][]float64),
		profiles: make(map[string]*memProfile),
		seen:     make(map[string]bool),
		failOps:  make(map[string]bool),
	}
}

var errInjected = errors.New("injected storage failure")

func pairKey(key, value string) string {
	return key + "\x1f" + value
}

func (s *memStore) GetPreference(key, value string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["get_preference"] {
		return Entry{}, false, errInjected
	}
	entry, ok := s.entries[pairKey(key, value)]
	return entry, ok, nil
}

func (s *memStore) PutPreference(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["put_preference"] {
		return errInjected
	}
	s.entries[pairKey(entry.Key, entry.Value)] = entry
	return nil
}

func (s *memStore) Preferences() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func (s *memStore) Attributes(itemID string) (map[string]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["attributes"] {
		return nil, false, errInjected
	}
	m := s.attrs[itemID]
	if len(m) == 0 {
		return nil, false, nil
	}
	return m, true, nil
}

func (s *memStore) ItemVector(itemID string) ([]float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["item_vector"] {
		return nil, false, errInjected
	}
	v, ok := s.vectors[itemID]
	return v, ok, nil
}

func (s *memStore) UpdateUserProfile(userID string, embedding []float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["update_profile"] {
		return nil, errInjected
	}

	prof, ok := s.profiles[userID]
	if !ok {
		prof = &memProfile{vector: append([]float64(nil), embedding...), count: 1}
		s.profiles[userID] = prof
		return append([]float64(nil), prof.vector...), nil
	}

	if len(prof.vector) != len(embedding) {
		return nil, fmt.Errorf("dimension mismatch: %d vs %d", len(prof.vector), len(embedding))
	}
	n := float64(prof.count)
	for i, v := range embedding {
		prof.vector[i] = (prof.vector[i]*n + v) / (n + 1)
	}
	prof.count++
	return append([]float64(nil), prof.vector...), nil
}

func (s *memStore) UserProfile(userID string) ([]float64, int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prof, ok := s.profiles[userID]
	if !ok {
		return nil, 0, false, nil
	}
	return append([]float64(nil), prof.vector...), prof.count, true, nil
}

func (s *memStore) MarkEventSeen(eventID string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["mark_seen"] {
		return false, errInjected
	}
	if s.seen[eventID] {
		return true, nil
	}
	s.seen[eventID] = true
	return false, nil
}

func (s *memStore) UnmarkEvent(eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOps["unmark_seen"] {
		return errInjected
	}
	delete(s.seen, eventID)
	return nil
}

func (s *memStore) putItem(itemID string, attrs map[string]string, vec []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if attrs != nil {
		s.attrs[itemID] = attrs
	}
	if vec != nil {
		s.vectors[itemID] = vec
	}
}
