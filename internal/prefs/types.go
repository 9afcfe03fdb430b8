// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"fmt"
	"time"
)

// FeedbackType is the polarity of a feedback event.
type FeedbackType int

const (
	FeedbackLike FeedbackType = iota
	FeedbackDislike
)

// String returns the wire name of the feedback type.
func (t FeedbackType) String() string {
	switch t {
	case FeedbackLike:
		return "like"
	case FeedbackDislike:
		return "dislike"
	default:
		return fmt.Sprintf("FeedbackType(%d)", int(t))
	}
}

// ParseFeedbackType parses the wire name of a feedback type.
func ParseFeedbackType(s string) (FeedbackType, error) {
	switch s {
	case "like":
		return FeedbackLike, nil
	case "dislike":
		return FeedbackDislike, nil
	default:
		return 0, fmt.Errorf("unknown feedback type %q", s)
	}
}

// Entry is the persisted running-mean preference score for one
// attribute pair.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Score     float64   `json:"score"`
	Samples   int       `json:"samples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is one feedback event. EventID is optional; when present it is
// used to suppress replays of the same event.
type Event struct {
	ItemID  string
	Type    FeedbackType
	EventID string
}

// Result reports the outcome of processing one feedback event.
type Result struct {
	ItemID string `json:"item_id"`

	// OK is true once the preference model was updated, or when the
	// event was recognized as a replay. False means the item had no
	// stored attributes and nothing changed.
	OK bool `json:"ok"`

	// Duplicate marks a replayed EventID. No state was changed.
	Duplicate bool `json:"duplicate,omitempty"`

	// ProfileUpdated is true when the like also folded the item's
	// embedding into the user profile.
	ProfileUpdated bool `json:"profile_updated,omitempty"`

	// Error carries a storage failure message in batch results.
	Error string `json:"error,omitempty"`
}

// ScoredItem is one ranked candidate.
type ScoredItem struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// EntryStore persists attribute preference entries.
type EntryStore interface {
	GetPreference(key, value string) (Entry, bool, error)
	PutPreference(entry Entry) error
	Preferences() ([]Entry, error)
}

// FeatureSource exposes the analyzed features of content items.
type FeatureSource interface {
	Attributes(itemID string) (map[string]string, bool, error)
	ItemVector(itemID string) ([]float64, bool, error)
}

// ProfileStore persists per-user profile vectors. UpdateUserProfile
// must apply the per-dimension running mean atomically per user.
type ProfileStore interface {
	UpdateUserProfile(userID string, embedding []float64) ([]float64, error)
	UserProfile(userID string) ([]float64, int, bool, error)
}

// SeenStore remembers processed event IDs for replay suppression.
// MarkEventSeen reports whether the ID was already present and records
// it if not, atomically. UnmarkEvent releases a recorded ID so the
// processor can hand it back when the event's updates fail and the
// client should retry.
type SeenStore interface {
	MarkEventSeen(eventID string, ttl time.Duration) (bool, error)
	UnmarkEvent(eventID string) error
}
