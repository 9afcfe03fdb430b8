// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package store provides BadgerDB-backed persistence for Mirador.

A single Store wraps one BadgerDB instance shared by all record types,
separated by key prefix:

	item:<itemID>         item feature records (attributes, embedding, metadata)
	pref:<key>\x1f<value> attribute preference entries (running-mean score, count)
	vec:<userID>          user profile embeddings (running-mean vector, count)
	evt:<eventID>         processed feedback event IDs (TTL, replay suppression)

All values are JSON-encoded. Read-modify-write sequences that must be
atomic per key (profile vector updates, event-ID check-and-mark) run
inside a single Badger update transaction, with a sharded keyed mutex
serializing writers for the same key so concurrent updates cannot race
between read and commit.

The value log requires periodic garbage collection; RunGC is called on
an interval by the supervision tree.
*/
package store
