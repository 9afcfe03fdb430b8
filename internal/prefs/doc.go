// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package prefs implements Mirador's preference learning and content
scoring.

Three components cooperate:

  - Model maintains a running-mean preference score per attribute pair
    (scene_type=indoor, tag_cat=cat, ...), updated on every feedback
    event, and aggregates them into a match score for a candidate item.

  - Processor is the single entry point for feedback events. It looks
    up the item's stored attributes, applies the configured signed
    weight to the Model, and on a like folds the item's embedding into
    the user's profile vector.

  - Engine produces the ranking score: the Model's attribute-match
    score blended with the cosine similarity between the item embedding
    and the user profile, weighted by Config.VectorWeight.

# Update law

Both the per-attribute score and the profile vector use the exact
cumulative mean: with n prior samples and a new weight w,

	score' = (score*n + w) / (n+1)

Every historical event keeps equal influence; there is no decay
parameter. The marginal effect of one event shrinks as 1/(n+1), which
makes behavior reproducible in tests.

Read-modify-write of one attribute pair or one user profile must be
serialized or the running mean loses updates. The Model holds a sharded
lock map keyed by attribute pair; profile updates are serialized by the
persistence layer. Reads run freely in parallel.

Storage is abstracted behind the EntryStore, FeatureSource,
ProfileStore and SeenStore interfaces; the production implementation is
internal/store.
*/
package prefs
