// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package store

import (
	"hash/fnv"
	"sync"
)

// lockShards must be a power of two.
const lockShards = 64

// keyedMutex serializes writers for the same key without a per-key
// allocation. Different keys may share a shard; that costs contention,
// never correctness. The zero value is ready to use.
type keyedMutex struct {
	shards [lockShards]sync.Mutex
}

func (m *keyedMutex) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &m.shards[h.Sum32()&(lockShards-1)]
	mu.Lock()
	return mu
}
