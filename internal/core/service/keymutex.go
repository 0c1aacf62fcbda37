package service

import (
	"hash/fnv"
	"sync"
)

const defaultLockShards = 64

// keyedMutex serializes operations per key using a fixed set of sharded
// locks. Two keys may share a shard; that only costs contention, never
// correctness.
type keyedMutex struct {
	shards []sync.Mutex
}

func newKeyedMutex(shards int) *keyedMutex {
	if shards <= 0 {
		shards = defaultLockShards
	}
	return &keyedMutex{shards: make([]sync.Mutex, shards)}
}

// of maps a key deterministically to its shard lock.
func (k *keyedMutex) of(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &k.shards[int(h.Sum32())%len(k.shards)]
}
