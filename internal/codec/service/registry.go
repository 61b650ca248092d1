package service

import (
	"math/big"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultRegistryShards is the shard count used when NewRegistry receives a non-positive value.
const DefaultRegistryShards = 16

type registryShard struct {
	mu           sync.RWMutex
	transformers map[string]*Transformer
}

// Registry caches transformers by (domain, tweak). The same pair always resolves to the
// same instance for the lifetime of the registry.
type Registry struct {
	shards []*registryShard
	group  singleflight.Group
}

// NewRegistry creates an empty registry split into the given number of shards.
func NewRegistry(shards int) *Registry {
	if shards <= 0 {
		shards = DefaultRegistryShards
	}
	r := &Registry{shards: make([]*registryShard, shards)}
	for i := range r.shards {
		r.shards[i] = &registryShard{transformers: make(map[string]*Transformer)}
	}
	return r
}

// Get returns the cached transformer for (domain, tweak), constructing it on first use.
// Concurrent callers asking for the same pair share a single construction.
func (r *Registry) Get(d, tweak *big.Int) (*Transformer, error) {
	key := registryKey(d, tweak)
	shard := r.shards[xxhash.Sum64String(key)%uint64(len(r.shards))]

	shard.mu.RLock()
	t, ok := shard.transformers[key]
	shard.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		shard.mu.RLock()
		existing, ok := shard.transformers[key]
		shard.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created, err := NewTransformer(d, tweak)
		if err != nil {
			return nil, err
		}

		shard.mu.Lock()
		shard.transformers[key] = created
		shard.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Transformer), nil
}

// Len returns the number of cached transformers.
func (r *Registry) Len() int {
	n := 0
	for _, shard := range r.shards {
		shard.mu.RLock()
		n += len(shard.transformers)
		shard.mu.RUnlock()
	}
	return n
}

func registryKey(d, tweak *big.Int) string {
	domainKey := "<nil>"
	if d != nil {
		domainKey = d.Text(16)
	}
	if tweak == nil {
		return domainKey
	}
	return domainKey + ":" + tweak.Text(16)
}
