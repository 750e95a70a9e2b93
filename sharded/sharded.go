// Package sharded partitions any cachex.Cache across N independent
// shards keyed by hash(key) mod N, scaling concurrent throughput with
// per-shard locking.
package sharded

import (
	"context"
	"errors"

	"github.com/dterekhov/cachex"
	"github.com/dterekhov/cachex/internal/hashutil"
	"github.com/dterekhov/cachex/internal/singleflight"
	"github.com/dterekhov/cachex/lfu"
	"github.com/dterekhov/cachex/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("sharded: no loader configured")

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithHasher overrides the key hash used for shard routing. The default
// handles strings, integers, fixed byte arrays and fmt.Stringer; other
// key types require this option.
func WithHasher[K comparable, V any](h func(K) uint64) Option[K, V] {
	return func(c *Cache[K, V]) {
		if h != nil {
			c.hash = h
		}
	}
}

// WithLoader installs the fetch function used by GetOrLoad on a miss.
func WithLoader[K comparable, V any](fn func(ctx context.Context, k K) (V, error)) Option[K, V] {
	return func(c *Cache[K, V]) { c.loader = fn }
}

// Cache fans operations out to a fixed vector of inner caches, each a
// full independent instance of the wrapped policy with its own lock.
// The wrapper itself holds no lock and adds no cross-shard invariants.
type Cache[K comparable, V any] struct {
	shards []cachex.Cache[K, V]
	hash   func(K) uint64

	loader func(ctx context.Context, k K) (V, error)
	sf     singleflight.Group[K, V]
}

var _ cachex.Cache[string, int] = (*Cache[string, int])(nil)

// New constructs a sharded cache. The total capacity is split across
// sliceNum shards (ceil division); sliceNum 0 selects the host's
// hardware concurrency, clamped to at least 1. newShard builds one inner
// cache of the given per-shard capacity.
func New[K comparable, V any](capacity, sliceNum int, newShard func(capacity int) cachex.Cache[K, V], opts ...Option[K, V]) *Cache[K, V] {
	if sliceNum <= 0 {
		sliceNum = hashutil.DefaultShardCount()
	}
	perShard := (capacity + sliceNum - 1) / sliceNum

	c := &Cache[K, V]{
		shards: make([]cachex.Cache[K, V], sliceNum),
		hash:   hashutil.Sum64[K],
	}
	for i := range c.shards {
		c.shards[i] = newShard(perShard)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewLRU constructs a sharded cache with LRU shards.
func NewLRU[K comparable, V any](capacity, sliceNum int, opts ...Option[K, V]) *Cache[K, V] {
	return New(capacity, sliceNum, func(perShard int) cachex.Cache[K, V] {
		return lru.New[K, V](perShard)
	}, opts...)
}

// NewLFU constructs a sharded cache with LFU shards using the default
// aging trigger.
func NewLFU[K comparable, V any](capacity, sliceNum int, opts ...Option[K, V]) *Cache[K, V] {
	return New(capacity, sliceNum, func(perShard int) cachex.Cache[K, V] {
		return lfu.New[K, V](perShard)
	}, opts...)
}

// Put inserts or updates k→v in the owning shard.
func (c *Cache[K, V]) Put(k K, v V) { c.shard(k).Put(k, v) }

// Get returns the value for k from the owning shard.
func (c *Cache[K, V]) Get(k K) (V, bool) { return c.shard(k).Get(k) }

// Value returns the value for k, or the zero value of V on a miss.
func (c *Cache[K, V]) Value(k K) V { return c.shard(k).Value(k) }

// Remove deletes k from the owning shard.
func (c *Cache[K, V]) Remove(k K) bool { return c.shard(k).Remove(k) }

// Len returns the total number of resident entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Purge drops all entries in every shard.
func (c *Cache[K, V]) Purge() {
	for _, s := range c.shards {
		s.Purge()
	}
}

// GetOrLoad returns the value for k, loading it via the configured
// loader on a miss. Concurrent loads for the same key are coalesced, so
// the loader runs at most once per in-flight key.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	return c.sf.Do(ctx, k, func() (V, error) {
		// Re-check once leading the flight: an earlier flight may have
		// filled the cache since the miss above.
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
}

// shard routes k to its owning inner cache.
func (c *Cache[K, V]) shard(k K) cachex.Cache[K, V] {
	return c.shards[hashutil.ShardIndex(c.hash(k), len(c.shards))]
}
