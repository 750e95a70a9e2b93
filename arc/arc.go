// Package arc implements an adaptive replacement cache composed of a
// recency (LRU) half and a frequency (LFU) half.
//
// Each half carries its own live index and a fixed-capacity ghost list
// of recently evicted keys. A ghost hit is evidence that the half was
// sized too small, so one unit of capacity shifts toward it from the
// other half. Entries start life in the recency half and graduate into
// the frequency half once their access count reaches the configured
// threshold.
//
// The two halves are independently locked and the engine holds no outer
// lock, so the ghost check → rebalance → delegate sequence is not atomic
// across them: a concurrent observer may see the capacities transiently
// off by one. Each half individually honors its invariants at all times.
// A graduated key stays live in both halves until the recency half
// displaces it.
package arc

import "github.com/dterekhov/cachex"

// DefaultTransformTime is the graduation threshold used when none is
// configured: an entry's second access mirrors it into the frequency half.
const DefaultTransformTime = 2

// Option configures a Cache.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	transform int
	met       cachex.Metrics
	onEvict   func(K, V)
}

// WithTransformTime sets the access count at which an entry graduates
// from the recency half to the frequency half. Values below 1 are raised
// to 1.
func WithTransformTime[K comparable, V any](t int) Option[K, V] {
	return func(c *config[K, V]) {
		if t < 1 {
			t = 1
		}
		c.transform = t
	}
}

// WithMetrics installs an observability backend. Nil is ignored.
func WithMetrics[K comparable, V any](m cachex.Metrics) Option[K, V] {
	return func(c *config[K, V]) {
		if m != nil {
			c.met = m
		}
	}
}

// WithOnEvict registers a callback invoked when a live entry is evicted
// from either half (the moment its value is released; the key may live
// on as a ghost). It runs under the owning half's lock.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *config[K, V]) { c.onEvict = fn }
}

// Cache is the ARC engine. The total capacity is split evenly across the
// halves at construction (ceil to the recency half) and thereafter
// shifts between them one unit at a time as ghost hits arrive; the sum
// is preserved by every rebalance.
type Cache[K comparable, V any] struct {
	lru *lruPart[K, V]
	lfu *lfuPart[K, V]

	initLRU int
	initLFU int

	met cachex.Metrics
}

var _ cachex.Cache[string, int] = (*Cache[string, int])(nil)

// New constructs an ARC cache with the given total capacity (≥ 1).
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	cfg := config[K, V]{
		transform: DefaultTransformTime,
		met:       cachex.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[K, V]{
		initLRU: (capacity + 1) / 2,
		initLFU: capacity / 2,
		met:     cfg.met,
	}
	evicted := func(k K, v V) {
		c.met.Evict()
		if cfg.onEvict != nil {
			cfg.onEvict(k, v)
		}
	}
	c.lru = newLRUPart[K, V](c.initLRU, cfg.transform, evicted)
	c.lfu = newLFUPart[K, V](c.initLFU, evicted)
	return c
}

// Put inserts or updates k→v. Ghosts are consulted first and capacity
// rebalanced toward the half whose ghost held the key; the write then
// lands in the recency half and is mirrored into the frequency half if
// it graduates.
func (c *Cache[K, V]) Put(k K, v V) {
	c.rebalanceOnGhost(k)
	if c.lru.put(k, v) {
		c.lfu.put(k, v)
	}
	c.met.Size(c.Len())
}

// Get returns the value for k. Ghosts are consulted for rebalancing,
// then the recency half is tried (mirroring into the frequency half on
// graduation), then the frequency half.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.rebalanceOnGhost(k)
	if v, ok, graduated := c.lru.get(k); ok {
		if graduated {
			c.lfu.put(k, v)
		}
		c.met.Hit()
		return v, true
	}
	if v, ok := c.lfu.get(k); ok {
		c.met.Hit()
		return v, true
	}
	c.met.Miss()
	var zero V
	return zero, false
}

// Value returns the value for k, or the zero value of V on a miss.
func (c *Cache[K, V]) Value(k K) V {
	v, _ := c.Get(k)
	return v
}

// Remove deletes k from both halves, live sets and ghosts alike.
// It returns true if a live entry was dropped from either half.
func (c *Cache[K, V]) Remove(k K) bool {
	a := c.lru.remove(k)
	b := c.lfu.remove(k)
	return a || b
}

// Len returns the number of live residencies across both halves. A key
// that graduated but has not yet been displaced from the recency half
// counts twice.
func (c *Cache[K, V]) Len() int {
	return c.lru.len() + c.lfu.len()
}

// Purge drops all entries and ghosts and restores the initial capacity
// split.
func (c *Cache[K, V]) Purge() {
	c.lru.purge(c.initLRU)
	c.lfu.purge(c.initLFU)
	c.met.Size(0)
}

// rebalanceOnGhost shifts one unit of capacity toward the half whose
// ghost list holds k, removing the ghost. Growth happens only if the
// other half could actually shrink, so the capacity sum is preserved.
func (c *Cache[K, V]) rebalanceOnGhost(k K) {
	switch {
	case c.lru.checkGhost(k):
		if c.lfu.decrease() {
			c.lru.increase()
		}
	case c.lfu.checkGhost(k):
		if c.lru.decrease() {
			c.lfu.increase()
		}
	}
}
