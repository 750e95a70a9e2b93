package lru

import "github.com/dterekhov/cachex"

// KCache is an LRU-K admission filter over a main LRU cache: a key enters
// the main cache only after k observed accesses, tracked in a separate
// history LRU mapping key→access count. One-off scans therefore never
// displace proven-hot entries.
//
// The wrapper holds no lock of its own; the main and history caches are
// independently locked, so a Get/Put pair is not atomic across the two.
type KCache[K comparable, V any] struct {
	main    *Cache[K, V]
	history *Cache[K, int]
	k       int
}

var _ cachex.Cache[string, int] = (*KCache[string, int])(nil)

// NewK constructs an LRU-K cache. capacity bounds the main cache,
// historyCapacity bounds the access-count history, and k (≥ 1) is the
// number of observed accesses required for admission.
func NewK[K comparable, V any](capacity, historyCapacity, k int, opts ...Option[K, V]) *KCache[K, V] {
	if k < 1 {
		k = 1
	}
	return &KCache[K, V]{
		main:    New[K, V](capacity, opts...),
		history: New[K, int](historyCapacity),
		k:       k,
	}
}

// Get records the access in the history and returns whatever the main
// cache holds for k (possibly a miss).
func (c *KCache[K, V]) Get(k K) (V, bool) {
	seen, _ := c.history.Get(k)
	c.history.Put(k, seen+1)
	return c.main.Get(k)
}

// Value returns the value for k, or the zero value of V on a miss.
func (c *KCache[K, V]) Value(k K) V {
	v, _ := c.Get(k)
	return v
}

// Put overwrites k in the main cache if it is already resident, records
// the access, and admits (k, v) into the main cache once the history
// count reaches the promotion threshold.
func (c *KCache[K, V]) Put(k K, v V) {
	if _, ok := c.main.Get(k); ok {
		c.main.Put(k, v)
	}

	seen, _ := c.history.Get(k)
	seen++
	c.history.Put(k, seen)

	if seen >= c.k {
		c.history.Remove(k)
		c.main.Put(k, v)
	}
}

// Remove deletes k from both the main cache and the history.
// It returns true if the key was resident in the main cache.
func (c *KCache[K, V]) Remove(k K) bool {
	c.history.Remove(k)
	return c.main.Remove(k)
}

// Len returns the number of entries resident in the main cache.
func (c *KCache[K, V]) Len() int { return c.main.Len() }

// Purge drops all entries and the accumulated access history.
func (c *KCache[K, V]) Purge() {
	c.main.Purge()
	c.history.Purge()
}
