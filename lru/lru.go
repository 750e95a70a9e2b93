// Package lru implements the Least-Recently-Used eviction engine and its
// history-promoted LRU-K variant.
package lru

import (
	"sync"

	"github.com/dterekhov/cachex"
	"github.com/dterekhov/cachex/internal/list"
)

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithMetrics installs an observability backend. Nil is ignored.
func WithMetrics[K comparable, V any](m cachex.Metrics) Option[K, V] {
	return func(c *Cache[K, V]) {
		if m != nil {
			c.met = m
		}
	}
}

// WithOnEvict registers a callback invoked for every evicted entry.
// It runs under the engine lock; keep it lightweight.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// Cache is a recency-ordered cache: one intrusive list plus a key index.
// The head-adjacent node is always the eviction victim; any access moves
// the entry to the tail.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	idx      map[K]*list.Node[K, V]
	order    *list.List[K, V]

	met     cachex.Metrics
	onEvict func(K, V)
}

var _ cachex.Cache[string, int] = (*Cache[string, int])(nil)

// New constructs an LRU cache holding at most capacity entries.
// Capacity 0 is valid: the cache stores nothing and Put is a no-op.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	c := &Cache[K, V]{
		capacity: capacity,
		idx:      make(map[K]*list.Node[K, V], capacity),
		order:    list.New[K, V](),
		met:      cachex.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put inserts or updates k→v. An update promotes the entry to the tail;
// an insert at capacity first evicts the head-adjacent node.
func (c *Cache[K, V]) Put(k K, v V) {
	if c.capacity == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.idx[k]; ok {
		n.Val = v
		c.touch(n)
		return
	}
	if len(c.idx) >= c.capacity {
		c.evictOldest()
	}
	n := &list.Node[K, V]{Key: k, Val: v, Uses: 1}
	c.order.PushTail(n)
	c.idx[k] = n
	c.met.Size(len(c.idx))
}

// Get returns the value for k, promoting the entry on hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx[k]
	if !ok {
		c.met.Miss()
		var zero V
		return zero, false
	}
	c.touch(n)
	c.met.Hit()
	return n.Val, true
}

// Value returns the value for k, or the zero value of V on a miss.
func (c *Cache[K, V]) Value(k K) V {
	v, _ := c.Get(k)
	return v
}

// Remove deletes k if present and returns true on success.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx[k]
	if !ok {
		return false
	}
	c.order.Remove(n)
	delete(c.idx, k)
	c.met.Size(len(c.idx))
	return true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.idx)
}

// Purge drops all entries.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.idx = make(map[K]*list.Node[K, V], c.capacity)
	c.order = list.New[K, V]()
	c.met.Size(0)
}

// touch records an access: bump the counter and move the node to the tail.
func (c *Cache[K, V]) touch(n *list.Node[K, V]) {
	n.Uses++
	c.order.Remove(n)
	c.order.PushTail(n)
}

// evictOldest drops the head-adjacent node. Caller holds the lock and
// has checked that the cache is non-empty.
func (c *Cache[K, V]) evictOldest() {
	n := c.order.PopHead()
	delete(c.idx, n.Key)
	c.met.Evict()
	if c.onEvict != nil {
		c.onEvict(n.Key, n.Val)
	}
}
