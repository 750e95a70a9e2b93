// Package cachex provides fast, generic, in-process key/value caches with
// three eviction policies — LRU, LFU with frequency aging, and an adaptive
// replacement cache (ARC) — plus two composition wrappers: a history-promoted
// LRU-K variant and a hash-sharded container for concurrency scaling.
//
// # Design
//
//   - Storage: each engine keeps a map[K]*node for lookups and one or more
//     sentinel-headed intrusive doubly linked lists for ordering. Insertion
//     is always at the tail (most recent), eviction always from the head.
//     All operations are O(1) expected, except the LFU aging pass which is
//     O(N) and amortized.
//
//   - Concurrency: every engine instance holds exactly one mutex, acquired
//     on entry to each public operation. The ARC engine's two halves are
//     independently locked; the engine itself holds no outer lock, so a
//     concurrent observer may see the halves mid-rebalance (each half
//     individually honors its invariants). The sharded wrapper fans out to
//     N full engine instances and adds no locking of its own.
//
//   - Ghost lists: the ARC halves each keep a fixed-capacity list of keys
//     recently evicted from their hot set. A ghost hit on an operation
//     shifts capacity toward the half that proved it needed the room.
//
//   - Metrics: engines accept a Metrics implementation receiving
//     Hit/Miss/Evict/Size signals. NoopMetrics is the default; the
//     metrics/prom subpackage exports a Prometheus adapter.
//
//   - Loading: the sharded wrapper offers GetOrLoad, coalescing concurrent
//     loads for the same key (singleflight).
//
// # Basic usage
//
//	c := lru.New[string, []byte](10_000)
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// # Picking a policy
//
// LRU is the cheapest and the right default for recency-dominated loads.
// LFU keeps long-term-popular entries resident and resists bursty scans;
// its aging knob (WithMaxAverageFreq) controls how quickly old popularity
// decays. ARC adapts between the two at runtime and needs no tuning.
// lru.NewK defers admission until a key has proven repeated interest.
// sharded.New partitions any of the above across independent shards.
//
// # Sharded cache with a loader
//
//	c := sharded.NewLRU[string, string](100_000, 0,
//	    sharded.WithLoader(func(ctx context.Context, k string) (string, error) {
//	        return fetch(ctx, k) // e.g. from a DB
//	    }))
//	v, err := c.GetOrLoad(ctx, "key")
//
// # Exporting metrics
//
//	m := prom.New(nil, "myapp", "cache", nil)
//	c := lfu.New[string, []byte](10_000, lfu.WithMetrics[string, []byte](m))
//
// All caches implement the Cache interface declared in this package.
package cachex
