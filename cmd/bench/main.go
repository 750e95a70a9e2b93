// Command bench runs a synthetic workload against a chosen eviction
// policy and reports the hit rate, with optional pprof/Prometheus
// endpoints for inspection.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dterekhov/cachex"
	"github.com/dterekhov/cachex/arc"
	"github.com/dterekhov/cachex/lfu"
	"github.com/dterekhov/cachex/lru"
	pmet "github.com/dterekhov/cachex/metrics/prom"
	"github.com/dterekhov/cachex/sharded"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		policy   = flag.String("policy", "lru", "eviction policy: lru | lfu | arc | lruk | sharded-lru | sharded-lfu")
		shards   = flag.Int("shards", 0, "shard count for sharded policies (0=auto)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	// ---- pprof / Prometheus endpoints (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}
	var metrics cachex.Metrics = cachex.NoopMetrics{}
	if *metricsAddr != "" {
		metrics = pmet.New(nil, "cachex", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	c := buildCache(*policy, *capacity, *shards, metrics)

	// ---- Preload to a realistic fill level ----
	n := *preload
	if n <= 0 {
		n = *capacity / 2
	}
	for i := 0; i < n; i++ {
		c.Put(key(i), "v")
	}

	// ---- Run workers ----
	var (
		gets int64
		hits int64
		puts int64
		wg   sync.WaitGroup
	)
	deadline := time.Now().Add(*duration)
	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(*seed + int64(id)*7919))
			zipf := rand.NewZipf(r, *zipfS, *zipfV, uint64(*keys-1))
			for time.Now().Before(deadline) {
				k := key(int(zipf.Uint64()))
				if r.Intn(100) < *readPct {
					atomic.AddInt64(&gets, 1)
					if _, ok := c.Get(k); ok {
						atomic.AddInt64(&hits, 1)
					}
				} else {
					atomic.AddInt64(&puts, 1)
					c.Put(k, "v")
				}
			}
		}(w)
	}
	wg.Wait()

	total := atomic.LoadInt64(&gets) + atomic.LoadInt64(&puts)
	rate := 0.0
	if g := atomic.LoadInt64(&gets); g > 0 {
		rate = 100 * float64(atomic.LoadInt64(&hits)) / float64(g)
	}
	fmt.Printf("policy=%s cap=%d workers=%d duration=%s\n", *policy, *capacity, *workers, *duration)
	fmt.Printf("ops=%d (%.0f ops/sec) gets=%d puts=%d hit-rate=%.2f%% len=%d\n",
		total, float64(total) / (*duration).Seconds(), gets, puts, rate, c.Len())
}

// buildCache constructs the cache under test for the chosen policy.
func buildCache(policy string, capacity, shards int, m cachex.Metrics) cachex.Cache[string, string] {
	switch policy {
	case "lru":
		return lru.New[string, string](capacity, lru.WithMetrics[string, string](m))
	case "lfu":
		return lfu.New[string, string](capacity, lfu.WithMetrics[string, string](m))
	case "arc":
		return arc.New[string, string](capacity, arc.WithMetrics[string, string](m))
	case "lruk":
		return lru.NewK[string, string](capacity, capacity, 2, lru.WithMetrics[string, string](m))
	case "sharded-lru":
		return sharded.New(capacity, shards, func(perShard int) cachex.Cache[string, string] {
			return lru.New[string, string](perShard, lru.WithMetrics[string, string](m))
		})
	case "sharded-lfu":
		return sharded.New(capacity, shards, func(perShard int) cachex.Cache[string, string] {
			return lfu.New[string, string](perShard, lfu.WithMetrics[string, string](m))
		})
	default:
		log.Fatalf("unknown policy %q", policy)
		return nil
	}
}

func key(i int) string { return "k:" + strconv.Itoa(i) }
