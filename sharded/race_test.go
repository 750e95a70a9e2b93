package sharded

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dterekhov/cachex"
	"github.com/dterekhov/cachex/arc"
	"github.com/dterekhov/cachex/lfu"
	"github.com/dterekhov/cachex/lru"
)

// A mixed workload of concurrent Put/Get/Remove on random keys across
// every policy. Should pass under `-race` without detector reports.
func TestRace_MixedWorkload(t *testing.T) {
	caches := map[string]cachex.Cache[string, []byte]{
		"sharded-lru": NewLRU[string, []byte](8_192, 32),
		"sharded-lfu": NewLFU[string, []byte](8_192, 32),
		"sharded-arc": New(8_192, 32, func(perShard int) cachex.Cache[string, []byte] {
			return arc.New[string, []byte](perShard)
		}),
		"lru":  lru.New[string, []byte](8_192),
		"lfu":  lfu.New[string, []byte](8_192),
		"arc":  arc.New[string, []byte](8_192),
		"lruk": lru.NewK[string, []byte](8_192, 8_192, 2),
	}

	for name, c := range caches {
		c := c
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			workers := 4 * runtime.GOMAXPROCS(0)
			keyspace := 50_000
			deadline := time.Now().Add(500 * time.Millisecond)

			var wg sync.WaitGroup
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func(id int) {
					defer wg.Done()
					r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
					for time.Now().Before(deadline) {
						k := "k:" + strconv.Itoa(r.Intn(keyspace))
						switch r.Intn(100) {
						case 0, 1, 2, 3, 4: // ~5% — Remove
							c.Remove(k)
						case 5, 6, 7, 8, 9, 10, 11, 12, 13, 14: // ~10% — Put
							c.Put(k, []byte("x"))
						default: // ~85% — Get
							c.Get(k)
						}
					}
				}(w)
			}
			wg.Wait()
		})
	}
}
