package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	cache "github.com/krisalay/league-cache"
	"github.com/krisalay/league-cache/engine"
	"github.com/krisalay/league-cache/eviction"
	"github.com/krisalay/league-cache/internal/logging"
)

func newBenchmarkCache(b *testing.B, policy eviction.PolicyType) *cache.Manager {
	b.Helper()

	eng := engine.NewCacheEngine(nil, nil, nil, nil, logging.Discard())
	c, err := cache.NewManager(64<<20, policy, eng)
	if err != nil {
		b.Fatalf("NewManager() error = %v", err)
	}
	return c
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkCacheGetHit(b *testing.B) {
	c := newBenchmarkCache(b, eviction.LRU)
	c.SetCurrentData("nfl", "123456", "standings", []Standing{{Team: "Bears", Wins: 10}})

	var dst []Standing
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetCurrentData("nfl", "123456", "standings", &dst)
	}
}

func BenchmarkCacheGetMiss(b *testing.B) {
	c := newBenchmarkCache(b, eviction.LRU)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetCurrentData("nfl", fmt.Sprintf("miss-%d", i), "standings", nil)
	}
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkCacheParallelGet(b *testing.B) {
	c := newBenchmarkCache(b, eviction.LRU)

	for i := 0; i < 1000; i++ {
		c.SetCurrentData("nfl", fmt.Sprint(i), "standings", i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		var n int
		for pb.Next() {
			c.GetCurrentData("nfl", "42", "standings", &n)
		}
	})
}

//
// ================= WRITE BENCH =================
//

func BenchmarkCacheSet(b *testing.B) {
	for _, policy := range []eviction.PolicyType{eviction.LRU, eviction.FIFO, eviction.LFU} {
		b.Run(string(policy), func(b *testing.B) {
			// A small budget keeps the eviction path hot.
			eng := engine.NewCacheEngine(nil, nil, nil, nil, logging.Discard())
			c, err := cache.NewManager(64<<10, policy, eng)
			if err != nil {
				b.Fatalf("NewManager() error = %v", err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.SetCurrentData("nfl", fmt.Sprint(i), "standings", i)
			}
		})
	}
}

//
// ================= READ-THROUGH BENCH =================
//

func BenchmarkCacheFetch(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b, eviction.LRU)
	loader := cache.LoaderFunc(func(ctx context.Context, key string) (any, error) {
		return key, nil
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var s string
		c.FetchCurrentData(ctx, "nfl", fmt.Sprint(i%1000), "scoreboard", &s, loader)
	}
}

//
// ================= HIGH CONCURRENCY TEST =================
//

func BenchmarkCacheHighConcurrency(b *testing.B) {
	c := newBenchmarkCache(b, eviction.LRU)

	leagues := make([]string, 10000)
	for i := range leagues {
		leagues[i] = fmt.Sprint(i)
		c.SetCurrentData("nfl", leagues[i], "standings", i)
	}

	b.ResetTimer()

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var n int
			for j := 0; j < b.N/100; j++ {
				c.GetCurrentData("nfl", leagues[j%len(leagues)], "standings", &n)
			}
		}(i)
	}
	wg.Wait()
}
