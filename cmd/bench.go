package main

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/krisalay/league-cache/internal/bootstrap"
)

type benchOptions struct {
	leagues    int
	goroutines int
	opsPerG    int
}

var benchOpts benchOptions

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a concurrent read/write load benchmark against the configured cache",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		return runBench(cmd.OutOrStdout(), app, benchOpts)
	}),
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchOpts.leagues, "leagues", 100000, "Distinct league IDs preloaded")
	benchCmd.Flags().IntVar(&benchOpts.goroutines, "goroutines", 200, "Concurrent readers")
	benchCmd.Flags().IntVar(&benchOpts.opsPerG, "ops", 5000, "Operations per goroutine")
}

func runBench(out io.Writer, app *bootstrap.App, o benchOptions) error {
	if o.leagues <= 0 || o.goroutines <= 0 || o.opsPerG <= 0 {
		return fmt.Errorf("leagues, goroutines and ops must be positive")
	}

	c := app.Cache
	say := func(format string, args ...any) { fmt.Fprintf(out, format+"\n", args...) }

	say("\n================ CACHE LOAD BENCHMARK =================")
	say("Size limit    : %s", app.Config.Cache.SizeLimit)
	say("Eviction      : %s", app.Config.Cache.EvictionPolicy)
	say("Codec         : %s", app.Config.Cache.Codec)
	say("Leagues       : %d", o.leagues)
	say("Goroutines    : %d", o.goroutines)
	say("Ops/Goroutine : %d", o.opsPerG)

	leagues := make([]string, o.leagues)
	for i := range leagues {
		leagues[i] = strconv.Itoa(i)
	}

	say("Preloading cache...")
	for i, id := range leagues {
		if err := c.SetCurrentData("nfl", id, "standings", i); err != nil {
			return err
		}
	}

	say("Running concurrency benchmark...")
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(o.goroutines)
	for g := 0; g < o.goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			var n int
			for j := 0; j < o.opsPerG; j++ {
				league := leagues[(id*o.opsPerG+j)%len(leagues)]
				// One write in ten keeps the eviction path busy.
				if j%10 == 0 {
					_ = c.SetCurrentData("nfl", league, "standings", j)
					continue
				}
				_, _ = c.GetCurrentData("nfl", league, "standings", &n)
			}
		}(g)
	}
	wg.Wait()

	duration := time.Since(start)
	totalOps := o.goroutines * o.opsPerG
	st := c.Stats()

	say("\n================ RESULTS =================")
	say("Total Operations : %s", humanize.Comma(int64(totalOps)))
	say("Total Time       : %v", duration)
	say("Throughput       : %s ops/sec", humanize.CommafWithDigits(float64(totalOps)/duration.Seconds(), 2))
	say("Hit Rate         : %.2f%%", st.HitRate*100)
	say("Memory           : %s", humanize.IBytes(uint64(st.MemoryUsage)))
	say("Evictions        : %d", st.Evictions)
	say("=========================================")
	return nil
}
