package bootstrap_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/krisalay/league-cache/internal/bootstrap"
	"github.com/krisalay/league-cache/internal/logging"
)

func TestNewWiresConfiguredCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "app:\n  name: testcache\ncache:\n  size_limit: 4KiB\n  current_ttl: 60s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	mock := clock.NewMock()
	ctx := logging.WithLogger(context.Background(), logging.Discard())
	app, err := bootstrap.New(ctx, path, bootstrap.WithClock(mock), bootstrap.WithLogOutput(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := app.Cache.Stats().SizeLimit; got != 4096 {
		t.Fatalf("size limit = %d, want 4096", got)
	}

	if err := app.Cache.SetCurrentData("nfl", "1", "standings", "x"); err != nil {
		t.Fatalf("SetCurrentData() error = %v", err)
	}
	app.Cache.GetCurrentData("nfl", "1", "standings", nil)
	mock.Add(61 * time.Second)
	app.Cache.GetCurrentData("nfl", "1", "standings", nil)

	if got := testutil.ToFloat64(app.Metrics.Hits.WithLabelValues("current")); got != 1 {
		t.Fatalf("hits metric = %v, want 1", got)
	}
	if got := testutil.ToFloat64(app.Metrics.Misses); got != 1 {
		t.Fatalf("miss metric = %v, want 1 (configured TTL not applied?)", got)
	}

	if n, err := testutil.GatherAndCount(app.Registry, "testcache_cache_hits_total"); err != nil || n != 1 {
		t.Fatalf("registry series = %d, %v", n, err)
	}
}

func TestNewRequiresContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	if _, err := bootstrap.New(nil, ""); err == nil {
		t.Fatalf("New(nil) should fail")
	}
}
