package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/krisalay/league-cache/eviction"
	"github.com/krisalay/league-cache/expiration"
	"github.com/krisalay/league-cache/internal/config"
	"github.com/krisalay/league-cache/internal/logging"
	"github.com/krisalay/league-cache/types"
)

func quietContext() context.Context {
	return logging.WithLogger(context.Background(), logging.Discard())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load(quietContext(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := config.Config{
		App: config.AppConfig{Name: "leaguecache"},
		Cache: config.CacheConfig{
			SizeLimit:      "100MiB",
			CurrentTTL:     "300s",
			HistoricalTTL:  "-1",
			EvictionPolicy: "LRU",
			Expiration:     "fixed",
			Codec:          "json",
		},
		Server: config.ServerConfig{Addr: ":9090"},
		Log:    config.LogConfig{Level: "info"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}

	s, err := cfg.Cache.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.SizeLimit != 100<<20 || s.CurrentTTL != 300*time.Second || s.HistoricalTTL != types.NoExpiration {
		t.Fatalf("Parse() = %+v", s)
	}
	if s.EvictionPolicy != eviction.LRU || s.Codec.Name() != "json" {
		t.Fatalf("Parse() = %+v", s)
	}
	if _, ok := s.Expiration.(expiration.FixedTTL); !ok {
		t.Fatalf("expiration = %T, want FixedTTL", s.Expiration)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
cache:
  size_limit: 2KiB
  current_ttl: 90s
  historical_ttl: -1
  eviction_policy: lfu
  expiration: sliding
  codec: msgpack
server:
  addr: ":8081"
`)
	t.Setenv("LEAGUECACHE_CACHE_CURRENT_TTL", "45s")
	t.Setenv("LEAGUECACHE_LOG_LEVEL", "debug")

	cfg, err := config.Load(quietContext(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8081" || cfg.Log.Level != "debug" {
		t.Fatalf("Load() = %+v", cfg)
	}

	s, err := cfg.Cache.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.SizeLimit != 2048 {
		t.Fatalf("size limit = %d, want 2048", s.SizeLimit)
	}
	if s.CurrentTTL != 45*time.Second {
		t.Fatalf("current ttl = %v, env override ignored", s.CurrentTTL)
	}
	if s.HistoricalTTL != types.NoExpiration {
		t.Fatalf("historical ttl = %v", s.HistoricalTTL)
	}
	if s.EvictionPolicy != eviction.LFU || s.Codec.Name() != "msgpack" {
		t.Fatalf("Parse() = %+v", s)
	}
	if _, ok := s.Expiration.(expiration.SlidingTTL); !ok {
		t.Fatalf("expiration = %T, want SlidingTTL", s.Expiration)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"size":   "cache:\n  size_limit: lots\n",
		"ttl":    "cache:\n  current_ttl: 0s\n",
		"policy": "cache:\n  eviction_policy: random\n",
		"codec":  "cache:\n  codec: xml\n",
		"level":  "log:\n  level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Load(quietContext(), writeConfig(t, body)); err == nil {
				t.Fatalf("Load() accepted %q", body)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := config.Load(quietContext(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("Load() with missing explicit file should fail")
	}
}

func TestParseTTL(t *testing.T) {
	for in, want := range map[string]time.Duration{
		"-1":        types.NoExpiration,
		"never":     types.NoExpiration,
		"Permanent": types.NoExpiration,
		"5m":        5 * time.Minute,
	} {
		got, err := config.ParseTTL(in)
		if err != nil || got != want {
			t.Fatalf("ParseTTL(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := config.ParseTTL("-5s"); err == nil {
		t.Fatalf("ParseTTL(-5s) accepted a negative TTL")
	}
}
