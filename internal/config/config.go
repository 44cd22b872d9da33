package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/krisalay/league-cache/codec"
	"github.com/krisalay/league-cache/eviction"
	"github.com/krisalay/league-cache/expiration"
	"github.com/krisalay/league-cache/internal/errs"
	"github.com/krisalay/league-cache/internal/logging"
	"github.com/krisalay/league-cache/types"
)

// EnvPrefix is prepended to every environment override, e.g. LEAGUECACHE_CACHE_SIZE_LIMIT.
const EnvPrefix = "LEAGUECACHE"

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

// CacheConfig holds the cache settings as written in the file or environment.
// Sizes and TTLs stay strings here; Parse turns them into typed values.
type CacheConfig struct {
	SizeLimit      string `mapstructure:"size_limit"`
	CurrentTTL     string `mapstructure:"current_ttl"`
	HistoricalTTL  string `mapstructure:"historical_ttl"`
	EvictionPolicy string `mapstructure:"eviction_policy"`
	Expiration     string `mapstructure:"expiration"`
	Codec          string `mapstructure:"codec"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CacheSettings is CacheConfig after parsing and validation.
type CacheSettings struct {
	SizeLimit      int64
	CurrentTTL     time.Duration
	HistoricalTTL  time.Duration
	EvictionPolicy eviction.PolicyType
	Expiration     expiration.Strategy
	Codec          codec.Codec
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if _, err := cfg.Cache.Parse(); err != nil {
		return Config{}, errs.Wrap(err, "validate cache config")
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return Config{}, errs.Wrap(err, "validate log config")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("size_limit", cfg.Cache.SizeLimit),
		slog.String("eviction_policy", cfg.Cache.EvictionPolicy),
		slog.String("codec", cfg.Cache.Codec),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "leaguecache")
	v.SetDefault("cache.size_limit", "100MiB")
	v.SetDefault("cache.current_ttl", "300s")
	v.SetDefault("cache.historical_ttl", "-1")
	v.SetDefault("cache.eviction_policy", string(eviction.LRU))
	v.SetDefault("cache.expiration", string(expiration.Fixed))
	v.SetDefault("cache.codec", "json")
	v.SetDefault("server.addr", ":9090")
	v.SetDefault("log.level", "info")
}

// Parse validates the cache section and converts it into typed settings.
func (c CacheConfig) Parse() (CacheSettings, error) {
	var s CacheSettings
	var err error

	if s.SizeLimit, err = ParseSize(c.SizeLimit); err != nil {
		return CacheSettings{}, errs.Wrap(err, "cache.size_limit")
	}
	if s.CurrentTTL, err = ParseTTL(c.CurrentTTL); err != nil {
		return CacheSettings{}, errs.Wrap(err, "cache.current_ttl")
	}
	if s.HistoricalTTL, err = ParseTTL(c.HistoricalTTL); err != nil {
		return CacheSettings{}, errs.Wrap(err, "cache.historical_ttl")
	}
	if s.EvictionPolicy, err = eviction.ParsePolicyType(c.EvictionPolicy); err != nil {
		return CacheSettings{}, errs.Wrap(err, "cache.eviction_policy")
	}
	if s.Expiration, err = expiration.New(expiration.Kind(c.Expiration)); err != nil {
		return CacheSettings{}, errs.Wrap(err, "cache.expiration")
	}
	if s.Codec, err = codec.New(c.Codec); err != nil {
		return CacheSettings{}, errs.Wrap(err, "cache.codec")
	}
	return s, nil
}

// ParseSize reads a human byte size ("100MiB", "64 kB", "2048"). Zero means unbounded.
func ParseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("size %q is too large", s)
	}
	return int64(n), nil
}

// ParseTTL reads a Go duration. "-1", "never" and "permanent" mean types.NoExpiration.
func ParseTTL(s string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "-1", "never", "permanent":
		return types.NoExpiration, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s", types.ErrInvalidTTL, s)
	}
	return d, nil
}
