package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	cache "github.com/krisalay/league-cache"
	"github.com/krisalay/league-cache/engine"
	"github.com/krisalay/league-cache/internal/config"
	"github.com/krisalay/league-cache/internal/errs"
	"github.com/krisalay/league-cache/internal/logging"
	"github.com/krisalay/league-cache/metrics"
)

// App is the wired object graph shared by every command.
type App struct {
	Config   config.Config
	Cache    *cache.Manager
	Registry *prometheus.Registry
	Metrics  *metrics.Prometheus
	Logger   *slog.Logger
}

// Option adjusts how New wires the application.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logOut io.Writer
}

// WithClock replaces the wall clock, e.g. with a clock.Mock for demos and tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogOutput sends cache logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOut = w }
}

func New(ctx context.Context, configFile string, opts ...Option) (*App, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	o := options{logOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "loading application config", slog.String("config_file", configFile))

	cfg, err := config.Load(logCtx, configFile)
	if err != nil {
		return nil, errs.Wrap(err, "load config")
	}
	settings, err := cfg.Cache.Parse()
	if err != nil {
		return nil, errs.Wrap(err, "parse cache config")
	}

	logger, err := logging.New(o.logOut, cfg.Log.Level)
	if err != nil {
		return nil, errs.Wrap(err, "create logger")
	}
	logger = logger.With(slog.String("app", cfg.App.Name))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewPrometheus(reg, cfg.App.Name)

	eng := engine.NewCacheEngine(settings.Expiration, settings.Codec, o.clock, m, logger)
	eng.CurrentTTL = settings.CurrentTTL
	eng.HistoricalTTL = settings.HistoricalTTL

	c, err := cache.NewManager(settings.SizeLimit, settings.EvictionPolicy, eng)
	if err != nil {
		return nil, errs.Wrap(err, "create cache")
	}

	logging.Info(logCtx, "application bootstrap completed",
		slog.Int64("size_limit", settings.SizeLimit),
		slog.String("eviction_policy", string(settings.EvictionPolicy)),
		slog.String("codec", settings.Codec.Name()),
	)

	return &App{
		Config:   cfg,
		Cache:    c,
		Registry: reg,
		Metrics:  m,
		Logger:   logger,
	}, nil
}
