package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/krisalay/league-cache/internal/bootstrap"
	"github.com/krisalay/league-cache/internal/errs"
	"github.com/krisalay/league-cache/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "leaguecache",
	Short:        "In-memory cache for rate-limited sports league data",
	Long:         "leaguecache runs the league data cache: a narrated demo, a metrics server, and a load benchmark.",
	SilenceUsage: true,
}

// Execute runs the root command with a context-carried logger.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	logger := slog.New(slog.NewTextHandler(rootCmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	ctx = logging.WithLogger(ctx, logger)
	ctx = logging.WithAttrs(ctx, slog.String("app", "leaguecache"))

	rootCmd.SetContext(ctx)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error(ctx, "command execution failed", slog.Any("err", errs.Loggable(err)))
		return errs.Wrap(err, "execute root command")
	}
	return nil
}

// withApp bootstraps the application before running a command.
func withApp(run func(cmd *cobra.Command, app *bootstrap.App) error, opts ...bootstrap.Option) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		app, err := bootstrap.New(ctx, cfgFile, opts...)
		if err != nil {
			return errs.Wrap(err, "bootstrap application")
		}

		cmd.SetContext(ctx)
		if err := run(cmd, app); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default: ./configs/config.yaml when present)")
}
