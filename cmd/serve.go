package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krisalay/league-cache/internal/bootstrap"
	"github.com/krisalay/league-cache/internal/errs"
	"github.com/krisalay/league-cache/internal/logging"
	"github.com/krisalay/league-cache/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose cache metrics (/metrics), a stats snapshot (/stats) and /healthz over HTTP",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := app.Config.Server.Addr
		if flag, _ := cmd.Flags().GetString("addr"); flag != "" {
			addr = flag
		}

		srv := metrics.NewServer(addr, app.Registry, func() any {
			return app.Cache.Stats()
		}, app.Logger)

		if err := srv.Start(ctx); err != nil {
			return errs.Wrap(err, "serve metrics")
		}
		logging.Info(ctx, "metrics server stopped", slog.String("addr", addr))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
