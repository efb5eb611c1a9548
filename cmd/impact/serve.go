package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/impact-sim/internal/adapter/http"
	"github.com/couchcryptid/impact-sim/internal/config"
	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/observability"
	"github.com/couchcryptid/impact-sim/internal/pipeline"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg)
	metrics := newMetrics()

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	sim := pipeline.New(cfg.Settings(), publisher, logger, metrics)
	if err := sim.Warmup(cmd.Context()); err != nil {
		return err
	}
	runner := pipeline.NewCachedSimulator(sim, cfg.Settings(), cfg.ReportCacheSize, metrics)

	return serveUntilSignal(cfg, runner, sim, metrics, logger, nil)
}

// serveUntilSignal runs the HTTP server until SIGINT or SIGTERM, then shuts it
// down within the configured timeout. When params is set, the viewer URL for
// that parameter set is logged.
func serveUntilSignal(
	cfg *config.Config,
	runner pipeline.Runner,
	ready httpadapter.ReadinessChecker,
	metrics *observability.Metrics,
	logger *slog.Logger,
	params *domain.ImpactParameters,
) error {
	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, ready, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if params != nil {
		logger.Info("viewing results, press Ctrl-C to exit", "url", baseURL(cfg.HTTPAddr)+httpadapter.ViewPath(*params))
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
