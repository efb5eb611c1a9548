package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/impact-sim/internal/adapter/kafka"
	"github.com/couchcryptid/impact-sim/internal/config"
	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/input"
	"github.com/couchcryptid/impact-sim/internal/observability"
	"github.com/couchcryptid/impact-sim/internal/pipeline"
	"github.com/couchcryptid/impact-sim/internal/presenter"
)

var parameterFlags = []string{"diameter", "velocity", "density", "angle"}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := observability.NewCLILogger(cfg)
	metrics := newMetrics()

	params, err := acquireParameters(cmd)
	if err != nil {
		pipeline.RecordValidationError(metrics, err)
		return err
	}
	logger.Debug("parameters acquired",
		"diameter_m", params.Diameter,
		"velocity_m_s", params.Velocity,
		"density_kg_m3", params.Density,
		"angle_deg", params.Angle,
	)

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	sim := pipeline.New(cfg.Settings(), publisher, logger, metrics)
	report, err := sim.Simulate(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if err := presenter.WriteSummary(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if err := presenter.SaveChart(cfg.PlotPath, report.Recovery); err != nil {
		return err
	}
	logger.Info("recovery chart saved", "path", cfg.PlotPath)

	if cfg.SeriesCSVPath != "" {
		if err := presenter.SaveSeriesCSV(cfg.SeriesCSVPath, report.Recovery); err != nil {
			return err
		}
		logger.Info("recovery series saved", "path", cfg.SeriesCSVPath)
	}

	if !view {
		return nil
	}
	runner := pipeline.NewCachedSimulator(sim, cfg.Settings(), cfg.ReportCacheSize, metrics)
	runner.Add(report)
	return serveUntilSignal(cfg, runner, sim, metrics, logger, &params)
}

// acquireParameters uses the parameter flags when all four are given and
// prompts interactively when none are.
func acquireParameters(cmd *cobra.Command) (domain.ImpactParameters, error) {
	set := 0
	for _, name := range parameterFlags {
		if cmd.Flags().Changed(name) {
			set++
		}
	}

	switch set {
	case 0:
		return input.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Acquire()
	case len(parameterFlags):
		return input.FromFlags(diameter, velocity, density, angle)
	default:
		return domain.ImpactParameters{}, errors.New("--diameter, --velocity, --density, and --angle must be given together")
	}
}

// newPublisher returns a Kafka publisher when brokers are configured, and a
// close function that is always safe to call.
func newPublisher(cfg *config.Config, logger *slog.Logger) (pipeline.Publisher, func()) {
	if !cfg.KafkaEnabled() {
		logger.Debug("kafka publishing disabled")
		return nil, func() {}
	}
	w := kafka.NewWriter(cfg, logger)
	logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return w, func() {
		if err := w.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
}
