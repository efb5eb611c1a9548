package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/observability"
)

// Publisher delivers finished reports to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, report domain.ImpactReport) error
}

// Runner produces a report for validated parameters.
type Runner interface {
	Simulate(ctx context.Context, p domain.ImpactParameters) (domain.ImpactReport, error)
}

// Simulator runs the estimator pipeline and records observability around it.
type Simulator struct {
	settings  domain.SimulationSettings
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Simulator. Pass a nil publisher to disable publishing.
func New(settings domain.SimulationSettings, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Simulator {
	if publisher != nil {
		metrics.PublishEnabled.Set(1)
	} else {
		metrics.PublishEnabled.Set(0)
	}
	return &Simulator{
		settings:  settings,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one simulation has completed.
func (s *Simulator) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("simulator has not completed any runs yet")
	}
	return nil
}

// Warmup runs a reference impactor through the estimators without publishing
// and marks the simulator ready if every result is finite.
func (s *Simulator) Warmup(_ context.Context) error {
	ref := domain.ImpactParameters{Diameter: 100, Velocity: 20000, Density: 3000, Angle: 45}
	report := domain.Simulate(ref, s.settings)
	for name, v := range map[string]float64{
		"crater_diameter":  report.CraterDiameter,
		"ejecta_mass":      report.EjectaMass,
		"temperature_drop": report.TemperatureDrop,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("warmup: %s is not finite", name)
		}
	}
	s.ready.Store(true)
	s.logger.Info("simulator warmed up", "report_id", report.ID, "horizon_years", s.settings.HorizonYears)
	return nil
}

// Settings returns the model settings applied to every run.
func (s *Simulator) Settings() domain.SimulationSettings {
	return s.settings
}

// Simulate runs every estimator for p and publishes the report when a
// publisher is configured. Publishing failures are logged, not returned.
func (s *Simulator) Simulate(ctx context.Context, p domain.ImpactParameters) (domain.ImpactReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImpactReport{}, err
	}

	start := time.Now()
	report := domain.Simulate(p, s.settings)
	s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	s.metrics.SimulationsTotal.Inc()
	s.metrics.LastTemperatureDrop.Set(report.TemperatureDrop)
	s.ready.Store(true)

	s.logger.Debug("simulation complete",
		"report_id", report.ID,
		"crater_diameter_m", report.CraterDiameter,
		"ejecta_mass_kg", report.EjectaMass,
		"temperature_drop_c", report.TemperatureDrop,
	)

	s.publish(ctx, report)
	return report, nil
}

func (s *Simulator) publish(ctx context.Context, report domain.ImpactReport) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, report); err != nil {
		s.logger.Warn("publish report failed", "report_id", report.ID, "error", err)
		s.metrics.PublishErrors.Inc()
		return
	}
	s.metrics.ReportsPublished.Inc()
}

// RecordValidationError counts a rejected parameter set against its field.
func RecordValidationError(metrics *observability.Metrics, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		metrics.ValidationErrors.WithLabelValues(verr.Field).Inc()
	}
}
