package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/observability"
	"github.com/couchcryptid/impact-sim/internal/pipeline"
)

// --- mocks ---

type mockPublisher struct {
	mu        sync.Mutex
	published []domain.ImpactReport
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, report domain.ImpactReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, report)
	return nil
}

var testParams = domain.ImpactParameters{Diameter: 100, Velocity: 20000, Density: 3000, Angle: 45}

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })
}

// --- tests ---

func TestSimulator_Simulate_HappyPath(t *testing.T) {
	freezeClock(t)
	pub := &mockPublisher{}
	metrics := observability.NewMetricsForTesting()

	sim := pipeline.New(domain.DefaultSettings(), pub, slog.Default(), metrics)
	require.Error(t, sim.CheckReadiness(context.Background()))

	report, err := sim.Simulate(context.Background(), testParams)
	require.NoError(t, err)

	if diff := cmp.Diff(domain.Simulate(testParams, domain.DefaultSettings()), report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, pub.published, 1)
	assert.Equal(t, report.ID, pub.published[0].ID)
	assert.NoError(t, sim.CheckReadiness(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SimulationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReportsPublished))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PublishEnabled))
	assert.InDelta(t, report.TemperatureDrop, testutil.ToFloat64(metrics.LastTemperatureDrop), 1e-9)
}

func TestSimulator_Simulate_NoPublisher(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	sim := pipeline.New(domain.DefaultSettings(), nil, slog.Default(), metrics)

	_, err := sim.Simulate(context.Background(), testParams)
	require.NoError(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.PublishEnabled))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ReportsPublished))
}

func TestSimulator_Simulate_PublishErrorIsNotFatal(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	metrics := observability.NewMetricsForTesting()
	sim := pipeline.New(domain.DefaultSettings(), pub, slog.Default(), metrics)

	report, err := sim.Simulate(context.Background(), testParams)
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PublishErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ReportsPublished))
}

func TestSimulator_Simulate_CancelledContext(t *testing.T) {
	pub := &mockPublisher{}
	metrics := observability.NewMetricsForTesting()
	sim := pipeline.New(domain.DefaultSettings(), pub, slog.Default(), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Simulate(ctx, testParams)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.published)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SimulationsTotal))
}

func TestSimulator_Simulate_UsesSettings(t *testing.T) {
	settings := domain.SimulationSettings{TargetDensity: 2000, HorizonYears: 12}
	sim := pipeline.New(settings, nil, slog.Default(), observability.NewMetricsForTesting())

	report, err := sim.Simulate(context.Background(), testParams)
	require.NoError(t, err)
	assert.Len(t, report.Recovery, 12)
	assert.Equal(t, 2000.0, report.TargetDensity)
	assert.Equal(t, settings, sim.Settings())
}

func TestSimulator_Warmup(t *testing.T) {
	pub := &mockPublisher{}
	metrics := observability.NewMetricsForTesting()
	sim := pipeline.New(domain.DefaultSettings(), pub, slog.Default(), metrics)

	require.NoError(t, sim.Warmup(context.Background()))
	assert.NoError(t, sim.CheckReadiness(context.Background()))
	assert.Empty(t, pub.published, "warmup must not publish")
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SimulationsTotal))
}

func TestRecordValidationError(t *testing.T) {
	metrics := observability.NewMetricsForTesting()

	_, err := domain.NewImpactParameters(0, 20000, 3000, 45)
	pipeline.RecordValidationError(metrics, err)
	pipeline.RecordValidationError(metrics, errors.New("unrelated"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ValidationErrors.WithLabelValues(domain.FieldDiameter)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ValidationErrors.WithLabelValues(domain.FieldVelocity)))
}
