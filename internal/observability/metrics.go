package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the simulator.
type Metrics struct {
	SimulationsTotal    prometheus.Counter
	ValidationErrors    *prometheus.CounterVec // labels: field={diameter,velocity,density,angle}
	SimulationDuration  prometheus.Histogram
	LastTemperatureDrop prometheus.Gauge

	// Report cache metrics.
	ReportCache *prometheus.CounterVec // labels: result={hit,miss}

	// Publishing metrics.
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublishEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all simulator metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SimulationsTotal,
		m.ValidationErrors,
		m.SimulationDuration,
		m.LastTemperatureDrop,
		m.ReportCache,
		m.ReportsPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SimulationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "simulations_total",
			Help:      "Total impact simulations computed.",
		}),
		ValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "validation_errors_total",
			Help:      "Rejected impactor parameter sets by offending field.",
		}, []string{"field"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of a complete estimator pipeline run.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		LastTemperatureDrop: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_sim",
			Name:      "last_temperature_drop_celsius",
			Help:      "Initial global temperature drop of the most recent simulation.",
		}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "report_cache_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "reports_published_total",
			Help:      "Total reports written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "publish_errors_total",
			Help:      "Total report publishing failures.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_sim",
			Name:      "publish_enabled",
			Help:      "1 when Kafka publishing is enabled, 0 otherwise.",
		}),
	}
}
