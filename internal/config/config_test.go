package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/impact-sim/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.HorizonYears)
	assert.Equal(t, 2500.0, cfg.TargetDensity)
	assert.Equal(t, "impact_recovery.png", cfg.PlotPath)
	assert.Empty(t, cfg.SeriesCSVPath)
	assert.Equal(t, 256, cfg.ReportCacheSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "impact-reports", cfg.KafkaTopic)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, domain.DefaultSettings(), cfg.Settings())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("IMPACT_HORIZON_YEARS", "120")
	t.Setenv("IMPACT_TARGET_DENSITY", "1800.5")
	t.Setenv("PLOT_PATH", "/tmp/out.png")
	t.Setenv("SERIES_CSV_PATH", "/tmp/series.csv")
	t.Setenv("REPORT_CACHE_SIZE", "16")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 120, cfg.HorizonYears)
	assert.Equal(t, 1800.5, cfg.TargetDensity)
	assert.Equal(t, "/tmp/out.png", cfg.PlotPath)
	assert.Equal(t, "/tmp/series.csv", cfg.SeriesCSVPath)
	assert.Equal(t, 16, cfg.ReportCacheSize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-reports", cfg.KafkaTopic)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, domain.SimulationSettings{TargetDensity: 1800.5, HorizonYears: 120}, cfg.Settings())
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidHorizon(t *testing.T) {
	for _, v := range []string{"0", "-3", "ten"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("IMPACT_HORIZON_YEARS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "IMPACT_HORIZON_YEARS")
		})
	}
}

func TestLoad_InvalidTargetDensity(t *testing.T) {
	for _, v := range []string{"0", "-2500", "rock", "NaN"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("IMPACT_TARGET_DENSITY", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "IMPACT_TARGET_DENSITY")
		})
	}
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("REPORT_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_CACHE_SIZE")
}

func TestValidate_Overrides(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.HorizonYears = 0
	require.ErrorContains(t, cfg.Validate(), "IMPACT_HORIZON_YEARS")

	cfg.HorizonYears = 10
	cfg.PlotPath = ""
	require.ErrorContains(t, cfg.Validate(), "PLOT_PATH")

	cfg.PlotPath = "chart.png"
	cfg.KafkaBrokers = []string{"localhost:9092"}
	cfg.KafkaTopic = ""
	require.ErrorContains(t, cfg.Validate(), "KAFKA_TOPIC")
}

func TestValidate_TargetDensityOverride(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0},
		{"negative", -2500},
		{"nan", math.NaN()},
		{"infinite", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			cfg.TargetDensity = tt.value
			require.ErrorContains(t, cfg.Validate(), "IMPACT_TARGET_DENSITY")
		})
	}
}
