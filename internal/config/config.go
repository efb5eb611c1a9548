package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/impact-sim/internal/domain"
)

// Config holds all simulator settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Model settings.
	HorizonYears  int
	TargetDensity float64

	// Output locations. An empty SeriesCSVPath disables CSV export.
	PlotPath      string
	SeriesCSVPath string

	ReportCacheSize int

	// Kafka publishing is disabled when no brokers are configured.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	horizon, err := parsePositiveInt("IMPACT_HORIZON_YEARS", domain.DefaultHorizonYears)
	if err != nil {
		return nil, err
	}

	targetDensity, err := parsePositiveFloat("IMPACT_TARGET_DENSITY", domain.DefaultTargetDensity)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("REPORT_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
		HorizonYears:    horizon,
		TargetDensity:   targetDensity,
		PlotPath:        sharedcfg.EnvOrDefault("PLOT_PATH", "impact_recovery.png"),
		SeriesCSVPath:   os.Getenv("SERIES_CSV_PATH"),
		ReportCacheSize: cacheSize,
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "impact-reports"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that may also be overridden after Load, e.g. by CLI flags.
func (c *Config) Validate() error {
	if c.HorizonYears <= 0 {
		return errors.New("IMPACT_HORIZON_YEARS must be a positive integer")
	}
	if !(c.TargetDensity > 0) || math.IsInf(c.TargetDensity, 1) {
		return errors.New("IMPACT_TARGET_DENSITY must be a positive number")
	}
	if c.PlotPath == "" {
		return errors.New("PLOT_PATH is required")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// KafkaEnabled reports whether reports should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Settings returns the model settings for the simulator.
func (c *Config) Settings() domain.SimulationSettings {
	return domain.SimulationSettings{
		TargetDensity: c.TargetDensity,
		HorizonYears:  c.HorizonYears,
	}
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parsePositiveFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0) {
		return 0, fmt.Errorf("invalid %s: must be a positive number", key)
	}
	return v, nil
}
