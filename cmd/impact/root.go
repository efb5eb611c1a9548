package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/impact-sim/internal/config"
	"github.com/couchcryptid/impact-sim/internal/observability"
)

var (
	diameter      float64
	velocity      float64
	density       float64
	angle         float64
	horizonYears  int
	targetDensity float64
	plotPath      string
	csvPath       string
	view          bool
)

// newMetrics is swapped for an unregistered set in tests, since the default
// registry accepts each collector once per process.
var newMetrics = observability.NewMetrics

// newRootCmd builds the command tree. Flag values are reset to their defaults
// on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "impact",
		Short:         "Estimate the physical effects of an asteroid impact",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runSimulate,
	}
	rootCmd.AddCommand(newServeCmd())

	rootCmd.Flags().Float64Var(&diameter, "diameter", 0, "Asteroid diameter (m)")
	rootCmd.Flags().Float64Var(&velocity, "velocity", 0, "Impact velocity (m/s)")
	rootCmd.Flags().Float64Var(&density, "density", 0, "Asteroid density (kg/m^3)")
	rootCmd.Flags().Float64Var(&angle, "angle", 0, "Impact angle (degrees from horizontal, 90 = vertical)")
	rootCmd.Flags().StringVar(&plotPath, "plot", "", "Write the recovery chart to this PNG file (overrides PLOT_PATH)")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "Write the recovery series to this CSV file (overrides SERIES_CSV_PATH)")
	rootCmd.Flags().BoolVar(&view, "view", false, "Serve the results over HTTP and block until interrupted")

	rootCmd.PersistentFlags().IntVar(&horizonYears, "horizon", 0, "Recovery horizon in years (overrides IMPACT_HORIZON_YEARS)")
	rootCmd.PersistentFlags().Float64Var(&targetDensity, "target-density", 0, "Target surface density in kg/m^3 (overrides IMPACT_TARGET_DENSITY)")
	return rootCmd
}

// loadConfig reads the environment and applies any flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("horizon") {
		cfg.HorizonYears = horizonYears
	}
	if flags.Changed("target-density") {
		cfg.TargetDensity = targetDensity
	}
	if flags.Changed("plot") {
		cfg.PlotPath = plotPath
	}
	if flags.Changed("csv") {
		cfg.SeriesCSVPath = csvPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
