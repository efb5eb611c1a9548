package domain

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RecoveryPoint is the temperature anomaly at a whole year after impact.
type RecoveryPoint struct {
	Year            int     `json:"year"`
	TemperatureDrop float64 `json:"temperature_drop_c"`
}

// RecoverySeries is a year-ascending sequence of recovery points starting at year 0.
type RecoverySeries []RecoveryPoint

// SimulateCooling samples T0·exp(-RecoveryRate·t) for t = 0..years-1.
// A non-positive horizon yields an empty series.
func SimulateCooling(t0 float64, years int) RecoverySeries {
	if years <= 0 {
		return RecoverySeries{}
	}

	temps := make([]float64, years)
	for t := range temps {
		temps[t] = math.Exp(-RecoveryRate * float64(t))
	}
	floats.Scale(t0, temps)

	series := make(RecoverySeries, years)
	for t, temp := range temps {
		series[t] = RecoveryPoint{Year: t, TemperatureDrop: temp}
	}
	return series
}

// Years returns the sample years as floats, for plotting.
func (s RecoverySeries) Years() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = float64(pt.Year)
	}
	return out
}

// Temperatures returns the temperature drops in year order.
func (s RecoverySeries) Temperatures() []float64 {
	out := make([]float64, len(s))
	for i, pt := range s {
		out[i] = pt.TemperatureDrop
	}
	return out
}

// Mean is the average temperature drop over the horizon. Zero for an empty series.
func (s RecoverySeries) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return stat.Mean(s.Temperatures(), nil)
}
