package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ImpactReport is the full result of one simulation run.
type ImpactReport struct {
	ID              string           `json:"id"`
	Parameters      ImpactParameters `json:"parameters"`
	TargetDensity   float64          `json:"target_density_kg_m3"`
	HorizonYears    int              `json:"horizon_years"`
	CraterDiameter  float64          `json:"crater_diameter_m"`
	ImpactEnergy    float64          `json:"impact_energy_j"`
	EjectaMass      float64          `json:"ejecta_mass_kg"`
	TemperatureDrop float64          `json:"temperature_drop_c"`
	Recovery        RecoverySeries   `json:"recovery"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// SimulationSettings holds the tunable, non-impactor inputs of a simulation.
type SimulationSettings struct {
	TargetDensity float64
	HorizonYears  int
}

// DefaultSettings returns the settings of the reference model.
func DefaultSettings() SimulationSettings {
	return SimulationSettings{
		TargetDensity: DefaultTargetDensity,
		HorizonYears:  DefaultHorizonYears,
	}
}

// Simulate runs every estimator in order and assembles a report.
// The parameters must already be validated.
func Simulate(p ImpactParameters, s SimulationSettings) ImpactReport {
	crater := CraterDiameter(p, s.TargetDensity)
	energy := ImpactEnergy(p)
	ejecta := EjectaMass(p)
	drop := TemperatureDrop(ejecta)

	return ImpactReport{
		ID:              ReportID(p, s),
		Parameters:      p,
		TargetDensity:   s.TargetDensity,
		HorizonYears:    s.HorizonYears,
		CraterDiameter:  crater,
		ImpactEnergy:    energy,
		EjectaMass:      ejecta,
		TemperatureDrop: drop,
		Recovery:        SimulateCooling(drop, s.HorizonYears),
		GeneratedAt:     clock.Now().UTC(),
	}
}

// ReportID produces a deterministic ID from every input that affects a report.
func ReportID(p ImpactParameters, s SimulationSettings) string {
	input := fmt.Sprintf("%g|%g|%g|%g|%g|%d",
		p.Diameter, p.Velocity, p.Density, p.Angle, s.TargetDensity, s.HorizonYears)
	hash := sha256.Sum256([]byte(input))
	return "impact-" + hex.EncodeToString(hash[:8])
}
