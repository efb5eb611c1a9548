package domain

// Physical and model constants. The values are calibrated against each other
// and should not be changed independently.
const (
	// Gravity is the surface gravitational acceleration, m/s².
	Gravity = 9.81

	// ScalingFactor is the leading coefficient of the crater scaling law.
	ScalingFactor = 1.3

	// DefaultTargetDensity is the density of the target surface, kg/m³.
	DefaultTargetDensity = 2500.0

	// EjectaFactor is the fraction of impact energy thrown out at normal incidence.
	EjectaFactor = 0.2

	// CoolingFactor converts the ejecta quantity into a temperature drop, °C per unit.
	CoolingFactor = 1e-14

	// RecoveryRate is the per-year exponential decay constant of the cooling anomaly.
	RecoveryRate = 0.1

	// DefaultHorizonYears is the length of the recovery series.
	DefaultHorizonYears = 50
)

// Exponents of the crater scaling law.
const (
	diameterExponent = 0.78
	velocityExponent = 0.44
	gravityExponent  = 0.22
	densityExponent  = 0.3
	angleExponent    = 0.3
)
