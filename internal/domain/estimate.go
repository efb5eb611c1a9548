package domain

import "math"

// CraterDiameter estimates the final crater diameter in metres using a
// simplified Holsapple-style scaling law with an angle correction:
//
//	D = 1.3 · d^0.78 · (v^0.44 / g^0.22) · (ρ/ρt)^0.3 · cos(θ)^0.3
func CraterDiameter(p ImpactParameters, targetDensity float64) float64 {
	angleFactor := math.Pow(math.Cos(radians(p.Angle)), angleExponent)
	return ScalingFactor *
		math.Pow(p.Diameter, diameterExponent) *
		(math.Pow(p.Velocity, velocityExponent) / math.Pow(Gravity, gravityExponent)) *
		math.Pow(p.Density/targetDensity, densityExponent) *
		angleFactor
}

// ImpactEnergy returns the kinetic energy of a spherical impactor, J.
func ImpactEnergy(p ImpactParameters) float64 {
	radius := p.Diameter / 2
	volume := 4.0 / 3.0 * math.Pi * radius * radius * radius
	return 0.5 * p.Density * volume * p.Velocity * p.Velocity
}

// EjectaMass estimates the ejected material as a fraction of impact energy.
// The fraction falls off with cos(θ). The result keeps the energy scale; see
// the package documentation.
func EjectaMass(p ImpactParameters) float64 {
	ejectaFraction := EjectaFactor * math.Cos(radians(p.Angle))
	return ejectaFraction * ImpactEnergy(p)
}

// TemperatureDrop converts an ejecta quantity into an initial global
// temperature drop, °C. No bounds are applied.
func TemperatureDrop(ejecta float64) float64 {
	return CoolingFactor * ejecta
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
