// Package domain models the physical effects of an asteroid impact.
//
// # Pipeline
//
// A simulation is a fixed sequence of closed-form estimators:
//
//	ImpactParameters ─┬─> CraterDiameter
//	                  └─> ImpactEnergy ─> EjectaMass ─> TemperatureDrop ─> SimulateCooling
//
// Every estimator is a pure function of its inputs. None of them validate
// their arguments; callers must obtain parameters through NewImpactParameters
// (or ImpactParameters.Validate), which rejects non-positive diameter,
// velocity, and density with a *ValidationError.
//
// # Conventions
//
// All quantities are SI. The impact angle is measured in degrees from the
// horizontal, so 90 is a vertical strike. Note that both angle terms use
// cos(θ) directly:
//
//	Crater:  cos(θ)^0.3   → maximal at θ=0, zero at θ=90
//	Ejecta:  0.2·cos(θ)   → maximal at θ=0, zero at θ=90
//
// Angles outside [0, 90] are not rejected. A negative cosine raised to 0.3
// yields NaN, which is passed through unchanged.
//
// # Ejecta units
//
// EjectaMass returns 0.2·cos(θ)·E where E is the kinetic energy in joules.
// The result is labelled "kg" for presentation but is dimensionally an
// energy. CoolingFactor (1e-14 °C per unit) is calibrated against this exact
// quantity, so the two must change together.
//
// # Recovery
//
// The temperature anomaly decays exponentially toward zero at RecoveryRate
// per year. SimulateCooling samples it at integer years 0..n-1.
//
// # Report IDs
//
// Report IDs are deterministic SHA-256 hashes of the parameters, horizon,
// and target density. Identical inputs always produce the same ID, which
// makes them usable as cache keys and as Kafka message keys. See [ReportID].
package domain
