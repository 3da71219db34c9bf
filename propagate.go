package orrery

import "math"

const (
	// keplerε is the convergence tolerance of the Kepler solver in radians.
	keplerε = 1e-6
	// keplerMaxIter caps the Newton-Raphson iterations; past it, the latest
	// estimate is used as-is.
	keplerMaxIter = 30
)

// solveKepler solves Kepler's equation E - e·sin(E) = M for the eccentric
// anomaly by Newton-Raphson, starting from E0 = M + e·sin(M). M must be in
// radians. If the iteration cap is reached before convergence, the last
// estimate is returned: an approximation, not a failure.
func solveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)
	for iter := 0; iter < keplerMaxIter; iter++ {
		ΔE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= ΔE
		if math.Abs(ΔE) < keplerε {
			break
		}
	}
	return E
}

// Propagate evolves the element set to the given Julian Date and returns the
// heliocentric ecliptic position (km) and velocity (km/s) of the body.
// It is a pure function of (elements, jd): no hidden state, safe to call
// concurrently for different bodies. Eccentricities are expected in [0, 1);
// hyperbolic catalog entries are undefined behavior.
func (m MeanElements) Propagate(jd float64) (R, V []float64) {
	a, e, i, Ω, ϖ, L := m.AtEpoch(jd)
	aKm := a * AU

	// Mean anomaly, normalized into (-180°, 180°] then converted to radians.
	M := wrapAnomaly(L-ϖ) * deg2rad
	E := solveKepler(M, e)
	sinE, cosE := math.Sincos(E)

	// Orbital-plane coordinates.
	bOverA := math.Sqrt(1 - e*e)
	xOrb := aKm * (cosE - e)
	yOrb := aKm * bOverA * sinE

	// Velocity in the orbital plane, from the mean motion.
	n := math.Sqrt(SunGM / (aKm * aKm * aKm))
	denom := 1 - e*cosE
	vxOrb := -aKm * n * sinE / denom
	vyOrb := aKm * n * bOverA * cosE / denom

	ω := ϖ - Ω
	iRad, ωRad, ΩRad := Deg2rad(i), Deg2rad(ω), Deg2rad(Ω)
	R = Perifocal2Ecliptic(iRad, ωRad, ΩRad, []float64{xOrb, yOrb, 0})
	V = Perifocal2Ecliptic(iRad, ωRad, ΩRad, []float64{vxOrb, vyOrb, 0})
	return
}
