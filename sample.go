package orrery

import (
	"math"
	"time"
)

// DefaultSamples is the number of segments of a sampled orbit trace.
const DefaultSamples = 100

// SampleOrbit returns a closed polyline of n+1 points approximating one full
// orbital revolution of the body, starting at the given instant. For a body
// with catalogued elements the orbital period is derived from the semi-major
// axis at that epoch and the trace is propagated at n equally spaced sample
// instants; the first point is appended again to close the loop. Bodies
// without elements get a time-independent circle at their reference distance
// in the z=0 plane.
//
// The trace is a snapshot: it is not kept in sync with the clock and must be
// re-sampled explicitly if the epoch assumptions change.
func SampleOrbit(b Body, start time.Time, n int) [][]float64 {
	if n <= 0 {
		n = DefaultSamples
	}
	pts := make([][]float64, 0, n+1)
	if !b.HasElements() {
		for k := 0; k <= n; k++ {
			θ := 2 * math.Pi * float64(k) / float64(n)
			sθ, cθ := math.Sincos(θ)
			pts = append(pts, []float64{b.RefDistance * cθ, b.RefDistance * sθ, 0})
		}
		return pts
	}
	start = start.UTC()
	period := b.Elements.Period(TimeToJD(start))
	step := period / time.Duration(n)
	for k := 0; k < n; k++ {
		R, _ := b.Elements.Propagate(TimeToJD(start.Add(time.Duration(k) * step)))
		pts = append(pts, R)
	}
	// Close the loop on the first sample exactly.
	pts = append(pts, []float64{pts[0][0], pts[0][1], pts[0][2]})
	return pts
}
