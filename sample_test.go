package orrery

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestSampleOrbitClosedLoop(t *testing.T) {
	start := time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC)
	for _, n := range []int{7, 100, 360} {
		pts := SampleOrbit(Earth, start, n)
		if len(pts) != n+1 {
			t.Fatalf("n=%d: expected %d points, got %d", n, n+1, len(pts))
		}
		first, last := pts[0], pts[len(pts)-1]
		for i := 0; i < 3; i++ {
			if first[i] != last[i] {
				t.Fatalf("n=%d: trace is not a closed loop", n)
			}
		}
	}
}

func TestSampleOrbitDefaultCount(t *testing.T) {
	pts := SampleOrbit(Mars, time.Now(), 0)
	if len(pts) != DefaultSamples+1 {
		t.Fatalf("expected %d points, got %d", DefaultSamples+1, len(pts))
	}
}

func TestSampleOrbitRadii(t *testing.T) {
	// Every Earth sample stays between perihelion and aphelion.
	start := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	a, e, _, _, _, _ := Earth.Elements.AtEpoch(TimeToJD(start))
	peri, apo := a*AU*(1-e), a*AU*(1+e)
	for k, pt := range SampleOrbit(Earth, start, 100) {
		r := norm(pt)
		if r < peri*0.999 || r > apo*1.001 {
			t.Fatalf("sample %d at %f km is outside [%f, %f]", k, r, peri, apo)
		}
	}
}

func TestSampleOrbitFallbackCircle(t *testing.T) {
	ceres := Body{Name: "ceres", Radius: 469.7, RefDistance: 2.77 * AU}
	pts := SampleOrbit(ceres, time.Now(), 100)
	if len(pts) != 101 {
		t.Fatalf("expected 101 points, got %d", len(pts))
	}
	for k, pt := range pts {
		if pt[2] != 0 {
			t.Fatalf("sample %d left the orbital plane: z=%f", k, pt[2])
		}
		if !floats.EqualWithinRel(norm(pt), ceres.RefDistance, 1e-12) {
			t.Fatalf("sample %d at %f km is off the reference circle", k, norm(pt))
		}
	}
	// Fallback sampling is time independent.
	later := SampleOrbit(ceres, time.Now().Add(847*time.Hour), 100)
	for k := range pts {
		if pts[k][0] != later[k][0] || pts[k][1] != later[k][1] {
			t.Fatalf("fallback trace depends on the start time at sample %d", k)
		}
	}
}

func TestSampleOrbitCoversRevolution(t *testing.T) {
	// The in-plane angles of consecutive Earth samples must sweep a full turn.
	start := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	pts := SampleOrbit(Earth, start, 100)
	var swept float64
	for k := 1; k < len(pts); k++ {
		prev := math.Atan2(pts[k-1][1], pts[k-1][0])
		cur := math.Atan2(pts[k][1], pts[k][0])
		Δ := cur - prev
		if Δ > math.Pi {
			Δ -= 2 * math.Pi
		} else if Δ < -math.Pi {
			Δ += 2 * math.Pi
		}
		swept += Δ
	}
	if !floats.EqualWithinAbs(math.Abs(swept), 2*math.Pi, 0.05) {
		t.Fatalf("trace sweeps %f rad instead of a full revolution", swept)
	}
}
