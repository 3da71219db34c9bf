package orrery

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/soniakeys/meeus/julian"
)

// J2000 is the Julian Date of the J2000.0 reference epoch (2000-01-01 12:00:00 TT,
// close enough to UTC for this model).
const J2000 = 2451545.0

// TimeToJD converts a calendar timestamp to a Julian Date.
func TimeToJD(dt time.Time) float64 {
	return julian.TimeToJD(dt.UTC())
}

// JulianCenturiesSinceJ2000 returns the number of Julian centuries elapsed
// between J2000.0 and the given Julian Date.
func JulianCenturiesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// SimClock owns the simulated time of the system. It is driven by the frame
// loop via Tick and by UI pause/resume controls; the propagator and the orbit
// sampler only read it. All calls must come from the same goroutine.
type SimClock struct {
	now      time.Time
	rate     float64
	paused   bool
	wall     clockwork.Clock
	lastWall time.Time
}

// NewSimClock returns a simulated clock starting at the provided instant.
// The rate is the number of simulated seconds elapsing per wall-clock second;
// rates at or below zero fall back to real time.
func NewSimClock(start time.Time, rate float64) *SimClock {
	return newSimClock(start, rate, clockwork.NewRealClock())
}

func newSimClock(start time.Time, rate float64, wall clockwork.Clock) *SimClock {
	if rate <= 0 {
		rate = 1
	}
	return &SimClock{now: start.UTC(), rate: rate, wall: wall, lastWall: wall.Now()}
}

// Tick advances the simulated time by the wall-clock duration elapsed since
// the previous tick, scaled by the clock rate. While paused, Tick is a no-op
// and the reported time stays frozen at its last value.
func (c *SimClock) Tick() {
	wallNow := c.wall.Now()
	if c.paused {
		c.lastWall = wallNow
		return
	}
	elapsed := wallNow.Sub(c.lastWall)
	c.lastWall = wallNow
	c.now = c.now.Add(time.Duration(float64(elapsed) * c.rate))
}

// Advance moves the simulated time directly to the provided instant, unless
// the clock is paused.
func (c *SimClock) Advance(to time.Time) {
	if c.paused {
		return
	}
	c.now = to.UTC()
}

// Pause freezes the clock at its current simulated time.
func (c *SimClock) Pause() {
	c.paused = true
}

// Resume unfreezes the clock. The wall reference is reset so the time spent
// paused is not replayed on the next tick.
func (c *SimClock) Resume() {
	c.paused = false
	c.lastWall = c.wall.Now()
}

// Paused returns whether the clock is paused.
func (c *SimClock) Paused() bool {
	return c.paused
}

// Now returns the current simulated instant in UTC.
func (c *SimClock) Now() time.Time {
	return c.now
}

// EpochJD returns the current simulated instant as a Julian Date.
func (c *SimClock) EpochJD() float64 {
	return TimeToJD(c.now)
}

// SetRate changes the simulated-to-wall time ratio. Rates at or below zero
// are ignored.
func (c *SimClock) SetRate(rate float64) {
	if rate > 0 {
		c.rate = rate
	}
}

// Rate returns the simulated-to-wall time ratio.
func (c *SimClock) Rate() float64 {
	return c.rate
}
