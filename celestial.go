package orrery

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// SunGM is the gravitational parameter of the Sun in km^3/s^2.
	SunGM = 1.32712440017987e11
	// SunRadius is the radius of the Sun in kilometers.
	SunRadius = 695700.0
)

// MeanElements defines the six osculating Keplerian elements of a body at the
// J2000.0 reference epoch together with their secular rates per Julian
// century. Distances are stored in AU and angles in degrees; both are
// immutable after construction, only the epoch they are evaluated at varies.
type MeanElements struct {
	a, aDot float64 // semi-major axis
	e, eDot float64 // eccentricity
	i, iDot float64 // inclination
	Ω, ΩDot float64 // longitude of the ascending node
	ϖ, ϖDot float64 // longitude of perihelion
	L, LDot float64 // mean longitude
}

// NewMeanElements returns an element set from its J2000 values and rates.
// WARNING: distances must be in AU and angles in degrees.
func NewMeanElements(a, aDot, e, eDot, i, iDot, Ω, ΩDot, ϖ, ϖDot, L, LDot float64) *MeanElements {
	return &MeanElements{a, aDot, e, eDot, i, iDot, Ω, ΩDot, ϖ, ϖDot, L, LDot}
}

// AtEpoch evaluates the element set at the given Julian Date by applying the
// secular rates linearly over the Julian centuries elapsed since J2000.
func (m MeanElements) AtEpoch(jd float64) (a, e, i, Ω, ϖ, L float64) {
	T := JulianCenturiesSinceJ2000(jd)
	a = m.a + m.aDot*T
	e = m.e + m.eDot*T
	i = m.i + m.iDot*T
	Ω = m.Ω + m.ΩDot*T
	ϖ = m.ϖ + m.ϖDot*T
	L = m.L + m.LDot*T
	return
}

// Period returns the orbital period around the Sun for the semi-major axis
// evaluated at the given Julian Date.
func (m MeanElements) Period(jd float64) time.Duration {
	a, _, _, _, _, _ := m.AtEpoch(jd)
	aKm := a * AU
	// The time package does not trivially handle fractions of a second, so let's
	// compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(aKm, 3)/SunGM)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// Body defines a celestial object tracked by the simulation. Bodies without
// an element set are placed once at their reference distance and never
// re-propagated.
type Body struct {
	Name        string
	Radius      float64 // km
	Color       string  // display color for the rendering layer
	RefDistance float64 // km, static circular placement without elements
	ContentID   string  // panel identifier for the picking/UI layer
	Elements    *MeanElements
}

// String implements the Stringer interface.
func (b Body) String() string {
	return b.Name + " body"
}

// HasElements returns whether this body carries a catalogued element set.
func (b Body) HasElements() bool {
	return b.Elements != nil
}

// StaticPosition returns the fixed heliocentric position used when a body has
// no catalogued elements.
func (b Body) StaticPosition() []float64 {
	return []float64{b.RefDistance, 0, 0}
}

/* Definitions: J2000 mean elements and rates from the JPL approximate
   ephemerides table (valid 1800 AD - 2050 AD). */

// Mercury is the one with the longest days.
var Mercury = Body{"mercury", 2439.7, "#b5b5b5", 0.38709927 * AU, "panel-mercury",
	NewMeanElements(0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749, 48.33076593, -0.12534081, 77.45779628, 0.16047689, 252.25032350, 149472.67411175)}

// Venus is poisonous.
var Venus = Body{"venus", 6051.8, "#e8cda2", 0.72333566 * AU, "panel-venus",
	NewMeanElements(0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890, 76.67984255, -0.27769418, 131.60246718, 0.00268329, 181.97909950, 58517.81538729)}

// Earth is home.
var Earth = Body{"earth", 6378.1363, "#2e86ab", 1.00000261 * AU, "panel-earth",
	NewMeanElements(1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668, 0.0, 0.0, 102.93768193, 0.32327364, 100.46457166, 35999.37244981)}

// Mars is the vacation place.
var Mars = Body{"mars", 3396.19, "#c1440e", 1.52371034 * AU, "panel-mars",
	NewMeanElements(1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131, 49.55953891, -0.29257343, -23.94362959, 0.44441088, -4.55343205, 19140.30268499)}

// Jupiter is big.
var Jupiter = Body{"jupiter", 71492.0, "#d8ca9d", 5.20288700 * AU, "panel-jupiter",
	NewMeanElements(5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714, 100.47390909, 0.20469106, 14.72847983, 0.21252668, 34.39644051, 3034.74612775)}

// Saturn floats and that's really cool.
var Saturn = Body{"saturn", 60268.0, "#f4d47a", 9.53667594 * AU, "panel-saturn",
	NewMeanElements(9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609, 113.66242448, -0.28867794, 92.59887831, -0.41897216, 49.95424423, 1222.49362201)}

// Uranus is no joke.
var Uranus = Body{"uranus", 25559.0, "#7fdbda", 19.18916464 * AU, "panel-uranus",
	NewMeanElements(19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939, 74.01692503, 0.04240589, 170.95427630, 0.40805281, 313.23810451, 428.48202785)}

// Neptune is windy.
var Neptune = Body{"neptune", 24764.0, "#3954a5", 30.06992276 * AU, "panel-neptune",
	NewMeanElements(30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372, 131.78422574, -0.00508664, 44.96476227, -0.32241464, -55.12002969, 218.45945325)}

// Pluto is not a planet and had that down ranking coming. It should have stayed in its lane.
var Pluto = Body{"pluto", 1188.3, "#c9b29b", 39.48211675 * AU, "panel-pluto",
	NewMeanElements(39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818, 110.30393684, -0.01183482, 224.06891629, -0.04062942, 238.92903833, 145.20780515)}

// Catalog is the immutable per-body element table, built once at startup and
// shared by read-only reference for the process lifetime.
type Catalog struct {
	bodies []Body
	index  map[string]int
}

// NewCatalog builds a catalog from the given bodies. Names are normalized to
// lowercase and must be unique; uniqueness is checked here once, not per frame.
func NewCatalog(bodies ...Body) (*Catalog, error) {
	c := Catalog{bodies: make([]Body, 0, len(bodies)), index: make(map[string]int, len(bodies))}
	for _, b := range bodies {
		b.Name = strings.ToLower(b.Name)
		if b.ContentID == "" {
			b.ContentID = "panel-" + b.Name
		}
		if _, found := c.index[b.Name]; found {
			return nil, fmt.Errorf("duplicate body '%s' in catalog", b.Name)
		}
		c.index[b.Name] = len(c.bodies)
		c.bodies = append(c.bodies, b)
	}
	return &c, nil
}

// DefaultCatalog returns the built-in nine-body catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto)
	if err != nil {
		panic(err)
	}
	return c
}

// Bodies returns the catalogued bodies in load order.
func (c *Catalog) Bodies() []Body {
	return c.bodies
}

// Lookup returns the body for the given name, case insensitively.
func (c *Catalog) Lookup(name string) (Body, bool) {
	idx, found := c.index[strings.ToLower(name)]
	if !found {
		return Body{}, false
	}
	return c.bodies[idx], true
}

// Len returns the number of catalogued bodies.
func (c *Catalog) Len() int {
	return len(c.bodies)
}
