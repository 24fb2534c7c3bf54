// Package orbit derives heliocentric positions from Keplerian orbital elements.
package orbit

import (
	"math"

	"github.com/litescript/ls-astroclock/internal/astro"
)

// DefaultRefFrame is the epoch (JD) that the built-in elements are referred to.
const DefaultRefFrame = astro.J1900

// keplerIterations is fixed; the static fixtures were tuned against it.
const keplerIterations = 6

// Elements is a set of osculating orbital elements with linear rates.
// Angles are radians and rates are radians per Julian century.
type Elements struct {
	A     float64 // semi-major axis, AU
	E     float64 // eccentricity
	Peri  float64 // longitude of perihelion
	DPeri float64
	Node  float64 // longitude of ascending node
	DNode float64
	Incl  float64 // inclination
	DIncl float64
	Lng   float64 // mean longitude
	DLng  float64

	// RefFrame is the epoch the elements apply to, as a Julian Day.
	RefFrame float64

	// Radius is a display size only; it plays no part in the orbit.
	Radius float64
}

// Position returns heliocentric ecliptic rectangular coordinates (AU) at jd.
//
// The node, perihelion, inclination and mean longitude are propagated
// linearly. The rotation into the ecliptic uses the propagated node with
// the base inclination in the cos(i) term; the out-of-plane component uses
// the propagated inclination.
func (el Elements) Position(jd float64) astro.Vec3 {
	t := (jd - el.RefFrame) / astro.DaysPerCentury

	p := astro.Mod2Pi(el.Peri + el.DPeri*t)
	n := astro.Mod2Pi(el.Node + el.DNode*t)
	i := el.Incl + el.DIncl*t
	m := astro.Mod2Pi(el.Lng + el.DLng*t)

	// argument of perihelion and mean anomaly
	p -= n
	m -= p + n

	v := TrueAnomaly(m, el.E)
	r := el.A * ((1 - el.E*el.E) / (1 + el.E*math.Cos(v)))

	w := p + v
	sinW, cosW := math.Sincos(w)
	sinN, cosN := math.Sincos(n)
	cosI := math.Cos(el.Incl)

	return astro.Vec3{
		X: r * (cosW*cosN - sinW*sinN*cosI),
		Y: r * (cosW*sinN + sinW*cosN*cosI),
		Z: r * (sinW * math.Sin(i)),
	}
}

// TrueAnomaly solves Kepler's equation for mean anomaly m with a fixed
// number of fixed-point iterations and converts the eccentric anomaly to
// true anomaly. When cos(E/2) is zero the eccentric anomaly is returned.
func TrueAnomaly(m, e float64) float64 {
	E := m
	for range keplerIterations {
		E = m + e*math.Sin(E)
	}
	if math.Cos(E/2) == 0 {
		return E
	}
	return 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2))
}

// Longitude returns the heliocentric ecliptic longitude at jd in radians.
func (el Elements) Longitude(jd float64) float64 {
	return el.Position(jd).Longitude()
}
