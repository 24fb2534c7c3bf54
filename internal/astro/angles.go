// Package astro provides the angle, time and sidereal math shared by the
// position engine: angle wrapping, Julian Day conversion, sidereal time,
// chart angles, house cusps and zodiac corrections.
package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// Mod2Pi wraps x into [0, 2π). It is idempotent. NaN and ±Inf give NaN.
func Mod2Pi(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN()
	}
	r := unit.PMod(x, TwoPi)
	// A tiny negative x rounds up to exactly 2π.
	if r >= TwoPi {
		r = 0
	}
	return r
}

// Normalize360 wraps a value in degrees into [0, 360).
func Normalize360(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return math.NaN()
	}
	r := unit.PMod(deg, 360)
	if r >= 360 {
		r = 0
	}
	return r
}

// AngleDiff returns the unsigned separation of two angles in [0, π].
// Inputs are expected in [0, 2π).
func AngleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = TwoPi - d
	}
	return d
}

// AngleDelta returns the counter-clockwise distance from start to end, [0, 2π).
func AngleDelta(start, end float64) float64 {
	return Mod2Pi(end - start)
}
