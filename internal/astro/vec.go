package astro

import (
	"math"
)

// Vec3 is a rectangular position in the ecliptic frame, in AU.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Longitude returns the ecliptic longitude of the vector in radians, [0, 2π).
// Only X and Y take part; latitude is ignored.
func (v Vec3) Longitude() float64 {
	return Mod2Pi(math.Atan2(v.Y, v.X))
}

// Latitude returns the ecliptic latitude in radians.
func (v Vec3) Latitude() float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return math.Asin(v.Z / r)
}
