package astro

import (
	"math"
)

// GMST returns Greenwich Mean Sidereal Time in radians, [0, 2π).
// The polynomial runs in centuries from J2000 while the day fraction is
// taken from the 1900-relative day count.
func GMST(jd float64) float64 {
	t := jd - J1900
	T := t/DaysPerCentury - 1
	T2 := T * T

	g := 24110.54841
	g += 8640184.812866*T + 0.093104*T2 - 0.0000062*T2*T
	g /= 86400
	g += t - math.Floor(t) + 0.5
	g -= math.Floor(g)
	return g * TwoPi
}

// Obliquity returns the mean obliquity of the ecliptic in radians.
func Obliquity(jd float64) float64 {
	tC := (jd - J2000) / DaysPerCentury
	return DegToRad(23.439291) -
		(DegToRad(0.0130042)-
			(DegToRad(0.00000016)-
				DegToRad(0.000000504)*tC)*tC)*tC
}

// RAMC returns the right ascension of the meridian for a west-positive
// geographic longitude in radians.
func RAMC(jd, lngWest float64) float64 {
	return GMST(jd) - lngWest
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon.
// lngWest is west-positive longitude and lat is latitude, both in radians.
// At the poles the ascendant is undefined and NaN is returned.
func Ascendant(jd, lngWest, lat float64) float64 {
	return ascendantFromRAMC(RAMC(jd, lngWest), Obliquity(jd), lat)
}

func ascendantFromRAMC(ramc, oe, lat float64) float64 {
	if math.Abs(math.Cos(lat)) < 1e-12 {
		return math.NaN()
	}
	v1 := -math.Cos(ramc)
	v2 := math.Sin(oe)*math.Tan(lat) + math.Cos(oe)*math.Sin(ramc)
	ac := math.Atan2(-v1, -v2)
	if ac < 0 {
		ac += TwoPi
	}
	return ac
}

// Midheaven returns the ecliptic longitude culminating on the meridian.
func Midheaven(jd, lngWest float64) float64 {
	return midheavenFromRAMC(RAMC(jd, lngWest), Obliquity(jd))
}

func midheavenFromRAMC(ramc, oe float64) float64 {
	mc := math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(oe))
	if mc < 0 {
		mc += TwoPi
	}
	return mc
}
