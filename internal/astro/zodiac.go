package astro

import (
	"fmt"
	"math"
	"strings"
)

// Zodiac selects the reference frame that ecliptic longitudes are reported in.
type Zodiac int

const (
	ZodiacTropical     Zodiac = iota // Equinox-based (default)
	ZodiacRaman                      // Sidereal, Raman ayanamsa
	ZodiacLahiri                     // Sidereal, Lahiri ayanamsa
	ZodiacFaganBradley               // Sidereal, Fagan-Bradley SVP
)

// String returns the zodiac name.
func (z Zodiac) String() string {
	switch z {
	case ZodiacTropical:
		return "tropical"
	case ZodiacRaman:
		return "raman"
	case ZodiacLahiri:
		return "lahiri"
	case ZodiacFaganBradley:
		return "fagan-bradley"
	default:
		return "unknown"
	}
}

// Sidereal reports whether the zodiac is one of the sidereal variants.
func (z Zodiac) Sidereal() bool {
	return z == ZodiacRaman || z == ZodiacLahiri || z == ZodiacFaganBradley
}

// ParseZodiac parses a zodiac name. The empty string means tropical.
func ParseZodiac(s string) (Zodiac, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tropical":
		return ZodiacTropical, nil
	case "raman":
		return ZodiacRaman, nil
	case "lahiri":
		return ZodiacLahiri, nil
	case "fagan-bradley", "faganbradley", "fagan":
		return ZodiacFaganBradley, nil
	default:
		return ZodiacTropical, fmt.Errorf("unknown zodiac %q", s)
	}
}

// SVP returns the synodic vernal point correction in radians: the
// Fagan-Bradley ayanamsa, from which the other sidereal variants are offsets.
func SVP(jd float64) float64 {
	t := centuriesSince1900(jd)
	meanSun := Mod2Pi(DegToRad(279.696667) + DegToRad(36000.76888)*t)
	meanNode := Mod2Pi(DegToRad(259.18330) +
		(DegToRad(-1934.141925)+
			(DegToRad(7.480791)/3600+DegToRad(0.00720)/3600*t)*t)*t)

	x := DegToRad(17.23) / 3600 * math.Sin(meanNode)
	x += DegToRad(1.27)/3600*math.Sin(meanSun*2) - DegToRad(1.396011668)*t - DegToRad(1.11)/3600*t*t
	x -= DegToRad(23.34396387)
	return x
}

// ApplyZodiac converts a tropical longitude to the given zodiac.
// NaN input stays NaN.
func ApplyZodiac(angle, jd float64, z Zodiac) float64 {
	var adj float64
	switch z {
	case ZodiacRaman:
		adj = DegToRad(2.333333)
	case ZodiacLahiri:
		adj = DegToRad(53.0 / 60.0)
	case ZodiacFaganBradley:
	default:
		return angle
	}
	return Mod2Pi(angle + SVP(jd) + adj)
}
