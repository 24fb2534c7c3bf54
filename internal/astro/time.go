package astro

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// J1900 is the 1900 January 0.5 epoch that the element and series
	// polynomials are measured from.
	J1900 = 2415020.0

	// J2000 is the 2000 January 1.5 epoch.
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	// MinJD and MaxJD bound the supported calculation range (about 1 AD to 3000 AD).
	MinJD = 1721411.0
	MaxJD = 2816795.0
)

// JulianDay converts a time to a Julian Day number.
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// Time converts a Julian Day number to a UTC time.
func Time(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// timeLayouts are the calendar forms accepted by ParseJD, all UTC unless
// an offset is given.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseJD reads a time given either as a Julian Day number or as a
// calendar date such as 2024-03-20, 2024-03-20 15:04 or RFC 3339.
func ParseJD(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if jd, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(jd) || math.IsInf(jd, 0) {
			return 0, fmt.Errorf("invalid julian day %q", s)
		}
		return jd, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return JulianDay(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q: want a julian day or a date like 2006-01-02 15:04", s)
}

// WithinBounds reports whether jd lies inside the supported calculation range.
func WithinBounds(jd float64) bool {
	return jd >= MinJD && jd <= MaxJD
}

// centuriesSince1900 returns Julian centuries elapsed since J1900.
func centuriesSince1900(jd float64) float64 {
	return (jd - J1900) / DaysPerCentury
}
