// Package position computes where bodies and chart points are: geocentric
// and heliocentric ecliptic longitudes from ephemeris tables with
// calculated fallbacks, and the observer-dependent chart angles.
package position

import (
	"fmt"
	"strings"
)

// Body identifies a planet, luminary, lunar node or chart point.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Chiron
	Ceres
	Sedna
	NorthNode
	SouthNode
	Earth
	Ascendant
	Midheaven

	bodyCount
)

var bodyNames = [bodyCount]string{
	Sun:       "Sun",
	Moon:      "Moon",
	Mercury:   "Mercury",
	Venus:     "Venus",
	Mars:      "Mars",
	Jupiter:   "Jupiter",
	Saturn:    "Saturn",
	Uranus:    "Uranus",
	Neptune:   "Neptune",
	Pluto:     "Pluto",
	Chiron:    "Chiron",
	Ceres:     "Ceres",
	Sedna:     "Sedna",
	NorthNode: "North Node",
	SouthNode: "South Node",
	Earth:     "Earth",
	Ascendant: "Ascendant",
	Midheaven: "Midheaven",
}

// aliases maps lower-case names to bodies, beyond each body's key.
var aliases = map[string]Body{
	"ac":         Ascendant,
	"asc":        Ascendant,
	"mc":         Midheaven,
	"node":       NorthNode,
	"north node": NorthNode,
	"rahu":       NorthNode,
	"south node": SouthNode,
	"ketu":       SouthNode,
}

// Bodies returns every body in display order.
func Bodies() []Body {
	out := make([]Body, 0, bodyCount)
	for b := Sun; b < bodyCount; b++ {
		out = append(out, b)
	}
	return out
}

// ChartBodies returns the bodies shown in a chart: everything except
// Earth and the chart points.
func ChartBodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus,
		Neptune, Pluto, Chiron, Ceres, Sedna, NorthNode, SouthNode}
}

// ParseBody resolves a body name, case-insensitively.
func ParseBody(name string) (Body, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if b, ok := aliases[n]; ok {
		return b, nil
	}
	for b := Sun; b < bodyCount; b++ {
		if n == b.Key() {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}

// Valid reports whether b is a known body.
func (b Body) Valid() bool {
	return b >= Sun && b < bodyCount
}

// String returns the display name.
func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Key returns the lower-case name without spaces. Ephemeris tables and
// static elements are looked up by key.
func (b Body) Key() string {
	return strings.ReplaceAll(strings.ToLower(b.String()), " ", "")
}

// IsChartPoint reports whether b depends on the observer rather than
// being a body in space.
func (b Body) IsChartPoint() bool {
	return b == Ascendant || b == Midheaven
}

// IsNode reports whether b is one of the lunar nodes.
func (b Body) IsNode() bool {
	return b == NorthNode || b == SouthNode
}

// TimeStep is the suggested interval in days for scanning a condition on
// the body. Fast movers get finer steps.
func (b Body) TimeStep() float64 {
	switch b {
	case Moon:
		return 0.5
	case Ascendant, Midheaven:
		return 0.02
	case Jupiter, Saturn, Uranus, Neptune, Pluto, Chiron, Ceres, Sedna, NorthNode, SouthNode:
		return 30
	default:
		return 5
	}
}

// MarshalText encodes the body as its key.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid body %d", int(b))
	}
	return []byte(b.Key()), nil
}

// UnmarshalText parses a body name.
func (b *Body) UnmarshalText(text []byte) error {
	v, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
