// Package chart builds a snapshot of every body's position at one time and
// renders it as a table or JSON.
package chart

import (
	"math"
	"time"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/event"
	"github.com/litescript/ls-astroclock/internal/position"
)

// BodyPosition is one body in a chart. Longitude is NaN, Sign -1 and
// House 0 when the body has no position in the chart's context. Latitude
// (radians) and Distance (AU) are NaN for bodies without orbital elements.
type BodyPosition struct {
	Body       position.Body
	Longitude  float64
	Latitude   float64
	Distance   float64
	Sign       int
	House      int
	Retrograde bool
}

// Defined reports whether the body has a position.
func (p BodyPosition) Defined() bool {
	return !math.IsNaN(p.Longitude)
}

// Chart is the state of the sky at one time, as seen in one context.
type Chart struct {
	JD      float64
	Time    time.Time
	Context position.Context

	Bodies    []BodyPosition
	Ascendant float64
	Midheaven float64
	Cusps     [12]float64
}

// Bodies returns the bodies listed in a chart for ctx. Heliocentric charts
// include the Earth.
func Bodies(ctx position.Context) []position.Body {
	bodies := position.ChartBodies()
	if ctx.Heliocentric {
		bodies = append(bodies, position.Earth)
	}
	return bodies
}

// Compute builds the chart for v at jd.
func Compute(v position.View, jd float64) *Chart {
	angles := v.Angles(jd)
	c := &Chart{
		JD:        jd,
		Time:      astro.Time(jd),
		Context:   v.Context(),
		Ascendant: angles.Ascendant,
		Midheaven: angles.Midheaven,
		Cusps:     angles.All(),
	}

	for _, b := range Bodies(v.Context()) {
		lng := v.Longitude(b, jd)
		lat, dist := v.Ecliptic(b, jd)
		c.Bodies = append(c.Bodies, BodyPosition{
			Body:       b,
			Longitude:  lng,
			Latitude:   lat,
			Distance:   dist,
			Sign:       astro.SignOf(lng),
			House:      angles.House(lng),
			Retrograde: event.Matches(event.Retrograde(b).Evaluate(v, jd)),
		})
	}
	return c
}

// Position returns the entry for b.
func (c *Chart) Position(b position.Body) (BodyPosition, bool) {
	for _, p := range c.Bodies {
		if p.Body == b {
			return p, true
		}
	}
	return BodyPosition{}, false
}
