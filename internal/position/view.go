package position

import (
	"math"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/orbit"
)

// Observer is a place on Earth. Angles are radians; Longitude is
// west-positive, as the sidereal time formulas expect.
type Observer struct {
	Latitude  float64
	Longitude float64
}

// ObserverFromDegrees builds an observer from latitude and east-positive
// longitude in degrees.
func ObserverFromDegrees(latDeg, lngEastDeg float64) Observer {
	return Observer{
		Latitude:  astro.DegToRad(latDeg),
		Longitude: -astro.DegToRad(lngEastDeg),
	}
}

// LatitudeDeg returns the latitude in degrees.
func (o Observer) LatitudeDeg() float64 { return astro.RadToDeg(o.Latitude) }

// LongitudeEastDeg returns the east-positive longitude in degrees.
func (o Observer) LongitudeEastDeg() float64 { return -astro.RadToDeg(o.Longitude) }

// Context is the chart setting that positions are reported in.
type Context struct {
	Zodiac       astro.Zodiac
	Heliocentric bool
	Observer     Observer
}

// View reports positions as seen in one Context.
type View struct {
	svc *Service
	ctx Context
}

// View returns a view of the service in ctx.
func (s *Service) View(ctx Context) View {
	return View{svc: s, ctx: ctx}
}

// Context returns the view's setting.
func (v View) Context() Context { return v.ctx }

// Service returns the underlying position service.
func (v View) Service() *Service { return v.svc }

// Longitude returns the ecliptic longitude of b in radians with the zodiac
// correction applied. Chart points come from the observer; other bodies
// are heliocentric or geocentric per the context.
func (v View) Longitude(b Body, jd float64) float64 {
	var lng float64
	switch {
	case b == Ascendant:
		lng = astro.Ascendant(jd, v.ctx.Observer.Longitude, v.ctx.Observer.Latitude)
	case b == Midheaven:
		lng = astro.Midheaven(jd, v.ctx.Observer.Longitude)
	case v.ctx.Heliocentric:
		lng = v.svc.HelioLongitude(b, jd)
	default:
		lng = v.svc.GeoLongitude(b, jd)
	}
	if math.IsNaN(lng) {
		return lng
	}
	return astro.ApplyZodiac(lng, jd, v.ctx.Zodiac)
}

// Ecliptic returns the ecliptic latitude in radians and the distance in AU
// of b at jd, from orbital elements and in the view's frame. Both are NaN
// for bodies without elements, the chart points and the frame's origin.
func (v View) Ecliptic(b Body, jd float64) (lat, dist float64) {
	p, ok := v.svc.HelioPosition(b, jd)
	if !ok {
		return math.NaN(), math.NaN()
	}
	if !v.ctx.Heliocentric {
		p = p.Sub(orbit.Earth.Position(jd))
	}
	r := p.Norm()
	if r == 0 {
		return math.NaN(), math.NaN()
	}
	return p.Latitude(), r
}

// Angles are the chart angles and intermediate house cusps at one time.
type Angles struct {
	Ascendant float64
	Midheaven float64
	Cusps     astro.Cusps
}

// All returns the twelve house cusps, the 1st house first.
func (a Angles) All() [12]float64 {
	return astro.AllCusps(a.Ascendant, a.Midheaven, a.Cusps)
}

// House returns the house (1..12) of a longitude, 0 if it cannot be placed.
func (a Angles) House(lng float64) int {
	return astro.House(lng, a.Ascendant, a.Midheaven, a.Cusps)
}

// Angles returns the zodiac-corrected ascendant, midheaven and Porphyry
// cusps at jd.
func (v View) Angles(jd float64) Angles {
	asc := v.Longitude(Ascendant, jd)
	mc := v.Longitude(Midheaven, jd)
	return Angles{Ascendant: asc, Midheaven: mc, Cusps: astro.PorphyryCusps(asc, mc)}
}

// House returns the house b occupies at jd.
func (v View) House(b Body, jd float64) int {
	return v.Angles(jd).House(v.Longitude(b, jd))
}
