package position

import (
	"math"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/orbit"
)

// Service computes body positions from an ephemeris store, falling back to
// calculation where the store has no coverage. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	store *ephem.Store
}

// NewService returns a service backed by store. A nil store behaves as an
// empty one.
func NewService(store *ephem.Store) *Service {
	if store == nil {
		store = ephem.Empty()
	}
	return &Service{store: store}
}

// Store returns the backing ephemeris store.
func (s *Service) Store() *ephem.Store {
	return s.store
}

// Elements returns the orbital elements in effect for b at jd: a sampled
// element table if one covers jd, otherwise the built-in elements.
func (s *Service) Elements(b Body, jd float64) (orbit.Elements, bool) {
	if !b.Valid() || b.IsChartPoint() || b.IsNode() {
		return orbit.Elements{}, false
	}
	if el, ok := s.store.LookupElements(b.Key(), jd); ok {
		return el, true
	}
	return orbit.Static(b.Key())
}

// GeoLongitude returns the geocentric ecliptic longitude of b in radians.
// The sources, in order: a longitude table, the lunar series (Moon only),
// an element table, built-in elements. NaN when none applies, and always
// for Earth and the chart points.
func (s *Service) GeoLongitude(b Body, jd float64) float64 {
	switch {
	case !b.Valid(), b == Earth, b.IsChartPoint():
		return math.NaN()
	case b == NorthNode:
		return astro.MeanLunarNode(jd)
	case b == SouthNode:
		return astro.Mod2Pi(astro.MeanLunarNode(jd) + math.Pi)
	}

	if lng, ok := s.store.LookupLongitude(b.Key(), jd); ok {
		return lng
	}
	if b == Moon {
		return astro.MoonLongitude(jd)
	}
	el, ok := s.Elements(b, jd)
	if !ok {
		return math.NaN()
	}
	earth := orbit.Earth.Position(jd)
	return el.Position(jd).Sub(earth).Longitude()
}

// HelioLongitude returns the heliocentric ecliptic longitude of b in
// radians. NaN for the Sun, the nodes, the chart points and bodies without
// elements.
func (s *Service) HelioLongitude(b Body, jd float64) float64 {
	if b == Sun {
		return math.NaN()
	}
	p, ok := s.HelioPosition(b, jd)
	if !ok {
		return math.NaN()
	}
	return p.Longitude()
}

// HelioPosition returns heliocentric rectangular coordinates in AU. The
// Moon is placed at its mean distance from Earth along its series
// longitude.
func (s *Service) HelioPosition(b Body, jd float64) (astro.Vec3, bool) {
	switch {
	case b == Sun:
		return astro.Vec3{}, true
	case b == Moon:
		lng := astro.MoonLongitude(jd)
		offset := astro.Vec3{X: math.Cos(lng), Y: math.Sin(lng)}.Scale(orbit.Moon.A)
		return orbit.Earth.Position(jd).Add(offset), true
	}
	el, ok := s.Elements(b, jd)
	if !ok {
		return astro.Vec3{}, false
	}
	return el.Position(jd), true
}
