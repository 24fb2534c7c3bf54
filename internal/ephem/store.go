package ephem

import (
	"math"
	"slices"
	"sort"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/orbit"
)

// mergeTolerance is the allowed misalignment of a merged table, as a
// fraction of the sample interval.
const mergeTolerance = 1.0 / 100000

// Store is an immutable set of per-body table chains. It is safe for
// concurrent use; build one with a Builder.
type Store struct {
	longitudes map[string][]Segment
	elements   map[string][]Segment
}

// Empty returns a store with no tables; every lookup reports no data.
func Empty() *Store {
	return &Store{
		longitudes: map[string][]Segment{},
		elements:   map[string][]Segment{},
	}
}

// Coverage describes one body's chain.
type Coverage struct {
	Name     string  `json:"name"`
	Kind     Kind    `json:"-"`
	KindName string  `json:"kind"`
	T0       float64 `json:"t0"`
	T1       float64 `json:"t1"`
	Segments int     `json:"segments"`
	Samples  int     `json:"samples"`
}

// Coverage lists every chain in the store, ordered by kind then name.
func (s *Store) Coverage() []Coverage {
	var out []Coverage
	add := func(kind Kind, chains map[string][]Segment) {
		names := make([]string, 0, len(chains))
		for name := range chains {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			chain := chains[name]
			c := Coverage{
				Name:     name,
				Kind:     kind,
				KindName: kind.String(),
				T0:       chain[0].T0,
				T1:       chain[len(chain)-1].T1,
				Segments: len(chain),
			}
			for _, seg := range chain {
				c.Samples += seg.Len()
			}
			out = append(out, c)
		}
	}
	add(KindLongitude, s.longitudes)
	add(KindElements, s.elements)
	return out
}

// Chain returns the ordered segments for a body and kind.
// The returned slice must not be modified.
func (s *Store) Chain(name string, kind Kind) []Segment {
	if kind == KindElements {
		return s.elements[normalizeName(name)]
	}
	return s.longitudes[normalizeName(name)]
}

// contains reports whether jd falls within the segment's half-open
// interval [T0, T1).
func (s Segment) contains(jd float64) bool {
	return jd >= s.T0 && jd < s.T1
}

// longitude interpolates the segment at jd, in degrees. It reports false
// within the final interval before T1 and wherever fewer than three
// samples remain.
func (s Segment) longitude(jd float64) (float64, bool) {
	if !s.contains(jd) || jd >= s.T1-s.DT {
		return 0, false
	}
	pos := (jd - s.T0) / s.DT
	s0 := int(math.Floor(pos))
	if s0+2 >= len(s.Longitudes) {
		return 0, false
	}
	return interpolateQuadratic(s.Longitudes[s0], s.Longitudes[s0+1], s.Longitudes[s0+2], pos-float64(s0)), true
}

// LookupLongitude returns the interpolated geocentric longitude of a body
// in radians. Segments are tried in order; one that contains jd but cannot
// interpolate there hands over to the next. It reports false when jd
// precedes the chain, falls within the final interval of the last segment
// covering it, or lies past the last segment.
func (s *Store) LookupLongitude(name string, jd float64) (float64, bool) {
	chain := s.longitudes[normalizeName(name)]
	for i, seg := range chain {
		if !seg.contains(jd) {
			continue
		}
		if lng, ok := seg.longitude(jd); ok {
			return astro.DegToRad(lng), true
		}
		if i+1 < len(chain) {
			if lng, ok := bridge(seg, chain[i+1], jd); ok {
				return astro.DegToRad(lng), true
			}
		}
	}
	return 0, false
}

// bridge interpolates across the join of two tables where b starts at a's
// T1. A table declares no sample in its final interval, so the join is
// missing a slot; the quadratic runs through the nearest samples on either
// side of it.
func bridge(a, b Segment, jd float64) (float64, bool) {
	n := len(a.Longitudes)
	if n < 2 || len(b.Longitudes) == 0 {
		return 0, false
	}
	tol := a.DT * mergeTolerance
	if math.Abs(a.DT-b.DT) > tol || math.Abs(b.T0-a.T1) > tol {
		return 0, false
	}
	last := a.T0 + float64(n-1)*a.DT
	if b.T0 <= last || jd < last-a.DT {
		return 0, false
	}

	ts := [3]float64{last - a.DT, last, b.T0}
	vs := [3]float32{a.Longitudes[n-2], a.Longitudes[n-1], b.Longitudes[0]}
	if jd >= last && len(b.Longitudes) > 1 {
		ts = [3]float64{last, b.T0, b.T0 + b.DT}
		vs = [3]float32{a.Longitudes[n-1], b.Longitudes[0], b.Longitudes[1]}
	}
	return interpolateLagrange(ts, vs, jd), true
}

// LookupElements returns the element sample at or before jd. Samples are
// not interpolated. Segments are tried in order as for LookupLongitude.
func (s *Store) LookupElements(name string, jd float64) (orbit.Elements, bool) {
	for _, seg := range s.elements[normalizeName(name)] {
		if !seg.contains(jd) || jd >= seg.T1-seg.DT {
			continue
		}
		s0 := int(math.Floor((jd - seg.T0) / seg.DT))
		if s0 < len(seg.Elements) {
			return seg.Elements[s0], true
		}
	}
	return orbit.Elements{}, false
}

// interpolateQuadratic fits a parabola through three samples in degrees
// at offsets 0, 1 and 2 and evaluates it at offset i. Samples are first
// unwrapped so that each lies within 180° of its predecessor. The result
// is wrapped into [0, 360).
func interpolateQuadratic(a32, b32, c32 float32, i float64) float64 {
	a, b, c := float64(a32), float64(b32), float64(c32)
	b = unwrapNear(b, a)
	c = unwrapNear(c, b)

	A := (a - 2*b + c) / 2
	B := b - a - A
	C := a
	return astro.Normalize360(A*i*i + B*i + C)
}

// interpolateLagrange fits a parabola through three unevenly spaced
// samples in degrees at times ts and evaluates it at jd. Samples are
// unwrapped as in interpolateQuadratic.
func interpolateLagrange(ts [3]float64, vs [3]float32, jd float64) float64 {
	v0 := float64(vs[0])
	v1 := unwrapNear(float64(vs[1]), v0)
	v2 := unwrapNear(float64(vs[2]), v1)

	l0 := (jd - ts[1]) * (jd - ts[2]) / ((ts[0] - ts[1]) * (ts[0] - ts[2]))
	l1 := (jd - ts[0]) * (jd - ts[2]) / ((ts[1] - ts[0]) * (ts[1] - ts[2]))
	l2 := (jd - ts[0]) * (jd - ts[1]) / ((ts[2] - ts[0]) * (ts[2] - ts[1]))
	return astro.Normalize360(v0*l0 + v1*l1 + v2*l2)
}

// unwrapNear shifts x by whole turns until it is within 180° of ref.
func unwrapNear(x, ref float64) float64 {
	for x < ref-180 {
		x += 360
	}
	for x > ref+180 {
		x -= 360
	}
	return x
}

// Builder collects tables and produces an immutable Store. Tables for the
// same body and kind are merged when contiguous, otherwise chained.
type Builder struct {
	longitudes map[string][]Segment
	elements   map[string][]Segment
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		longitudes: map[string][]Segment{},
		elements:   map[string][]Segment{},
	}
}

// Add registers a segment. Segments without samples are ignored.
func (b *Builder) Add(seg Segment) {
	if seg.Len() == 0 {
		return
	}
	seg.Name = normalizeName(seg.Name)
	if seg.Kind() == KindElements {
		b.elements[seg.Name] = append(b.elements[seg.Name], seg)
	} else {
		b.longitudes[seg.Name] = append(b.longitudes[seg.Name], seg)
	}
}

// Build orders each body's segments by start time, merges contiguous
// ones and returns the store. The builder may be reused afterwards.
func (b *Builder) Build() *Store {
	return &Store{
		longitudes: buildChains(b.longitudes),
		elements:   buildChains(b.elements),
	}
}

func buildChains(in map[string][]Segment) map[string][]Segment {
	out := make(map[string][]Segment, len(in))
	for name, segs := range in {
		sorted := slices.Clone(segs)
		slices.SortStableFunc(sorted, func(x, y Segment) int {
			switch {
			case x.T0 < y.T0:
				return -1
			case x.T0 > y.T0:
				return 1
			default:
				return 0
			}
		})

		var chain []Segment
		for _, seg := range sorted {
			if n := len(chain); n > 0 {
				if merged, ok := mergeSegments(chain[n-1], seg); ok {
					chain[n-1] = merged
					continue
				}
			}
			chain = append(chain, seg)
		}
		out[name] = chain
	}
	return out
}

// mergeSegments appends b onto a when both share an interval and b starts
// on one of a's sample slots (or the slot just past a's last sample).
// Samples of a from b's start onward are replaced by b's.
func mergeSegments(a, b Segment) (Segment, bool) {
	if a.Kind() != b.Kind() || !(a.DT > 0) {
		return Segment{}, false
	}
	tol := a.DT * mergeTolerance
	if math.Abs(a.DT-b.DT) > tol || b.T1 < a.T1 {
		return Segment{}, false
	}
	slot := math.Round((b.T0 - a.T0) / a.DT)
	if math.Abs(b.T0-(a.T0+slot*a.DT)) > tol {
		return Segment{}, false
	}
	start := int(slot)
	if start < 0 || start > a.Len() {
		return Segment{}, false
	}

	merged := Segment{Name: a.Name, T0: a.T0, DT: a.DT, T1: b.T1}
	if a.Kind() == KindElements {
		merged.Elements = append(slices.Clone(a.Elements[:start]), b.Elements...)
	} else {
		merged.Longitudes = append(slices.Clone(a.Longitudes[:start]), b.Longitudes...)
	}
	return merged, true
}
