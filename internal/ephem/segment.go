// Package ephem holds precomputed ephemeris tables: sampled ecliptic
// longitudes and sampled orbital elements, chained per body over time.
package ephem

import (
	"errors"
	"strings"

	"github.com/litescript/ls-astroclock/internal/orbit"
)

var (
	// ErrEmptyTable is returned for a table without any samples.
	ErrEmptyTable = errors.New("ephemeris table has no samples")

	// ErrShortTable is returned when a table ends before its declared samples.
	ErrShortTable = errors.New("ephemeris table is truncated")

	// ErrBadHeader is returned for a table header that cannot describe any samples.
	ErrBadHeader = errors.New("ephemeris table header is invalid")
)

// Kind distinguishes the two table layouts.
type Kind int

const (
	KindLongitude Kind = iota // sampled ecliptic longitudes
	KindElements              // sampled orbital elements
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLongitude:
		return "longitude"
	case KindElements:
		return "elements"
	default:
		return "unknown"
	}
}

// Segment is one contiguous table for a body: samples spaced DT days
// apart starting at T0. Exactly one of Longitudes or Elements is set.
type Segment struct {
	Name string
	T0   float64
	DT   float64
	T1   float64

	// Longitudes are geocentric ecliptic longitudes in degrees.
	Longitudes []float32

	// Elements are element samples; each RefFrame is its sample time.
	Elements []orbit.Elements
}

// Kind reports which layout the segment carries.
func (s Segment) Kind() Kind {
	if s.Elements != nil {
		return KindElements
	}
	return KindLongitude
}

// Len returns the number of samples in the segment.
func (s Segment) Len() int {
	if s.Kind() == KindElements {
		return len(s.Elements)
	}
	return len(s.Longitudes)
}

// NewLongitudeSegment builds a longitude segment from evenly spaced samples.
// T1 is set one interval past the last sample, so that the declared sample
// count of the binary layout matches len(samples).
func NewLongitudeSegment(name string, t0, dt float64, samples []float32) Segment {
	return Segment{
		Name:       normalizeName(name),
		T0:         t0,
		DT:         dt,
		T1:         t0 + float64(len(samples)+1)*dt,
		Longitudes: samples,
	}
}

// NewElementSegment builds an element segment from records ordered by time.
// The interval is derived from the first and last record.
func NewElementSegment(name string, records []orbit.Elements) (Segment, error) {
	if len(records) == 0 {
		return Segment{}, ErrEmptyTable
	}
	s := Segment{
		Name:     normalizeName(name),
		T0:       records[0].RefFrame,
		T1:       records[len(records)-1].RefFrame,
		Elements: records,
	}
	if len(records) > 1 {
		s.DT = (s.T1 - s.T0) / float64(len(records)-1)
	}
	return s, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
