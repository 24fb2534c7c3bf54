// Package dasa computes Vimshottari dasa periods from the Moon's sidereal
// longitude at birth.
package dasa

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/position"
)

// DaysPerYear is the year length the periods are measured in.
const DaysPerYear = 365.2422

const (
	cycleYears = 120
	lifeYears  = 100
	nakshatras = 27

	// DefaultDepth nests periods three levels deep.
	DefaultDepth = 3

	// MaxDepth bounds the nesting; each level multiplies the count by nine.
	MaxDepth = 5
)

// Lord is one of the nine rulers of the cycle, in cycle order.
type Lord int

const (
	Ketu Lord = iota
	Venus
	Sun
	Moon
	Mars
	Rahu
	Jupiter
	Saturn
	Mercury
	lordCount
)

var lordNames = [lordCount]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

// lordYears is the length of each lord's major period.
var lordYears = [lordCount]int{7, 20, 6, 10, 7, 18, 16, 19, 17}

func (l Lord) String() string {
	if l < 0 || l >= lordCount {
		return "Unknown"
	}
	return lordNames[l]
}

// MarshalText encodes the lord by name.
func (l Lord) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Years returns the length of the lord's major period in years.
func (l Lord) Years() int {
	return lordYears[l]
}

// Period is a span ruled by one lord, in Julian Days, with its
// sub-periods when nested deeper.
type Period struct {
	Lord  Lord     `json:"lord"`
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Sub   []Period `json:"sub,omitempty"`
}

// ErrNoMoon is returned when the Moon's longitude is undefined.
var ErrNoMoon = errors.New("dasa: moon longitude is undefined")

// Compute returns the periods from birth to a hundred years after it. moon
// is the sidereal longitude of the Moon at birth in radians. The first
// period is the one running at birth, already partly elapsed according to
// how far the Moon has travelled through its nakshatra.
func Compute(birth, moon float64, depth int) ([]Period, error) {
	if math.IsNaN(moon) {
		return nil, ErrNoMoon
	}
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("dasa: depth %d outside 1..%d", depth, MaxDepth)
	}

	asterism := astro.Mod2Pi(moon) * nakshatras / astro.TwoPi
	frac := asterism - math.Floor(asterism)
	first := Lord(int(math.Floor(asterism)) % int(lordCount))
	start := birth - frac*float64(first.Years())*DaysPerYear

	periods := cycle(first, depth, start, cycleYears)
	return trim(periods, birth, birth+lifeYears*DaysPerYear), nil
}

// View returns the view dasas are read from: geocentric, and sidereal
// with the Raman ayanamsa when v is tropical.
func View(v position.View) position.View {
	ctx := v.Context()
	ctx.Heliocentric = false
	if !ctx.Zodiac.Sidereal() {
		ctx.Zodiac = astro.ZodiacRaman
	}
	return v.Service().View(ctx)
}

// FromView computes the periods for a birth at jd, reading the Moon from
// the dasa view of v.
func FromView(v position.View, jd float64, depth int) ([]Period, error) {
	return Compute(jd, View(v).Longitude(position.Moon, jd), depth)
}

// cycle lays out the nine periods starting with first, scaled so that the
// whole cycle lasts scale years.
func cycle(first Lord, depth int, start, scale float64) []Period {
	out := make([]Period, lordCount)
	t := start
	for n := range out {
		l := (first + Lord(n)) % lordCount
		out[n] = Period{Lord: l, Start: t}
		t += float64(l.Years()) * DaysPerYear * scale / cycleYears
		out[n].End = t
		if depth > 1 {
			out[n].Sub = cycle(l, depth-1, out[n].Start, float64(l.Years())*scale/cycleYears)
		}
	}
	return out
}

// trim keeps the periods overlapping [low, high), clamping starts to low.
func trim(in []Period, low, high float64) []Period {
	lo := 0
	for lo < len(in) && in[lo].End < low {
		lo++
	}
	hi := len(in) - 1
	for hi >= 0 && in[hi].Start >= high {
		hi--
	}
	if hi < lo {
		return nil
	}
	out := make([]Period, hi-lo+1)
	copy(out, in[lo:hi+1])
	for i := range out {
		if out[i].Start < low {
			out[i].Start = low
		}
		out[i].Sub = trim(out[i].Sub, low, high)
	}
	return out
}

// Write prints the periods as an indented tree with calendar dates.
func Write(w io.Writer, periods []Period) error {
	return write(w, periods, 0)
}

func write(w io.Writer, periods []Period, level int) error {
	for _, p := range periods {
		var sb strings.Builder
		if level == 0 {
			sb.WriteString("\n")
		}
		for n := range level {
			if n == level-1 {
				sb.WriteString("+ ")
			} else {
				sb.WriteString("| ")
			}
		}
		fmt.Fprintf(&sb, "%-8s: %s - %s\n", p.Lord, formatDate(p.Start), formatDate(p.End))
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if err := write(w, p.Sub, level+1); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(jd float64) string {
	return astro.Time(jd).Format("2006/01/02")
}
