package event

import "github.com/litescript/ls-astroclock/internal/astro"

// Aspect is a named angular relationship with its default orb, both in
// degrees.
type Aspect struct {
	Name  string
	Angle float64
	Orb   float64
}

// AngleRad returns the aspect angle in radians.
func (a Aspect) AngleRad() float64 { return astro.DegToRad(a.Angle) }

// OrbRad returns the orb in radians.
func (a Aspect) OrbRad() float64 { return astro.DegToRad(a.Orb) }

var (
	Conjunction = Aspect{"conjunct", 0, 8}
	Opposition  = Aspect{"opposition", 180, 7}
	Trine       = Aspect{"trine", 120, 6}
	Square      = Aspect{"square", 90, 6}
	Sextile     = Aspect{"sextile", 60, 4}
	Quintile    = Aspect{"quintile", 72, 3}
	Semisquare  = Aspect{"semisquare", 45, 3}
)

// Aspects lists the recognised aspects.
var Aspects = []Aspect{Conjunction, Opposition, Trine, Square, Sextile, Quintile, Semisquare}

var aspectWords = map[string]Aspect{
	"conjunct":    Conjunction,
	"conjunction": Conjunction,
	"cjn":         Conjunction,
	"opposition":  Opposition,
	"opposite":    Opposition,
	"opp":         Opposition,
	"trine":       Trine,
	"tri":         Trine,
	"square":      Square,
	"sqr":         Square,
	"sextile":     Sextile,
	"sxt":         Sextile,
	"quintile":    Quintile,
	"qnt":         Quintile,
	"semisquare":  Semisquare,
	"ssq":         Semisquare,
}

// LookupAspect resolves a lower-case aspect name or abbreviation.
func LookupAspect(word string) (Aspect, bool) {
	a, ok := aspectWords[word]
	return a, ok
}
