// Package event defines searchable astrological conditions and the query
// language that builds them.
//
// An Event evaluates to an error metric at a given time: a non-negative
// value that shrinks as the condition approaches exactness, or NoMatch
// when the condition does not hold.
package event

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/position"
)

// AtOrb is the orb of an "at" condition, in degrees.
const AtOrb = 1.0

// rxDelta is the forward difference interval for retrograde detection, in days.
const rxDelta = 0.0005

// Kind tags the variant an Event holds.
type Kind int

const (
	KindAtPosition Kind = iota
	KindInSign
	KindAspect
	KindAspectPoint
	KindRetrograde
	KindAnd
	KindOr
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindAtPosition:
		return "at"
	case KindInSign:
		return "in"
	case KindAspect:
		return "aspect"
	case KindAspectPoint:
		return "aspect-point"
	case KindRetrograde:
		return "rx"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "unknown"
	}
}

// Source supplies longitudes in radians. NaN means the longitude is
// undefined.
type Source interface {
	Longitude(b position.Body, jd float64) float64
}

// Event is one node of a condition tree. Which fields are meaningful
// depends on Kind:
//
//	KindAtPosition   Body, Point, Orb
//	KindInSign       Body, Sign
//	KindAspect       Body, Target, Aspect
//	KindAspectPoint  Body, Point, Aspect
//	KindRetrograde   Body
//	KindAnd, KindOr  Left, Right
//	KindNot          Left
//
// Events are immutable once built.
type Event struct {
	Kind   Kind
	Body   position.Body
	Target position.Body
	Point  float64 // radians
	Orb    float64 // radians
	Sign   int
	Aspect Aspect
	Left   *Event
	Right  *Event
}

// NoMatch is the error metric of a condition that does not hold.
func NoMatch() float64 { return math.NaN() }

// Matches reports whether an error metric indicates a match.
func Matches(err float64) bool { return !math.IsNaN(err) }

// AtPosition matches while b is within orb radians of lng.
func AtPosition(b position.Body, lng, orb float64) *Event {
	return &Event{Kind: KindAtPosition, Body: b, Point: astro.Mod2Pi(lng), Orb: orb}
}

// InSign matches while b is in the sign with index sign (0 = Aries).
func InSign(b position.Body, sign int) *Event {
	return &Event{Kind: KindInSign, Body: b, Sign: sign}
}

// AspectBody matches while b and target form aspect a within its orb.
func AspectBody(b, target position.Body, a Aspect) *Event {
	return &Event{Kind: KindAspect, Body: b, Target: target, Aspect: a}
}

// AspectPoint matches while b forms aspect a to the fixed longitude lng.
func AspectPoint(b position.Body, lng float64, a Aspect) *Event {
	return &Event{Kind: KindAspectPoint, Body: b, Point: astro.Mod2Pi(lng), Aspect: a}
}

// Retrograde matches while b's longitude is decreasing.
func Retrograde(b position.Body) *Event {
	return &Event{Kind: KindRetrograde, Body: b}
}

// And matches while both operands match.
func And(l, r *Event) *Event {
	return &Event{Kind: KindAnd, Left: l, Right: r}
}

// Or matches while either operand matches.
func Or(l, r *Event) *Event {
	return &Event{Kind: KindOr, Left: l, Right: r}
}

// Not matches while its operand does not.
func Not(e *Event) *Event {
	return &Event{Kind: KindNot, Left: e}
}

// Evaluate returns the error metric of e at jd.
func (e *Event) Evaluate(src Source, jd float64) float64 {
	switch e.Kind {
	case KindAtPosition:
		err := astro.AngleDiff(src.Longitude(e.Body, jd), e.Point)
		if !(err <= e.Orb) {
			return NoMatch()
		}
		return err

	case KindInSign:
		pos := src.Longitude(e.Body, jd) / astro.SignWidth
		if math.Floor(pos) != float64(e.Sign) {
			return NoMatch()
		}
		return (pos - float64(e.Sign)) * astro.SignWidth

	case KindAspect, KindAspectPoint:
		p1 := src.Longitude(e.Body, jd)
		p2 := e.Point
		if e.Kind == KindAspect {
			p2 = src.Longitude(e.Target, jd)
		}
		delta := astro.AngleDiff(astro.AngleDiff(p1, p2), e.Aspect.AngleRad())
		if !(delta < e.Aspect.OrbRad()) {
			return NoMatch()
		}
		return delta

	case KindRetrograde:
		p0 := src.Longitude(e.Body, jd)
		p1 := src.Longitude(e.Body, jd+rxDelta)
		// Signed motion, so that crossing 0° is not mistaken for retrograde.
		motion := math.Remainder(p1-p0, astro.TwoPi)
		if !(motion <= 0) {
			return NoMatch()
		}
		return -motion

	case KindAnd:
		l, r := e.Left.Evaluate(src, jd), e.Right.Evaluate(src, jd)
		if !Matches(l) || !Matches(r) {
			return NoMatch()
		}
		return l + r

	case KindOr:
		l, r := e.Left.Evaluate(src, jd), e.Right.Evaluate(src, jd)
		switch {
		case !Matches(l):
			return r
		case !Matches(r):
			return l
		default:
			return l + r
		}

	case KindNot:
		if Matches(e.Left.Evaluate(src, jd)) {
			return NoMatch()
		}
		return 0
	}
	return NoMatch()
}

// TimeStep is the suggested scanning interval in days. Position matches
// use a third of the body's step; composites use the finest of their
// operands.
func (e *Event) TimeStep() float64 {
	switch e.Kind {
	case KindAtPosition:
		return e.Body.TimeStep() / 3
	case KindAspect:
		return math.Min(e.Body.TimeStep(), e.Target.TimeStep())
	case KindInSign, KindAspectPoint, KindRetrograde:
		return e.Body.TimeStep()
	case KindAnd, KindOr:
		return math.Min(e.Left.TimeStep(), e.Right.TimeStep())
	case KindNot:
		return e.Left.TimeStep()
	}
	return position.Sun.TimeStep()
}

// String renders e in the query language. Parsing the result yields an
// equivalent event.
func (e *Event) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Event) write(sb *strings.Builder) {
	switch e.Kind {
	case KindAtPosition:
		fmt.Fprintf(sb, "%s at %s", e.Body.Key(), formatPoint(e.Point))
	case KindInSign:
		sign := "?"
		if e.Sign >= 0 && e.Sign < 12 {
			sign = strings.ToLower(astro.SignNames[e.Sign])
		}
		fmt.Fprintf(sb, "%s in %s", e.Body.Key(), sign)
	case KindAspect:
		fmt.Fprintf(sb, "%s %s %s", e.Body.Key(), e.Aspect.Name, e.Target.Key())
	case KindAspectPoint:
		fmt.Fprintf(sb, "%s %s %s", e.Body.Key(), e.Aspect.Name, formatPoint(e.Point))
	case KindRetrograde:
		fmt.Fprintf(sb, "%s rx", e.Body.Key())
	case KindAnd, KindOr:
		sb.WriteByte('(')
		e.Left.write(sb)
		sb.WriteString(" " + e.Kind.String() + " ")
		e.Right.write(sb)
		sb.WriteByte(')')
	case KindNot:
		sb.WriteString("not ")
		e.Left.write(sb)
	}
}

// formatPoint renders a longitude as "<deg> <sign> [<min>]".
func formatPoint(lng float64) string {
	total := int(math.Round(astro.RadToDeg(astro.Mod2Pi(lng)) * 60))
	if total >= 360*60 {
		total = 0
	}
	sign := strings.ToLower(astro.SignNames[total/(30*60)])
	within := total % (30 * 60)
	if m := within % 60; m != 0 {
		return fmt.Sprintf("%d %s %d", within/60, sign, m)
	}
	return fmt.Sprintf("%d %s", within/60, sign)
}

// Bound couples an event with the source it reads longitudes from.
type Bound struct {
	Event  *Event
	Source Source
}

// Bind returns e evaluated against src, ready to be searched.
func Bind(e *Event, src Source) Bound {
	return Bound{Event: e, Source: src}
}

// Evaluate returns the error metric at jd.
func (b Bound) Evaluate(jd float64) float64 { return b.Event.Evaluate(b.Source, jd) }

// TimeStep returns the event's scanning interval.
func (b Bound) TimeStep() float64 { return b.Event.TimeStep() }
