package event

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/position"
)

// ParseError reports a malformed query. Offset and Length locate the
// offending token in bytes, for highlighting.
type ParseError struct {
	Msg    string
	Offset int
	Length int
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Caret returns a marker line that underlines the offending token when
// printed beneath the query.
func (e *ParseError) Caret() string {
	return strings.Repeat(" ", max(e.Offset, 0)) + strings.Repeat("^", max(e.Length, 1))
}

// Parse builds an event from a query such as
//
//	venus square moon and not mars rx
//	(sun in aries or sun in leo) and moon at 15 cancer 30
//
// Grammar:
//
//	expr      := value [("and" | "or") expr]
//	value     := "(" expr [")"] | "not" value | body condition
//	condition := "in" sign | "at" longitude | "rx" | aspect (body | longitude)
//	longitude := degrees sign [minutes]
//
// Words are case-insensitive. "and" and "or" group to the right with equal
// precedence. A closing parenthesis may be omitted at the end of input.
func Parse(query string) (*Event, error) {
	p := &parser{lex: newLexer(query)}
	ev, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

type parser struct {
	lex *lexer
}

// fail builds a ParseError at the most recently scanned token.
func (p *parser) fail(format string, args ...any) error {
	return &ParseError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: p.lex.last.off,
		Length: p.lex.last.len,
	}
}

func (p *parser) expr(parens int) (*Event, error) {
	left, err := p.value(parens)
	if err != nil {
		return nil, err
	}

	next := p.lex.peek()
	switch {
	case next.is("and"), next.is("or"):
		p.lex.next()
		right, err := p.expr(parens)
		if err != nil {
			return nil, err
		}
		if next.text == "and" {
			return And(left, right), nil
		}
		return Or(left, right), nil
	case parens > 0 && next.is(")"):
		return left, nil
	case next.kind != tokEOF:
		return nil, p.fail("Unexpected: '%s'", next.text)
	}
	return left, nil
}

func (p *parser) value(parens int) (*Event, error) {
	tok := p.lex.peek()
	switch {
	case tok.kind == tokEOF:
		return nil, p.fail("Expected expression")

	case tok.is("("):
		p.lex.next()
		ev, err := p.expr(parens + 1)
		if err != nil {
			return nil, err
		}
		switch next := p.lex.peek(); {
		case next.is(")"):
			p.lex.next()
		case next.kind != tokEOF:
			return nil, p.fail("Expected ')'")
		}
		return ev, nil

	case tok.is("not"):
		p.lex.next()
		ev, err := p.value(parens)
		if err != nil {
			return nil, err
		}
		return Not(ev), nil
	}

	body, ok := parseBodyToken(tok)
	if !ok {
		return nil, p.fail("Expected name of planet")
	}
	p.lex.next()
	return p.condition(body)
}

func (p *parser) condition(body position.Body) (*Event, error) {
	cond := p.lex.next()
	switch {
	case cond.is("in"):
		sign, ok := p.sign()
		if !ok {
			return nil, p.fail("Expected sign after 'in'")
		}
		return InSign(body, sign), nil

	case cond.is("at"):
		lng, err := p.longitude()
		if err != nil {
			return nil, err
		}
		return AtPosition(body, lng, astro.DegToRad(AtOrb)), nil

	case cond.is("rx"):
		return Retrograde(body), nil
	}

	aspect, ok := LookupAspect(cond.text)
	if cond.kind != tokWord || !ok {
		return nil, p.fail("Expected 'in', 'at', 'rx' or name of aspect after planet name, not %s", cond.describe())
	}

	switch target := p.lex.peek(); target.kind {
	case tokEOF:
		return nil, p.fail("Expected planet name or zodiac position after aspect name")
	case tokNumber:
		lng, err := p.longitude()
		if err != nil {
			return nil, err
		}
		return AspectPoint(body, lng, aspect), nil
	default:
		other, err := p.body()
		if err != nil {
			return nil, err
		}
		return AspectBody(body, other, aspect), nil
	}
}

// body consumes a mandatory body name.
func (p *parser) body() (position.Body, error) {
	tok := p.lex.next()
	if tok.kind == tokEOF {
		return 0, p.fail("Expected name of planet")
	}
	b, ok := parseBodyToken(tok)
	if !ok {
		return 0, p.fail("Expected name of planet, not %s", tok.text)
	}
	return b, nil
}

// sign consumes a sign name if one is next.
func (p *parser) sign() (int, bool) {
	tok := p.lex.peek()
	if tok.kind != tokWord {
		return -1, false
	}
	sign, ok := astro.ParseSign(tok.text)
	if !ok {
		return -1, false
	}
	p.lex.next()
	return sign, true
}

// longitude consumes "<degrees> <sign> [<minutes>]" and returns radians.
func (p *parser) longitude() (float64, error) {
	deg := p.lex.next()
	if deg.kind != tokNumber {
		return 0, p.fail("Expected degrees after 'at'")
	}
	if deg.num < 0 {
		return 0, p.fail("Number out of range: %s", deg.text)
	}
	sign, ok := p.sign()
	if !ok {
		return 0, p.fail("Expected sign after degrees after 'at'")
	}
	d := float64(deg.num) + float64(sign)*30
	if mins := p.lex.peek(); mins.kind == tokNumber {
		if mins.num < 0 {
			return 0, p.fail("Number out of range: %s", mins.text)
		}
		d += float64(mins.num) / 60
		p.lex.next()
	}
	return astro.DegToRad(d), nil
}

func parseBodyToken(tok token) (position.Body, bool) {
	if tok.kind != tokWord {
		return 0, false
	}
	b, err := position.ParseBody(tok.text)
	if err != nil {
		return 0, false
	}
	return b, true
}
