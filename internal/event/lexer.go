package event

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokNumber
	tokPunct
)

// token is one lexeme. Offsets are byte offsets into the query.
type token struct {
	kind tokenKind
	text string // case-folded for words
	num  int
	off  int
	len  int
}

func (t token) is(word string) bool {
	return t.kind != tokEOF && t.kind != tokNumber && t.text == word
}

// describe renders the token for error messages.
func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return t.text
}

// lexer splits a query into words, integers and single punctuation
// characters, with one token of lookahead. It remembers the position of
// the most recently scanned token for error reporting.
type lexer struct {
	input  string
	pos    int
	peeked *token
	last   token
	fold   cases.Caser
}

func newLexer(input string) *lexer {
	return &lexer{input: input, fold: cases.Fold()}
}

func (l *lexer) scan() token {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}

	tok := token{off: l.pos}
	if l.pos >= len(l.input) {
		l.last = tok
		return tok
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	switch {
	case isDigit(r):
		for l.pos < len(l.input) && isDigit(rune(l.input[l.pos])) {
			l.pos++
		}
		tok.kind = tokNumber
		tok.text = l.input[start:l.pos]
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			n = -1
		}
		tok.num = n
	case unicode.IsLetter(r):
		for l.pos < len(l.input) {
			r, size := utf8.DecodeRuneInString(l.input[l.pos:])
			if !unicode.IsLetter(r) {
				break
			}
			l.pos += size
		}
		tok.kind = tokWord
		tok.text = l.fold.String(l.input[start:l.pos])
		if tok.text == "north" || tok.text == "south" {
			l.joinNode(&tok)
		}
	default:
		l.pos += size
		tok.kind = tokPunct
		tok.text = l.input[start:l.pos]
	}
	tok.len = l.pos - start
	l.last = tok
	return tok
}

// joinNode extends a "north" or "south" token over a following "node",
// so the two-word node names reach the body lookup as one word.
func (l *lexer) joinNode(tok *token) {
	pos := l.pos
	for pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	if pos == l.pos {
		return
	}
	start := pos
	for pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[pos:])
		if !unicode.IsLetter(r) {
			break
		}
		pos += size
	}
	if l.fold.String(l.input[start:pos]) != "node" {
		return
	}
	l.pos = pos
	tok.text += " node"
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// next consumes and returns the next token.
func (l *lexer) next() token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scan()
}

// peek returns the next token without consuming it.
func (l *lexer) peek() token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}
