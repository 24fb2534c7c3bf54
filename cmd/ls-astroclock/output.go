package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/event"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// isTerminal reports whether w is a terminal, so output may be styled.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func render(styled bool, s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

// parseQuery parses a query, printing the query with the offending token
// underlined when it is malformed.
func parseQuery(w io.Writer, q string) (*event.Event, error) {
	ev, err := event.Parse(q)
	if err == nil {
		return ev, nil
	}
	var perr *event.ParseError
	if errors.As(err, &perr) {
		styled := isTerminal(w)
		fmt.Fprintf(w, "  %s\n", q)
		fmt.Fprintf(w, "  %s\n", render(styled, errorStyle, perr.Caret()))
	}
	return nil, fmt.Errorf("parse %q: %w", q, err)
}

func formatTime(jd float64) string {
	return astro.Time(jd).Format(time.DateTime)
}
