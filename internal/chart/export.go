package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astroclock/internal/astro"
)

// Export is the JSON-serializable representation of a chart. Angles are
// degrees; undefined longitudes are null.
type Export struct {
	JD           float64      `json:"jd"`
	Time         time.Time    `json:"time"`
	Zodiac       string       `json:"zodiac"`
	Heliocentric bool         `json:"heliocentric"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Bodies       []BodyExport `json:"bodies"`
	Ascendant    *float64     `json:"ascendant"`
	Midheaven    *float64     `json:"midheaven"`
	Cusps        []*float64   `json:"cusps"`
}

// BodyExport is a JSON-friendly body position.
type BodyExport struct {
	Body       string   `json:"body"`
	Longitude  *float64 `json:"longitude"`
	Latitude   *float64 `json:"latitude"`
	Distance   *float64 `json:"distance"`
	Position   string   `json:"position,omitempty"`
	Sign       string   `json:"sign,omitempty"`
	House      int      `json:"house,omitempty"`
	Retrograde bool     `json:"retrograde"`
}

// degrees converts radians to degrees, nil for NaN.
func degrees(rad float64) *float64 {
	if math.IsNaN(rad) {
		return nil
	}
	d := astro.RadToDeg(astro.Mod2Pi(rad))
	return &d
}

// signedDegrees converts radians to degrees without wrapping, nil for NaN.
func signedDegrees(rad float64) *float64 {
	if math.IsNaN(rad) {
		return nil
	}
	d := astro.RadToDeg(rad)
	return &d
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// ExportChart converts a chart to its exportable form.
func ExportChart(c *Chart) *Export {
	ctx := c.Context
	export := &Export{
		JD:           c.JD,
		Time:         c.Time,
		Zodiac:       ctx.Zodiac.String(),
		Heliocentric: ctx.Heliocentric,
		Latitude:     ctx.Observer.LatitudeDeg(),
		Longitude:    ctx.Observer.LongitudeEastDeg(),
		Ascendant:    degrees(c.Ascendant),
		Midheaven:    degrees(c.Midheaven),
	}
	for _, cusp := range c.Cusps {
		export.Cusps = append(export.Cusps, degrees(cusp))
	}

	for _, p := range c.Bodies {
		be := BodyExport{
			Body:       p.Body.String(),
			Longitude:  degrees(p.Longitude),
			Latitude:   signedDegrees(p.Latitude),
			Distance:   optional(p.Distance),
			House:      p.House,
			Retrograde: p.Retrograde,
		}
		if p.Defined() {
			be.Position = astro.FormatLongitude(p.Longitude)
			be.Sign = astro.SignNames[p.Sign]
		}
		export.Bodies = append(export.Bodies, be)
	}
	return export
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	retroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// tableWidth is the width of the rule lines.
const tableWidth = 44

// WriteTable writes the chart as a text table. When styled is set the
// title, headers and retrograde markers are colored.
func WriteTable(w io.Writer, c *Chart, styled bool) {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	ctx := c.Context
	frame := "geocentric"
	if ctx.Heliocentric {
		frame = "heliocentric"
	}
	fmt.Fprintln(w, render(titleStyle, fmt.Sprintf("Chart @ %s (JD %.5f)", c.Time.Format(time.RFC3339), c.JD)))
	fmt.Fprintln(w, render(dimStyle, fmt.Sprintf("%s, %s, lat %.4f lng %.4f",
		ctx.Zodiac, frame, ctx.Observer.LatitudeDeg(), ctx.Observer.LongitudeEastDeg())))
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))

	fmt.Fprintln(w, render(headerStyle, fmt.Sprintf("%-12s %-18s %5s %3s", "Body", "Position", "House", "Rx")))
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))

	for _, p := range c.Bodies {
		pos := astro.FormatLongitude(p.Longitude)
		house := "-"
		if p.House > 0 {
			house = fmt.Sprintf("%d", p.House)
		}
		rx := ""
		if p.Retrograde {
			rx = render(retroStyle, "R")
		}
		fmt.Fprintf(w, "%-12s %-18s %5s %3s\n", p.Body, pos, house, rx)
	}

	fmt.Fprintln(w, strings.Repeat("─", tableWidth))
	fmt.Fprintf(w, "%-12s %s\n", "Ascendant", astro.FormatLongitude(c.Ascendant))
	fmt.Fprintf(w, "%-12s %s\n", "Midheaven", astro.FormatLongitude(c.Midheaven))
	for i, cusp := range c.Cusps {
		fmt.Fprintf(w, "%-12s %s\n", fmt.Sprintf("House %d", i+1), astro.FormatLongitude(cusp))
	}
}
