// Package horizons converts JPL Horizons text exports into ephemeris
// tables and fetches those exports from the Horizons API.
package horizons

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/logging"
	"github.com/litescript/ls-astroclock/internal/orbit"
)

const (
	startMarker = "$$SOE"
	endMarker   = "$$EOE"

	// observerFields is the column count of an observer export row:
	// JD, two presence flags, delta, deldot, ecliptic longitude, latitude.
	observerFields = 7

	// elementLines is the number of "NAME = value" lines after each JD line.
	elementLines = 4
)

var (
	// ErrNoData is returned when an export has no $$SOE data section.
	ErrNoData = errors.New("horizons export has no data section")

	elementJD   = regexp.MustCompile(`^([0-9.]+) =`)
	elementVars = regexp.MustCompile(`\s([A-Z]+)\s?=\s+([0-9.E+-]+)`)
)

// dataLines scans to the start marker and returns a scanner positioned on
// the first data line.
func dataLines(r io.Reader) (*bufio.Scanner, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == startMarker {
			return sc, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoData
}

func isEnd(line string) bool {
	return strings.TrimSpace(line) == endMarker
}

// ParseObserver reads an observer export (CSV, JD calendar format) and
// returns a longitude segment. T0 is the first JD, DT the spacing of the
// first two rows and T1 the last JD. Rows with the wrong number of columns
// are logged and skipped.
func ParseObserver(r io.Reader, name string, log *logging.Logger) (ephem.Segment, error) {
	if log == nil {
		log = logging.Discard()
	}
	sc, err := dataLines(r)
	if err != nil {
		return ephem.Segment{}, err
	}

	var (
		t0, dt, t1 float64
		samples    []float32
		lineNo     int
	)
	for sc.Scan() {
		line := sc.Text()
		lineNo++
		if isEnd(line) {
			break
		}
		parts := splitCSV(line)
		if len(parts) != observerFields {
			log.Warn("skipping observer row", "line", lineNo, "fields", len(parts))
			continue
		}
		jd, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return ephem.Segment{}, fmt.Errorf("row %d: julian day: %w", lineNo, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
		if err != nil {
			return ephem.Segment{}, fmt.Errorf("row %d: longitude: %w", lineNo, err)
		}

		switch len(samples) {
		case 0:
			t0 = jd
		case 1:
			dt = jd - t0
		}
		t1 = jd
		samples = append(samples, float32(lng))
	}
	if err := sc.Err(); err != nil {
		return ephem.Segment{}, err
	}
	if len(samples) < 2 {
		return ephem.Segment{}, fmt.Errorf("observer export for %s: need at least two rows, got %d", name, len(samples))
	}

	seg := ephem.NewLongitudeSegment(name, t0, dt, samples)
	seg.T1 = t1
	return seg, nil
}

// splitCSV splits a row on commas and drops trailing empty fields, so a
// row ending in a comma has the same field count as one without.
func splitCSV(line string) []string {
	parts := strings.Split(line, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ParseElements reads an osculating element export. Each record is a line
// beginning "<JD> =" followed by four lines of "NAME = value" pairs. Angles
// are converted to radians; the mean motion N (degrees per day) becomes a
// mean longitude rate per Julian century.
func ParseElements(r io.Reader, name string) (ephem.Segment, error) {
	sc, err := dataLines(r)
	if err != nil {
		return ephem.Segment{}, err
	}

	var records []orbit.Elements
	for sc.Scan() {
		line := sc.Text()
		if isEnd(line) {
			break
		}
		m := elementJD.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		jd, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return ephem.Segment{}, fmt.Errorf("record %d: julian day: %w", len(records), err)
		}

		vars := make(map[string]float64)
		for range elementLines {
			if !sc.Scan() {
				return ephem.Segment{}, fmt.Errorf("record at JD %v: %w", jd, io.ErrUnexpectedEOF)
			}
			for _, kv := range elementVars.FindAllStringSubmatch(sc.Text(), 3) {
				v, err := strconv.ParseFloat(kv[2], 64)
				if err != nil {
					return ephem.Segment{}, fmt.Errorf("record at JD %v: %s: %w", jd, kv[1], err)
				}
				vars[kv[1]] = v
			}
		}

		el, err := elementsFromVars(jd, vars)
		if err != nil {
			return ephem.Segment{}, err
		}
		records = append(records, el)
	}
	if err := sc.Err(); err != nil {
		return ephem.Segment{}, err
	}
	return ephem.NewElementSegment(name, records)
}

func elementsFromVars(jd float64, vars map[string]float64) (orbit.Elements, error) {
	for _, k := range []string{"A", "EC", "IN", "OM", "W", "MA", "N"} {
		if _, ok := vars[k]; !ok {
			return orbit.Elements{}, fmt.Errorf("record at JD %v: missing %s", jd, k)
		}
	}
	w, om := vars["W"], vars["OM"]
	return orbit.Elements{
		A:        vars["A"],
		E:        vars["EC"],
		Peri:     astro.Mod2Pi(astro.DegToRad(w + om)),
		Node:     astro.Mod2Pi(astro.DegToRad(om)),
		Incl:     astro.DegToRad(vars["IN"]),
		Lng:      astro.Mod2Pi(astro.DegToRad(vars["MA"] + w + om)),
		DLng:     astro.DegToRad(vars["N"]) * astro.DaysPerCentury,
		RefFrame: jd,
	}, nil
}
