package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/position"
	"github.com/litescript/ls-astroclock/internal/version"
)

// run executes the root command with an empty config directory.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if want := "ls-astroclock v" + version.Version + "\n"; out != want {
		t.Errorf("version output = %q, want %q", out, want)
	}
}

func TestPositionsJSON(t *testing.T) {
	out, _, err := run(t, "positions", "--jd", "2451545", "--json")
	if err != nil {
		t.Fatalf("positions: %v", err)
	}

	var got struct {
		JD     float64 `json:"jd"`
		Zodiac string  `json:"zodiac"`
		Bodies []struct {
			Body string `json:"body"`
			Sign string `json:"sign"`
		} `json:"bodies"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.JD != 2451545 {
		t.Errorf("jd = %v, want 2451545", got.JD)
	}
	if got.Zodiac != "tropical" {
		t.Errorf("zodiac = %q, want tropical", got.Zodiac)
	}
	if len(got.Bodies) != len(position.ChartBodies()) {
		t.Fatalf("got %d bodies, want %d", len(got.Bodies), len(position.ChartBodies()))
	}
	if got.Bodies[0].Body != "Sun" || got.Bodies[0].Sign != "Capricorn" {
		t.Errorf("first body = %+v, want Sun in Capricorn", got.Bodies[0])
	}
}

func TestPositionsTable(t *testing.T) {
	out, _, err := run(t, "positions", "--at", "2000-01-01 12:00", "--zodiac", "lahiri", "--helio")
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	for _, want := range []string{"lahiri, heliocentric", "Earth", "Ascendant", "House 12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output to a buffer should not be styled")
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("zodiac = \"raman\"\nlatitude = 51.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "positions", "--jd", "2451545", "--config", path)
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if !strings.Contains(out, "raman, geocentric, lat 51.5000") {
		t.Errorf("config not applied:\n%s", out)
	}

	out, _, err = run(t, "positions", "--jd", "2451545", "--config", path, "--zodiac", "tropical", "--lat", "10")
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if !strings.Contains(out, "tropical, geocentric, lat 10.0000") {
		t.Errorf("flags did not override config:\n%s", out)
	}
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing config", []string{"positions", "--config", "/nonexistent/config.toml"}},
		{"latitude", []string{"positions", "--lat", "100"}},
		{"zodiac", []string{"positions", "--zodiac", "chinese"}},
		{"at and jd", []string{"positions", "--at", "2000-01-01", "--jd", "2451545"}},
		{"jd out of range", []string{"positions", "--jd", "0"}},
		{"bad time", []string{"dasa", "--at", "yesterday"}},
		{"dasa depth", []string{"dasa", "--jd", "2451545", "--depth", "9"}},
		{"search count", []string{"search", "moon in leo", "--count", "0"}},
		{"frequency missing to", []string{"frequency", "sun in aries", "--from", "2451545"}},
		{"frequency reversed", []string{"frequency", "sun in aries", "--from", "2451545", "--to", "2451500"}},
		{"convert missing file", []string{"convert", "/nonexistent/export.txt", "mars", "out.lng"}},
		{"fetch unknown body", []string{"fetch", "vulcan", "out.lng", "--start", "2000-01-01", "--stop", "2000-02-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestSearchCommand(t *testing.T) {
	out, _, err := run(t, "search", "moon", "in", "leo", "--from", "2451545", "--count", "2")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "2000-") || !strings.Contains(line, " to ") || !strings.Contains(line, "peak ") {
			t.Errorf("unexpected line %q", line)
		}
	}
	if lines[0] >= lines[1] {
		t.Errorf("occurrences out of order: %q then %q", lines[0], lines[1])
	}
}

func TestSearchParseError(t *testing.T) {
	_, errOut, err := run(t, "search", "venus frobnicate moon")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(errOut, "  venus frobnicate moon\n") {
		t.Errorf("query not echoed:\n%s", errOut)
	}
	if !strings.Contains(errOut, "        ^^^^^^^^^^\n") {
		t.Errorf("caret not under offending token:\n%s", errOut)
	}
}

func TestFrequencyCommand(t *testing.T) {
	out, _, err := run(t, "frequency", "sun in aries", "--from", "2451545", "--to", "2455197.5", "--samples", "2000")
	if err != nil {
		t.Fatalf("frequency: %v", err)
	}
	if !strings.HasPrefix(out, "sun in aries: 0.0") {
		t.Errorf("output = %q", out)
	}
}

func TestDasaCommand(t *testing.T) {
	out, _, err := run(t, "dasa", "--jd", "2451545", "--depth", "1")
	if err != nil {
		t.Fatalf("dasa: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], ": 2000/01/01 - ") {
		t.Errorf("first period should start at birth: %q", lines[0])
	}
}

const observerExport = `$$SOE
2451544.500000000, , ,1.849603226180,  12.8601420,  327.5742900,  -1.0696030,
2451545.500000000, , ,1.857001431270,  12.7587035,  328.2997543,  -1.0554560,
2451546.500000000, , ,1.864369219660,  12.6554100,  329.0244700,  -1.0412410,
2451547.500000000, , ,1.871700000000,  12.5500000,  329.7480000,  -1.0270000,
$$EOE
`

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mars.txt")
	out := filepath.Join(dir, "mars.lng")
	if err := os.WriteFile(in, []byte(observerExport), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "convert", in, "mars", out); err != nil {
		t.Fatalf("convert: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	seg, err := ephem.DecodeLongitudeTable(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if seg.Name != "mars" || seg.T0 != 2451544.5 || seg.DT != 1 {
		t.Errorf("decoded %q T0 %v DT %v", seg.Name, seg.T0, seg.DT)
	}

	// A directory holding the written table loads.
	posOut, _, err := run(t, "positions", "--jd", "2451545.5", "--ephemeris", dir, "--json")
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if !strings.Contains(posOut, "Aquarius") {
		t.Errorf("Mars should be in Aquarius:\n%s", posOut)
	}
}
