package chart

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/position"
)

func eugene() position.Context {
	return position.Context{Observer: position.ObserverFromDegrees(44.0521, -123.0856)}
}

func TestCompute(t *testing.T) {
	view := position.NewService(nil).View(eugene())
	c := Compute(view, astro.J2000)

	if len(c.Bodies) != len(position.ChartBodies()) {
		t.Fatalf("len(Bodies) = %d, want %d", len(c.Bodies), len(position.ChartBodies()))
	}
	if _, ok := c.Position(position.Earth); ok {
		t.Error("geocentric chart lists the Earth")
	}
	if !c.Time.Equal(astro.Time(astro.J2000)) {
		t.Errorf("Time = %v", c.Time)
	}

	for _, p := range c.Bodies {
		if !p.Defined() {
			continue
		}
		if want := view.Longitude(p.Body, astro.J2000); p.Longitude != want {
			t.Errorf("%v longitude = %v, want %v", p.Body, p.Longitude, want)
		}
		if p.Sign != astro.SignOf(p.Longitude) {
			t.Errorf("%v sign = %d, want %d", p.Body, p.Sign, astro.SignOf(p.Longitude))
		}
		if p.House < 1 || p.House > 12 {
			t.Errorf("%v house = %d, want 1..12", p.Body, p.House)
		}
	}

	sun, _ := c.Position(position.Sun)
	if !sun.Defined() || sun.Sign != 9 {
		t.Errorf("Sun = %+v, want defined in Capricorn", sun)
	}
	if sun.Retrograde {
		t.Error("Sun is retrograde")
	}
	node, _ := c.Position(position.NorthNode)
	if !node.Retrograde {
		t.Error("mean node is not retrograde")
	}

	if c.Cusps[0] != c.Ascendant || c.Cusps[9] != c.Midheaven {
		t.Errorf("cusps 1 and 10 = %v, %v; want %v, %v", c.Cusps[0], c.Cusps[9], c.Ascendant, c.Midheaven)
	}
}

func TestCompute_Heliocentric(t *testing.T) {
	ctx := eugene()
	ctx.Heliocentric = true
	c := Compute(position.NewService(nil).View(ctx), astro.J2000)

	earth, ok := c.Position(position.Earth)
	if !ok || !earth.Defined() {
		t.Fatalf("Earth = %+v, %v; want defined", earth, ok)
	}
	sun, _ := c.Position(position.Sun)
	if sun.Defined() || sun.Sign != -1 || sun.House != 0 {
		t.Errorf("Sun = %+v, want undefined", sun)
	}
}

func TestExportChart(t *testing.T) {
	ctx := eugene()
	ctx.Heliocentric = true
	ctx.Zodiac = astro.ZodiacLahiri
	export := ExportChart(Compute(position.NewService(nil).View(ctx), astro.J2000))

	if export.Zodiac != "lahiri" || !export.Heliocentric {
		t.Errorf("Zodiac, Heliocentric = %q, %v", export.Zodiac, export.Heliocentric)
	}
	if math.Abs(export.Latitude-44.0521) > 1e-9 || math.Abs(export.Longitude+123.0856) > 1e-9 {
		t.Errorf("Latitude, Longitude = %v, %v", export.Latitude, export.Longitude)
	}
	if len(export.Cusps) != 12 {
		t.Errorf("len(Cusps) = %d, want 12", len(export.Cusps))
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded struct {
		Bodies []map[string]any `json:"bodies"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, b := range decoded.Bodies {
		switch b["body"] {
		case "Sun":
			if b["longitude"] != nil {
				t.Errorf("heliocentric Sun longitude = %v, want null", b["longitude"])
			}
			if _, ok := b["sign"]; ok {
				t.Error("heliocentric Sun has a sign")
			}
			if b["latitude"] != nil || b["distance"] != nil {
				t.Errorf("heliocentric Sun latitude, distance = %v, %v; want null", b["latitude"], b["distance"])
			}
		case "Mars":
			lng, ok := b["longitude"].(float64)
			if !ok || lng < 0 || lng >= 360 {
				t.Errorf("Mars longitude = %v, want degrees", b["longitude"])
			}
			if b["position"] == "" || b["sign"] == "" {
				t.Errorf("Mars position, sign = %v, %v", b["position"], b["sign"])
			}
			if lat, ok := b["latitude"].(float64); !ok || math.Abs(lat) > 5 {
				t.Errorf("Mars latitude = %v, want degrees near the ecliptic", b["latitude"])
			}
			if dist, ok := b["distance"].(float64); !ok || dist < 1.37 || dist > 1.68 {
				t.Errorf("Mars distance = %v, want AU", b["distance"])
			}
		}
	}
}

func TestWriteTable(t *testing.T) {
	c := Compute(position.NewService(nil).View(eugene()), astro.J2000)

	var buf bytes.Buffer
	WriteTable(&buf, c, false)
	out := buf.String()

	for _, want := range []string{"Chart @ 2000-01-01T", "tropical, geocentric", "Sun", "North Node", "Ascendant", "Midheaven", "House 12"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("unstyled table contains escape codes")
	}

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "North Node") && !strings.HasSuffix(strings.TrimSpace(line), "R") {
			t.Errorf("node row not marked retrograde: %q", line)
		}
		if strings.HasPrefix(line, "Sun ") && strings.HasSuffix(strings.TrimSpace(line), "R") {
			t.Errorf("Sun row marked retrograde: %q", line)
		}
	}
}
