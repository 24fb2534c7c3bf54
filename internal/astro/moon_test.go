package astro

import (
	"math"
	"testing"
)

func TestMoonLongitude(t *testing.T) {
	tests := []struct {
		name string
		jd   float64
		want float64 // degrees, series value
	}{
		{"J2000", J2000, 223.282111},
		{"2024-01-01", 2460310.5, 156.001109},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RadToDeg(MoonLongitude(tt.jd))
			if math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("MoonLongitude() = %v, want %v", got, tt.want)
			}
		})
	}

	// Almanac value at J2000.0 is about 223.32°.
	if got := RadToDeg(MoonLongitude(J2000)); math.Abs(got-223.32) > 0.25 {
		t.Errorf("MoonLongitude(J2000) = %v, too far from 223.32", got)
	}
}

func TestMoonLongitudeRange(t *testing.T) {
	for jd := MinJD; jd < MaxJD; jd += 7777.7 {
		got := MoonLongitude(jd)
		if got < 0 || got >= TwoPi {
			t.Fatalf("MoonLongitude(%v) = %v, out of range", jd, got)
		}
	}
}

func TestMeanLunarNode(t *testing.T) {
	got := RadToDeg(MeanLunarNode(J2000))
	if math.Abs(got-125.041251) > 1e-5 {
		t.Errorf("MeanLunarNode(J2000) = %v, want 125.041251", got)
	}

	// The node regresses: a month later its longitude is smaller.
	later := MeanLunarNode(J2000 + 30)
	if d := AngleDelta(later, MeanLunarNode(J2000)); d <= 0 || d > DegToRad(2) {
		t.Errorf("node motion over 30 days = %v°, want small regression", RadToDeg(d))
	}
}
