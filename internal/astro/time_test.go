package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"2024-01-01 00:00 UTC", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
		{"non-UTC zone", time.Date(2000, 1, 1, 7, 0, 0, 0, time.FixedZone("EST", -5*3600)), 2451545.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.time)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("JulianDay() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(1967, 4, 4, 22, 9, 0, 0, time.UTC)
	got := Time(JulianDay(in))
	if d := got.Sub(in); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("Time(JulianDay(%v)) = %v, off by %v", in, got, d)
	}
}

func TestWithinBounds(t *testing.T) {
	tests := []struct {
		jd   float64
		want bool
	}{
		{MinJD, true},
		{MaxJD, true},
		{J2000, true},
		{MinJD - 1, false},
		{MaxJD + 1, false},
		{0, false},
	}

	for _, tt := range tests {
		if got := WithinBounds(tt.jd); got != tt.want {
			t.Errorf("WithinBounds(%v) = %v, want %v", tt.jd, got, tt.want)
		}
	}
}

func TestParseJD(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"2451545", J2000, false},
		{" 2451545.25 ", J2000 + 0.25, false},
		{"2000-01-01T12:00:00Z", J2000, false},
		{"2000-01-01T07:00:00-05:00", J2000, false},
		{"2000-01-01 12:00", J2000, false},
		{"2000-01-01T18:00", J2000 + 0.25, false},
		{"2000-01-01", J2000 - 0.5, false},
		{"NaN", 0, true},
		{"+Inf", 0, true},
		{"yesterday", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJD(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseJD(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseJD(%q) error = %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ParseJD(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
