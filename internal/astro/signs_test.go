package astro

import (
	"math"
	"testing"
)

func TestParseSign(t *testing.T) {
	tests := []struct {
		word   string
		want   int
		wantOK bool
	}{
		{"aries", 0, true},
		{"ar", 0, true},
		{"cancer", 3, true},
		{"CA", 3, true},
		{"sagittarius", 8, true},
		{"saggittarius", 8, true},
		{"cp", 9, true},
		{"pisces", 11, true},
		{"ophiuchus", -1, false},
		{"", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := ParseSign(tt.word)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseSign(%q) = %d, %v, want %d, %v", tt.word, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSignOf(t *testing.T) {
	tests := []struct {
		deg  float64
		want int
	}{
		{0, 0},
		{29.99, 0},
		{30.001, 1},
		{95, 3},
		{359.9, 11},
		{-10, 11},
	}

	for _, tt := range tests {
		if got := SignOf(DegToRad(tt.deg)); got != tt.want {
			t.Errorf("SignOf(%v°) = %d, want %d", tt.deg, got, tt.want)
		}
	}
	if got := SignOf(math.NaN()); got != -1 {
		t.Errorf("SignOf(NaN) = %d, want -1", got)
	}
}

func TestFormatLongitude(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, " 0°00' Aries"},
		{132.5, "12°30' Leo"},
		{359.999, " 0°00' Aries"},
		{275.25, " 5°15' Capricorn"},
		{-0.5, "29°30' Pisces"},
		{750, " 0°00' Taurus"},
	}

	for _, tt := range tests {
		if got := FormatLongitude(DegToRad(tt.deg)); got != tt.want {
			t.Errorf("FormatLongitude(%v°) = %q, want %q", tt.deg, got, tt.want)
		}
	}
	if got := FormatLongitude(math.NaN()); got != "-" {
		t.Errorf("FormatLongitude(NaN) = %q, want \"-\"", got)
	}
}
