package astro

import (
	"math"
	"testing"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"unit z", Vec3{0, 0, 1}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{0.5, -1, 2}

	if got := a.Add(b); got != (Vec3{1.5, 1, 5}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{0.5, 3, 1}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale() = %v", got)
	}
}

func TestVec3Longitude(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64 // degrees
	}{
		{"+X axis", Vec3{1, 0, 0}, 0},
		{"+Y axis", Vec3{0, 1, 0}, 90},
		{"-X axis", Vec3{-1, 0, 0}, 180},
		{"-Y axis", Vec3{0, -1, 0}, 270},
		{"45 deg", Vec3{1, 1, 0}, 45},
		{"latitude ignored", Vec3{1, 1, 5}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RadToDeg(tt.v.Longitude())
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Longitude() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Latitude(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"in plane", Vec3{1, 0, 0}, 0},
		{"north pole", Vec3{0, 0, 1}, 90},
		{"45 north", Vec3{1, 0, 1}, 45},
		{"origin", Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RadToDeg(tt.v.Latitude())
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Latitude() = %v, want %v", got, tt.want)
			}
		})
	}
}
