package geo

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestHaversineMiles_IdenticalPoint(t *testing.T) {
	d, err := HaversineMiles(ptr(30.27), ptr(-97.74), ptr(30.27), ptr(-97.74))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || math.Abs(*d) > 1e-9 {
		t.Fatalf("expected 0 distance, got %v", d)
	}
}

func TestHaversineMiles_Symmetric(t *testing.T) {
	points := [][2]float64{
		{30.27, -97.74},
		{29.76, -95.37},
		{40.71, -74.00},
		{-33.87, 151.21},
		{89.9, 179.9},
	}

	for _, a := range points {
		for _, b := range points {
			ab, _ := HaversineMiles(ptr(a[0]), ptr(a[1]), ptr(b[0]), ptr(b[1]))
			ba, _ := HaversineMiles(ptr(b[0]), ptr(b[1]), ptr(a[0]), ptr(a[1]))
			if math.Abs(*ab-*ba) > 1e-9 {
				t.Errorf("asymmetric distance %v -> %v: %f vs %f", a, b, *ab, *ba)
			}
		}
	}
}

func TestHaversineMiles_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		want      float64
		tolerance float64
	}{
		{name: "Austin to Houston", lat1: 30.27, lng1: -97.74, lat2: 29.76, lng2: -95.37, want: 146, tolerance: 5},
		{name: "New York to Los Angeles", lat1: 40.71, lng1: -74.01, lat2: 34.05, lng2: -118.24, want: 2445, tolerance: 15},
		{name: "one degree of latitude", lat1: 0, lng1: 0, lat2: 1, lng2: 0, want: 69.1, tolerance: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := HaversineMiles(ptr(tt.lat1), ptr(tt.lng1), ptr(tt.lat2), ptr(tt.lng2))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(*d-tt.want) > tt.tolerance {
				t.Errorf("distance = %f, want %f ± %f", *d, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineMiles_MissingCoordinate(t *testing.T) {
	d, err := HaversineMiles(ptr(30.27), nil, ptr(29.76), ptr(-95.37))
	if err != nil {
		t.Fatalf("missing data must not error: %v", err)
	}
	if d != nil {
		t.Errorf("expected nil distance, got %f", *d)
	}
}

func TestHaversineMiles_InvalidNumber(t *testing.T) {
	if _, err := HaversineMiles(ptr(math.NaN()), ptr(0), ptr(0), ptr(0)); err == nil {
		t.Error("expected error for NaN input")
	}
	if _, err := HaversineMiles(ptr(0), ptr(math.Inf(1)), ptr(0), ptr(0)); err == nil {
		t.Error("expected error for infinite input")
	}
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.01, 0, false},
		{0, -180.5, false},
		{math.NaN(), 0, false},
	}
	for _, tt := range tests {
		if got := ValidCoordinates(tt.lat, tt.lng); got != tt.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
		}
	}
}
