package domain

import (
	"errors"
	"math"
	"testing"
)

func TestDistanceConversions(t *testing.T) {
	d := OfKm(10)

	if got := d.ToKmInNumber(); got != 10 {
		t.Errorf("expected 10 km, got %v", got)
	}
	if got := d.ToMeters(); got != 10000 {
		t.Errorf("expected 10000 m, got %d", got)
	}
	if got := d.ToMiles(); math.Abs(got-6.21371192) > 1e-6 {
		t.Errorf("expected ~6.21371192 mi, got %v", got)
	}
}

func TestDistancePrintIn(t *testing.T) {
	cases := []struct {
		km   float64
		unit string
		want string
	}{
		{10, "km", "10 km"},
		{10, "miles", "6.214 mi"},
		{10, "m", "10,000 m"},
		{2000, "km", "2,000 km"},
		{1.5, "km", "1.500 km"},
		{0, "km", "0 km"},
	}

	for _, tc := range cases {
		got, err := OfKm(tc.km).PrintIn(tc.unit)
		if err != nil {
			t.Fatalf("PrintIn(%q) failed: %v", tc.unit, err)
		}
		if got != tc.want {
			t.Errorf("OfKm(%v).PrintIn(%q) = %q, want %q", tc.km, tc.unit, got, tc.want)
		}
	}
}

func TestDistancePrintInInvalidUnit(t *testing.T) {
	_, err := OfKm(10).PrintIn("furlongs")
	if !errors.Is(err, ErrNotAcceptable) {
		t.Errorf("expected ErrNotAcceptable, got %v", err)
	}
}

func TestDistanceEquals(t *testing.T) {
	if !OfKm(5).Equals(OfKm(5)) {
		t.Error("expected equal distances to be equal")
	}
	if OfKm(5).Equals(OfKm(5.1)) {
		t.Error("expected different distances to differ")
	}
	if !DistanceZero.Equals(OfKm(0)) {
		t.Error("expected zero distance to equal OfKm(0)")
	}
}
