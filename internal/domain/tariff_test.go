package domain

import (
	"testing"
	"time"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestTariffOfTime(t *testing.T) {
	cases := []struct {
		name string
		when time.Time
		want string
	}{
		{"regular weekday", at(2022, time.April, 5, 10), "Standard"},
		{"friday before evening", at(2022, time.April, 8, 12), "Standard"},
		{"friday evening", at(2022, time.April, 8, 18), "Weekend+"},
		{"saturday early morning", at(2022, time.April, 9, 5), "Weekend+"},
		{"saturday daytime", at(2022, time.April, 9, 12), "Weekend"},
		{"saturday evening", at(2022, time.April, 9, 23), "Weekend+"},
		{"sunday night", at(2022, time.April, 10, 3), "Weekend+"},
		{"sunday daytime", at(2022, time.April, 10, 11), "Weekend"},
		{"new year's eve", at(2021, time.December, 31, 8), "Sylwester"},
		{"new year's eve midnight", at(2021, time.December, 31, 23), "Sylwester"},
		{"january 1st before dawn", at(2022, time.January, 1, 5), "Sylwester"},
		{"january 1st morning", at(2022, time.January, 1, 6), "Weekend"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TariffOfTime(tc.when); got.Name != tc.want {
				t.Errorf("TariffOfTime(%v).Name = %q, want %q", tc.when, got.Name, tc.want)
			}
		})
	}
}

func TestTariffCalculateCost(t *testing.T) {
	distance := OfKm(20)

	cases := []struct {
		name string
		when time.Time
		want int
	}{
		{"standard", at(2022, time.April, 5, 10), 2900},
		{"weekend", at(2022, time.April, 9, 12), 3800},
		{"weekend plus", at(2022, time.April, 8, 18), 6000},
		{"sylwester", at(2021, time.December, 31, 20), 8100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tariff := TariffOfTime(tc.when)
			if got := tariff.CalculateCost(distance).ToInt(); got != tc.want {
				t.Errorf("%s tariff cost for 20 km = %d, want %d", tariff.Name, got, tc.want)
			}
		})
	}
}

func TestTariffCalculateCostFractionalDistance(t *testing.T) {
	tariff := TariffOfTime(at(2022, time.April, 5, 10))

	// 2.5 km at 1.0/km plus base fee 9 is 11.50.
	if got := tariff.CalculateCost(OfKm(2.5)).ToInt(); got != 1150 {
		t.Errorf("expected 1150, got %d", got)
	}

	// Sub-cent results round to the nearest minor unit.
	if got := tariff.CalculateCost(OfKm(0.333)).ToInt(); got != 933 {
		t.Errorf("expected 933, got %d", got)
	}
}

func TestTariffZeroDistanceChargesBaseFee(t *testing.T) {
	tariff := TariffOfTime(at(2022, time.April, 5, 10))
	if got := tariff.CalculateCost(DistanceZero).ToInt(); got != 900 {
		t.Errorf("expected 900, got %d", got)
	}
}
