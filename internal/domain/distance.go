package domain

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MilesToKilometersRatio is the exact statute-mile conversion factor.
const MilesToKilometersRatio = 1.609344

// Distance is a non-negative kilometer magnitude.
type Distance struct {
	km float64
}

// DistanceZero is zero distance.
var DistanceZero = Distance{}

var distancePrinter = message.NewPrinter(language.English)

// OfKm creates a distance from kilometers.
func OfKm(km float64) Distance {
	return Distance{km: km}
}

// ToKmInNumber returns the distance in kilometers.
func (d Distance) ToKmInNumber() float64 {
	return d.km
}

// ToMiles returns the distance in statute miles.
func (d Distance) ToMiles() float64 {
	return d.km / MilesToKilometersRatio
}

// ToMeters returns the distance in meters, rounded to the nearest meter.
func (d Distance) ToMeters() int64 {
	return int64(math.Round(d.km * 1000))
}

// PrintIn formats the distance in the given unit with en-US grouping.
// Whole values render without decimals, fractional ones with three.
// Unknown units fail with ErrNotAcceptable.
func (d Distance) PrintIn(unit string) (string, error) {
	switch unit {
	case "km":
		return formatMagnitude(d.km) + " km", nil
	case "miles":
		return formatMagnitude(d.ToMiles()) + " mi", nil
	case "m":
		return distancePrinter.Sprintf("%d", d.ToMeters()) + " m", nil
	}
	return "", fmt.Errorf("%w: invalid unit %s", ErrNotAcceptable, unit)
}

// Equals reports whether two distances are equal.
func (d Distance) Equals(other Distance) bool {
	return d.km == other.km
}

func formatMagnitude(v float64) string {
	if v == math.Ceil(v) {
		return distancePrinter.Sprintf("%d", int64(math.Round(v)))
	}
	return distancePrinter.Sprintf("%.3f", v)
}
