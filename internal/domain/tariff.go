package domain

import (
	"math"
	"time"
)

const baseFee = 8

// Tariff is a rate snapshot resolved from a point in time.
type Tariff struct {
	KmRate  float64
	Name    string
	BaseFee int
}

// TariffOfTime resolves the tariff in force at the given time.
// New Year's Eve (the last day of the year, or January 1st before 06:00)
// takes precedence over the weekday rules.
func TariffOfTime(t time.Time) Tariff {
	if isNewYearsEve(t) {
		return Tariff{KmRate: 3.5, Name: "Sylwester", BaseFee: baseFee + 3}
	}

	switch t.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return Tariff{KmRate: 1.0, Name: "Standard", BaseFee: baseFee + 1}
	case time.Friday:
		if t.Hour() < 17 {
			return Tariff{KmRate: 1.0, Name: "Standard", BaseFee: baseFee + 1}
		}
		return Tariff{KmRate: 2.5, Name: "Weekend+", BaseFee: baseFee + 2}
	case time.Saturday:
		if t.Hour() < 6 || t.Hour() >= 17 {
			return Tariff{KmRate: 2.5, Name: "Weekend+", BaseFee: baseFee + 2}
		}
		return Tariff{KmRate: 1.5, Name: "Weekend", BaseFee: baseFee}
	case time.Sunday:
		if t.Hour() < 6 {
			return Tariff{KmRate: 2.5, Name: "Weekend+", BaseFee: baseFee + 2}
		}
		return Tariff{KmRate: 1.5, Name: "Weekend", BaseFee: baseFee}
	}

	// Every weekday is covered above; reaching this is a logic defect.
	panic("tariff not found for " + t.String())
}

func isNewYearsEve(t time.Time) bool {
	if t.Month() == time.December && t.Day() == 31 {
		return true
	}
	return t.Month() == time.January && t.Day() == 1 && t.Hour() < 6
}

// CalculateCost prices a distance under this tariff. The cost is rounded
// to two decimals before conversion to minor units.
func (tf Tariff) CalculateCost(d Distance) Money {
	cost := d.ToKmInNumber()*tf.KmRate + float64(tf.BaseFee)
	cost = math.Round(cost*100) / 100
	return NewMoney(int(math.Round(cost * 100)))
}
