package domain

import (
	"fmt"
	"math"
)

// Money is an amount in minor units (e.g. cents). The zero value is zero money.
type Money struct {
	value int
}

// MoneyZero is zero money.
var MoneyZero = Money{}

// NewMoney creates money from a minor-unit amount.
func NewMoney(value int) Money {
	return Money{value: value}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{value: m.value + other.value}
}

// Subtract returns the difference of two amounts.
func (m Money) Subtract(other Money) Money {
	return Money{value: m.value - other.value}
}

// Percentage returns the given percentage of the amount, rounded to the
// nearest minor unit.
func (m Money) Percentage(percentage int) Money {
	return Money{value: int(math.Round(float64(m.value*percentage) / 100))}
}

// ToInt returns the minor-unit amount.
func (m Money) ToInt() int {
	return m.value
}

// Equals reports whether two amounts are equal.
func (m Money) Equals(other Money) bool {
	return m.value == other.value
}

// String renders the amount in major units with two decimals.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", float64(m.value)/100)
}
