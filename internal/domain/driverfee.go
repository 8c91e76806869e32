package domain

// FeeType determines how a driver's cut of a transit price is computed.
type FeeType string

const (
	FeeTypeFlat       FeeType = "FLAT"
	FeeTypePercentage FeeType = "PERCENTAGE"
)

// DriverFee is the fee arrangement for a single driver.
type DriverFee struct {
	ID       string
	DriverID string
	FeeType  FeeType
	Amount   int
	Min      Money
}

// CalculateFee computes the driver's fee for a transit price, floored at
// the configured minimum.
func (f DriverFee) CalculateFee(transitPrice Money) Money {
	var fee Money
	if f.FeeType == FeeTypeFlat {
		fee = transitPrice.Subtract(NewMoney(f.Amount))
	} else {
		fee = transitPrice.Percentage(f.Amount)
	}
	if fee.ToInt() < f.Min.ToInt() {
		return f.Min
	}
	return fee
}
