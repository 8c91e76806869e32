package domain

import "fmt"

// Address is a pickup or destination location.
type Address struct {
	Country        string
	City           string
	Street         string
	BuildingNumber int
	PostalCode     string
}

// String renders the address in a single line.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s %d, %s", a.City, a.Street, a.BuildingNumber, a.Country)
}
