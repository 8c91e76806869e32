package domain

import "fmt"

// CarClass is a closed set of bookable car categories.
type CarClass string

const (
	CarClassEco     CarClass = "ECO"
	CarClassRegular CarClass = "REGULAR"
	CarClassVan     CarClass = "VAN"
	CarClassPremium CarClass = "PREMIUM"
)

// CarStatus is the activation state of a car type.
type CarStatus string

const (
	CarStatusActive   CarStatus = "ACTIVE"
	CarStatusInactive CarStatus = "INACTIVE"
)

// CarType tracks a fleet category: how many cars are registered and
// whether the category is open for dispatch.
type CarType struct {
	ID                         string
	CarClass                   CarClass
	Description                string
	Status                     CarStatus
	CarsCounter                int
	MinNoOfCarsToActivateClass int
}

// NewCarType creates an inactive car type with an empty fleet.
func NewCarType(id string, carClass CarClass, description string, minNoOfCars int) *CarType {
	return &CarType{
		ID:                         id,
		CarClass:                   carClass,
		Description:                description,
		Status:                     CarStatusInactive,
		MinNoOfCarsToActivateClass: minNoOfCars,
	}
}

// RegisterCar adds a car to the fleet counter.
func (c *CarType) RegisterCar() {
	c.CarsCounter++
}

// UnregisterCar removes a car from the fleet counter.
func (c *CarType) UnregisterCar() error {
	if c.CarsCounter == 0 {
		return fmt.Errorf("%w: no cars registered for class %s", ErrNotAcceptable, c.CarClass)
	}
	c.CarsCounter--
	return nil
}

// Activate opens the class for dispatch. The fleet must meet the minimum.
func (c *CarType) Activate() error {
	if c.CarsCounter < c.MinNoOfCarsToActivateClass {
		return fmt.Errorf("%w: cannot activate car class %s when less than %d cars registered",
			ErrNotAcceptable, c.CarClass, c.MinNoOfCarsToActivateClass)
	}
	c.Status = CarStatusActive
	return nil
}

// Deactivate closes the class for dispatch.
func (c *CarType) Deactivate() {
	c.Status = CarStatusInactive
}
