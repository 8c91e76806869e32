package domain

import (
	"fmt"
	"regexp"
)

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "ACTIVE"
	DriverStatusInactive DriverStatus = "INACTIVE"
)

// DriverType distinguishes candidates from regular drivers.
type DriverType string

const (
	DriverTypeCandidate DriverType = "CANDIDATE"
	DriverTypeRegular   DriverType = "REGULAR"
)

// Driver represents a driver in the system.
type Driver struct {
	ID        string
	FirstName string
	LastName  string
	License   DriverLicense
	Status    DriverStatus
	Type      DriverType
	Occupied  bool
}

var driverLicenseRegexp = regexp.MustCompile(`^[A-Z9]{5}\d{6}[A-Z9]{2}\d[A-Z]{2}$`)

// DriverLicense is a driving licence number. Active drivers must carry a
// validated one; candidates may hold an unvalidated number.
type DriverLicense struct {
	number string
}

// LicenseWithNumber validates and wraps a licence number.
func LicenseWithNumber(number string) (DriverLicense, error) {
	if number == "" || !driverLicenseRegexp.MatchString(number) {
		return DriverLicense{}, fmt.Errorf("%w: illegal license no = %s", ErrNotAcceptable, number)
	}
	return DriverLicense{number: number}, nil
}

// LicenseWithoutValidation wraps a licence number without validating it.
func LicenseWithoutValidation(number string) DriverLicense {
	return DriverLicense{number: number}
}

// AsString returns the raw licence number.
func (l DriverLicense) AsString() string {
	return l.number
}

func (l DriverLicense) String() string {
	return "DriverLicense{" + l.number + "}"
}
