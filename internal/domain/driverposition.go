package domain

import "time"

// DriverPosition is a single GPS fix reported by a driver.
type DriverPosition struct {
	ID        string
	DriverID  string
	Latitude  float64
	Longitude float64
	SeenAt    time.Time
}

// DriverAvgPosition is a driver's position averaged over a trailing window.
type DriverAvgPosition struct {
	DriverID  string
	Latitude  float64
	Longitude float64
}

// DriverSession is a driver's login period in a concrete car.
type DriverSession struct {
	ID           string
	DriverID     string
	CarClass     CarClass
	PlatesNumber string
	CarBrand     string
	LoggedAt     time.Time
	LoggedOutAt  time.Time // zero while the session is open
}
