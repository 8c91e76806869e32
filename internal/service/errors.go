package service

import "errors"

var (
	// ErrClientNotFound is returned when a referenced client does not exist.
	ErrClientNotFound = errors.New("client does not exist")

	// ErrDriverNotFound is returned when a referenced driver does not exist.
	ErrDriverNotFound = errors.New("driver does not exist")

	// ErrTransitNotFound is returned when a referenced transit does not exist.
	ErrTransitNotFound = errors.New("transit does not exist")

	// ErrClaimNotFound is returned when a referenced claim does not exist.
	ErrClaimNotFound = errors.New("claim does not exist")

	// ErrCarTypeNotFound is returned when a referenced car type does not exist.
	ErrCarTypeNotFound = errors.New("car type does not exist")

	// ErrEmptyAddress is returned when a transit is created without both addresses.
	ErrEmptyAddress = errors.New("cannot create transit for empty address")

	// ErrAcceptInProgress is returned when another driver's acceptance of the
	// same transit is currently being processed.
	ErrAcceptInProgress = errors.New("transit acceptance already in progress")

	// ErrClaimResolutionInProgress is returned when another claim by the same
	// client is currently being resolved.
	ErrClaimResolutionInProgress = errors.New("claim resolution already in progress")

	// ErrDriverFeeNotDefined is returned when a driver has no fee arrangement.
	ErrDriverFeeNotDefined = errors.New("driver fees not defined")
)
