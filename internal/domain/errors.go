package domain

import "errors"

var (
	// ErrNotAcceptable is returned when a state transition violates a
	// lifecycle or business guard. The caller sees it; nothing retries it.
	ErrNotAcceptable = errors.New("not acceptable")

	// ErrForbidden is returned when an operation is structurally impossible
	// given the current status, e.g. estimating a completed transit.
	ErrForbidden = errors.New("forbidden")
)
