package service

import "errors"

// Validation errors raised by the service layer before any repository call
// is made. Callers should use [errors.Is] to match against these values.
var (
	// ErrInvalidDataProvided is returned when a credential operation
	// receives an empty username, password, or an unknown role.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrMissingRequiredFields is returned when a student record misses
	// one of the required fields (given name, family name, class label,
	// homeroom teacher). The store is never reached in that case.
	ErrMissingRequiredFields = errors.New("missing required student fields")
)
