package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidDocument is returned when a request body is not a JSON object.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidParameter is returned when a path parameter cannot be decoded.
	ErrInvalidParameter = errors.New("invalid path parameter")

	// ErrUnauthorized is returned when a caller has not authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated caller acts on a
	// resource owned by another identity.
	ErrForbidden = errors.New("forbidden")
)
