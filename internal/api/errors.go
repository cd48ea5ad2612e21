package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error
// instead of writing a response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to an http.HandlerFunc. A returned error is translated to a
// status code and a safe message, logged with its details redacted, and
// written as the error body. Handlers must not write a response before
// returning a non-nil error.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			HandleAPIError(w, r, err)
		}
	}
}

// HandleAPIError writes the error response for err. Middleware that rejects
// a request before any handler runs uses it too, so every status and message
// comes from the same mapping.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Bad request errors
	case errors.Is(err, store.ErrInvalidID),
		store.IsDuplicateError(err),
		errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, auth.ErrInvalidPayload):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized access"

	case errors.Is(err, domain.ErrForbidden):
		return "forbidden access"

	case errors.Is(err, store.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, store.ErrEmailExists):
		return "User already exists"

	case store.IsDuplicateError(err):
		return "Entity already exists"

	case errors.Is(err, domain.ErrInvalidParameter):
		return "Invalid path parameter"

	case errors.Is(err, domain.ErrInvalidDocument):
		return "Request body must be a JSON object"

	case errors.Is(err, auth.ErrInvalidPayload):
		return "Invalid token payload"

	default:
		return "An unexpected error occurred"
	}
}
