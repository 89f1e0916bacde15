package myerrors

import (
	"errors"
	"net/http"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrDriverNotFound  = errors.New("driver not found")

	ErrDuplicateDriver  = errors.New("driver with this mobile, license or vehicle number already exists")
	ErrDriverReferenced = errors.New("driver still has an active booking")

	ErrInvalidTransition = errors.New("status change is not allowed from the current status")
	ErrDriverUnavailable = errors.New("driver is not available")

	ErrNoCredential       = errors.New("password not set, please contact admin")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrValidation = errors.New("validation failed")
)

// StatusCode maps a domain error to the HTTP status class the boundary
// must report.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrDriverNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateDriver), errors.Is(err, ErrDriverReferenced):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrDriverUnavailable), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoCredential), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
