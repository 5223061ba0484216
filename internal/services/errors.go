// Package services composes repositories, geometry and geocoding into the
// operations the HTTP layer exposes.
package services

import "errors"

var (
	ErrInvalidName        = errors.New("name must not be empty")
	ErrInvalidPoint       = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrOutsideServiceArea = errors.New("address is outside every active service area")
	ErrInvalidStatus      = errors.New("unknown quote status")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a rejected field on a submitted form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
