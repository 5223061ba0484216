// Package geocoding resolves free-text addresses to coordinates.
//
// A lookup has three outcomes: a Result, ErrNotFound when the provider has no
// candidate for the address, or a *ServiceError when the provider could not be
// asked at all. Callers must not treat the last two the same way: a miss is a
// normal answer, a service error is worth surfacing or retrying.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the address resolved to no candidate.
	ErrNotFound = errors.New("geocode: address not found")

	// ErrServiceUnavailable is matched by every *ServiceError.
	ErrServiceUnavailable = errors.New("geocode: service unavailable")

	// ErrEmptyAddress is returned before any provider is contacted.
	ErrEmptyAddress = errors.New("geocode: empty address")
)

// Result is a single resolved coordinate. It is never persisted.
type Result struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// Geocoder is implemented by every provider and decorator in this package.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// ServiceError reports that the provider was unreachable or misbehaved.
type ServiceError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("geocode: %s returned HTTP %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("geocode: %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

// Timeout reports whether the failure was the caller's deadline expiring.
func (e *ServiceError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// NormalizeAddress trims and collapses whitespace and lower-cases the address
// so equivalent inputs share a cache entry.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
