// Package geocode resolves free-text addresses to geographic
// coordinates via an external geocoding HTTP API. Failures surface as
// *Error values carrying the HTTP status the API layer should respond
// with; they are propagated to clients unchanged rather than collapsed
// into generic internal errors.
package geocode

import (
	"context"
	"fmt"

	"github.com/placeshare/places-api/internal/domain"
)

// Error is a typed geocoding failure. StatusCode is the HTTP status the
// transport layer should use; Message is safe to show to clients.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("geocoding failed (%d): %s", e.StatusCode, e.Message)
}

// Geocoder maps a free-text address to coordinates.
type Geocoder interface {
	// Resolve returns the coordinates for the given address. When the
	// address cannot be resolved or the upstream service fails, the
	// returned error is a *Error.
	Resolve(ctx context.Context, address string) (domain.Location, error)
}
