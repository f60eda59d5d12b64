package service

import "errors"

// Service-level errors. Handlers map these to HTTP statuses.
var (
	// ErrNotOwner indicates the requesting user does not own the place
	// they tried to modify or delete.
	ErrNotOwner = errors.New("user does not own this place")

	// ErrNoPlacesForUser indicates the requested user either does not
	// exist or owns no places.
	ErrNoPlacesForUser = errors.New("no places found for user")

	// ErrInvalidCredentials indicates a login attempt with an unknown
	// email or a wrong password. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
