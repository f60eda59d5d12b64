package auth

import "errors"

// Authentication error types. Handlers map these to HTTP statuses; the
// details never reach clients directly.
var (
	// ErrInvalidToken indicates the token is malformed, has an invalid
	// signature, or carries unusable claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token is well-formed but past its
	// expiry time.
	ErrExpiredToken = errors.New("token expired")
)
