package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/platform/filestore"
	"github.com/placeshare/places-api/internal/platform/geocode"
	"github.com/placeshare/places-api/internal/api/shared"
	"github.com/placeshare/places-api/internal/service"
	"github.com/placeshare/places-api/internal/service/auth"
	"github.com/placeshare/places-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Geocoding errors carry their own status and pass through unchanged.
func MapErrorToStatusCode(err error) int {
	var geoErr *geocode.Error
	if errors.As(err, &geoErr) {
		return geoErr.StatusCode
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrNoPlacesForUser):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Invalid input errors
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrDescriptionTooShort),
		errors.Is(err, domain.ErrEmptyAddress),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, filestore.ErrUnsupportedType):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error.
// Internal details never leak; unknown errors get a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var geoErr *geocode.Error
	if errors.As(err, &geoErr) {
		return geoErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return "Invalid inputs passed, please check your data."
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Authentication failed."

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials, could not log you in."

	case errors.Is(err, service.ErrNotOwner):
		return "You are not allowed to modify this place."

	case errors.Is(err, store.ErrPlaceNotFound):
		return "Could not find a place for the provided id."

	case errors.Is(err, store.ErrUserNotFound):
		return "Could not find a user for the provided id."

	case errors.Is(err, service.ErrNoPlacesForUser):
		return "Could not find places for the provided user id."

	case errors.Is(err, store.ErrEmailExists):
		return "User exists already, please login instead."

	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrDescriptionTooShort),
		errors.Is(err, domain.ErrEmptyAddress),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort):
		return "Invalid inputs passed, please check your data."

	case errors.Is(err, filestore.ErrUnsupportedType):
		return "Unsupported image type, please upload a png or jpeg file."

	default:
		return "Something went wrong, please try again."
	}
}

// RespondMappedError maps err to a status and safe message and writes
// the error response, logging the underlying error.
func RespondMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
