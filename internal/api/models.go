// Package api contains the HTTP handlers, request/response models and
// error mapping for the places API.
package api

import (
	"time"

	"github.com/placeshare/places-api/internal/domain"
)

// CreatePlaceRequest carries the form fields of POST /api/places. The
// image file travels alongside as a multipart part.
type CreatePlaceRequest struct {
	Title       string `validate:"required"`
	Description string `validate:"required,min=5"`
	Address     string `validate:"required"`
}

// UpdatePlaceRequest is the body of PATCH /api/places/{placeId}. Only
// the title and description of a place can change after creation.
type UpdatePlaceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

// SignupRequest is the body of POST /api/users/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LocationResponse carries geographic coordinates in API responses.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceResponse is the representation of a place in API responses.
type PlaceResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Address     string           `json:"address"`
	Location    LocationResponse `json:"location"`
	Image       string           `json:"image"`
	Creator     string           `json:"creator"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewPlaceResponse converts a domain place to its API representation.
func NewPlaceResponse(place *domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID.Hex(),
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location:    LocationResponse{Lat: place.Location.Lat, Lng: place.Location.Lng},
		Image:       place.Image,
		Creator:     place.CreatorID.Hex(),
		CreatedAt:   place.CreatedAt,
		UpdatedAt:   place.UpdatedAt,
	}
}

// NewPlaceListResponse converts a slice of domain places.
func NewPlaceListResponse(places []*domain.Place) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		out = append(out, NewPlaceResponse(p))
	}
	return out
}

// UserResponse is the public representation of a user. Credentials are
// never included.
type UserResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	places := make([]string, 0, len(user.Places))
	for _, id := range user.Places {
		places = append(places, id.Hex())
	}
	return UserResponse{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Image:  user.Image,
		Places: places,
	}
}

// NewUserListResponse converts a slice of domain users.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// AuthResponse is returned by signup and login: the user plus a token.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}
