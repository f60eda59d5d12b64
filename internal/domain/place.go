package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinDescriptionLen is the minimum accepted length of a place description.
const MinDescriptionLen = 5

// Common place validation errors
var (
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrDescriptionTooShort = errors.New("description must be at least 5 characters long")
	ErrEmptyAddress        = errors.New("address cannot be empty")
	ErrEmptyCreator        = errors.New("place must have a creator")
)

// Location holds geographic coordinates derived from a place's address.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Place represents a point of interest owned by a single user.
// Address, Location, Image and CreatorID are fixed at creation time;
// only Title and Description are mutable afterwards.
type Place struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title"         json:"title"`
	Description string             `bson:"description"   json:"description"`
	Address     string             `bson:"address"       json:"address"`
	Location    Location           `bson:"location"      json:"location"`
	Image       string             `bson:"image"         json:"image"`
	CreatorID   primitive.ObjectID `bson:"creator"       json:"creator"`
	CreatedAt   time.Time          `bson:"created_at"    json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"    json:"updated_at"`
}

// NewPlace creates a new Place owned by the given creator. It generates a
// fresh identity and sets the creation/update timestamps. Returns an error
// if validation fails.
func NewPlace(
	title, description, address string,
	location Location,
	image string,
	creatorID primitive.ObjectID,
) (*Place, error) {
	now := time.Now().UTC()
	place := &Place{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Address:     address,
		Location:    location,
		Image:       image,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := place.Validate(); err != nil {
		return nil, err
	}

	return place, nil
}

// Validate checks if the Place has valid data.
// Returns an error if any field fails validation.
func (p *Place) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}

	if len(p.Description) < MinDescriptionLen {
		return ErrDescriptionTooShort
	}

	if p.Address == "" {
		return ErrEmptyAddress
	}

	if p.CreatorID.IsZero() {
		return ErrEmptyCreator
	}

	return nil
}
