package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/domain"
)

// PlaceStore defines the interface for place data persistence.
//
// All methods honor an active transaction carried by the context (see
// TxRunner); outside a transaction they act as single-document writes.
type PlaceStore interface {
	// Create saves a new place to the store.
	Create(ctx context.Context, place *domain.Place) error

	// GetByID retrieves a place by its unique ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Place, error)

	// GetByIDs retrieves the places for the given identities. Identities
	// with no matching document are skipped; the result order is not
	// specified.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Place, error)

	// Update overwrites the stored place with the given record.
	// Returns ErrPlaceNotFound if the place does not exist.
	Update(ctx context.Context, place *domain.Place) error

	// Delete removes a place from the store by its ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
