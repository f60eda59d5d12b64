package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// All methods honor an active transaction carried by the context (see
// TxRunner); outside a transaction they act as single-document writes.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users. Hashed credentials are omitted from the
	// returned records.
	List(ctx context.Context) ([]*domain.User, error)

	// AddPlace adds the place identity to the user's place set. Adding an
	// identity that is already present is a no-op (set semantics).
	// Returns ErrUserNotFound if the user does not exist.
	AddPlace(ctx context.Context, userID, placeID primitive.ObjectID) error

	// RemovePlace removes the place identity from the user's place set.
	// Returns ErrUserNotFound if the user does not exist.
	RemovePlace(ctx context.Context, userID, placeID primitive.ObjectID) error
}
