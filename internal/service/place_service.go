// Package service implements the application's use cases on top of the
// store and platform layers. Services hold the ownership and
// consistency rules; handlers stay thin.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/platform/geocode"
	"github.com/placeshare/places-api/internal/platform/logger"
	"github.com/placeshare/places-api/internal/store"
)

// CleanupDispatcher queues an artifact path for asynchronous removal.
type CleanupDispatcher interface {
	Dispatch(path string)
}

// CreatePlaceInput carries the caller-supplied fields for a new place.
// Coordinates are never accepted from callers; they are derived from the
// address by the geocoder.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	Image       string
	CreatorID   primitive.ObjectID
}

// UpdatePlaceInput carries the mutable fields of a place. Address,
// coordinates, image and creator are fixed at creation time.
type UpdatePlaceInput struct {
	Title       string
	Description string
}

// PlaceService implements place use cases: lookups, creation, mutation
// and deletion. Creation and deletion touch both the place collection
// and the owner's place set; those two writes always happen in a single
// transaction so the documents cannot drift apart.
type PlaceService struct {
	placeStore store.PlaceStore
	userStore  store.UserStore
	txRunner   store.TxRunner
	geocoder   geocode.Geocoder
	cleanup    CleanupDispatcher
	log        *slog.Logger
}

// NewPlaceService creates a new PlaceService with the given dependencies.
func NewPlaceService(
	placeStore store.PlaceStore,
	userStore store.UserStore,
	txRunner store.TxRunner,
	geocoder geocode.Geocoder,
	cleanup CleanupDispatcher,
	log *slog.Logger,
) *PlaceService {
	if log == nil {
		log = slog.Default()
	}
	return &PlaceService{
		placeStore: placeStore,
		userStore:  userStore,
		txRunner:   txRunner,
		geocoder:   geocoder,
		cleanup:    cleanup,
		log:        log.With(slog.String("service", "place")),
	}
}

// GetByID returns a single place by its identity.
// Returns store.ErrPlaceNotFound if no such place exists.
func (s *PlaceService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Place, error) {
	place, err := s.placeStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return place, nil
}

// ListByCreator returns every place owned by the given user, resolved
// through the user's place set. Returns ErrNoPlacesForUser when the user
// does not exist or owns no places.
func (s *PlaceService) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*domain.Place, error) {
	user, err := s.userStore.GetByID(ctx, creatorID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNoPlacesForUser
		}
		return nil, err
	}

	if len(user.Places) == 0 {
		return nil, ErrNoPlacesForUser
	}

	places, err := s.placeStore.GetByIDs(ctx, user.Places)
	if err != nil {
		return nil, fmt.Errorf("failed to load places for user: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrNoPlacesForUser
	}
	return places, nil
}

// Create geocodes the address, verifies the creator exists, then inserts
// the place and adds its identity to the creator's place set in one
// transaction. Geocoding failures are returned unchanged (they carry
// their own status); a missing creator yields store.ErrUserNotFound and
// nothing is written.
func (s *PlaceService) Create(ctx context.Context, input CreatePlaceInput) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	location, err := s.geocoder.Resolve(ctx, input.Address)
	if err != nil {
		return nil, err
	}

	place, err := domain.NewPlace(
		input.Title, input.Description, input.Address,
		location, input.Image, input.CreatorID,
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.userStore.GetByID(ctx, input.CreatorID); err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.placeStore.Create(txCtx, place); err != nil {
			return err
		}
		return s.userStore.AddPlace(txCtx, input.CreatorID, place.ID)
	})
	if err != nil {
		log.Error("failed to create place",
			slog.String("creator_id", input.CreatorID.Hex()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("place created",
		slog.String("place_id", place.ID.Hex()),
		slog.String("creator_id", input.CreatorID.Hex()))
	return place, nil
}

// Update changes a place's title and description. Only the owner may
// update a place; everyone else gets ErrNotOwner. Returns
// store.ErrPlaceNotFound if the place does not exist.
func (s *PlaceService) Update(
	ctx context.Context,
	placeID, userID primitive.ObjectID,
	input UpdatePlaceInput,
) (*domain.Place, error) {
	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if place.CreatorID != userID {
		return nil, ErrNotOwner
	}

	place.Title = input.Title
	place.Description = input.Description
	if err := place.Validate(); err != nil {
		return nil, err
	}

	if err := s.placeStore.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// Delete removes a place and pulls its identity from the owner's place
// set in one transaction. Only the owner may delete a place. After the
// transaction commits, removal of the place's image artifact is handed
// to the cleanup worker; the response never waits on it.
func (s *PlaceService) Delete(ctx context.Context, placeID, userID primitive.ObjectID) error {
	log := logger.FromContextOrDefault(ctx, s.log)

	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		return err
	}

	creator, err := s.userStore.GetByID(ctx, place.CreatorID)
	if err != nil {
		return err
	}

	if creator.ID != userID {
		return ErrNotOwner
	}

	err = s.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.placeStore.Delete(txCtx, placeID); err != nil {
			return err
		}
		return s.userStore.RemovePlace(txCtx, creator.ID, placeID)
	})
	if err != nil {
		log.Error("failed to delete place",
			slog.String("place_id", placeID.Hex()),
			slog.String("error", err.Error()))
		return err
	}

	if s.cleanup != nil {
		s.cleanup.Dispatch(place.Image)
	}

	log.Info("place deleted",
		slog.String("place_id", placeID.Hex()),
		slog.String("user_id", userID.Hex()))
	return nil
}
