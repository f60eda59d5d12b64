package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/store"
)

// MongoPlaceStore implements the store.PlaceStore interface using a
// MongoDB collection as the storage backend.
type MongoPlaceStore struct {
	places *mongo.Collection
}

// NewMongoPlaceStore creates a MongoDB implementation of the PlaceStore
// interface.
func NewMongoPlaceStore(db *mongo.Database) *MongoPlaceStore {
	return &MongoPlaceStore{places: db.Collection(placesCollection)}
}

var _ store.PlaceStore = (*MongoPlaceStore)(nil)

// Create implements store.PlaceStore.Create.
func (s *MongoPlaceStore) Create(ctx context.Context, place *domain.Place) error {
	if _, err := s.places.InsertOne(ctx, place); err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}
	return nil
}

// GetByID implements store.PlaceStore.GetByID.
func (s *MongoPlaceStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Place, error) {
	var place domain.Place
	if err := s.places.FindOne(ctx, bson.M{"_id": id}).Decode(&place); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to find place: %w", err)
	}
	return &place, nil
}

// GetByIDs implements store.PlaceStore.GetByIDs.
func (s *MongoPlaceStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*domain.Place, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := s.places.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find places: %w", err)
	}
	defer cur.Close(ctx)

	var places []*domain.Place
	if err := cur.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}
	return places, nil
}

// Update implements store.PlaceStore.Update. The whole document is
// replaced; callers load, mutate and write back.
func (s *MongoPlaceStore) Update(ctx context.Context, place *domain.Place) error {
	place.UpdatedAt = time.Now().UTC()

	res, err := s.places.ReplaceOne(ctx, bson.M{"_id": place.ID}, place)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrPlaceNotFound
	}
	return nil
}

// Delete implements store.PlaceStore.Delete.
func (s *MongoPlaceStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.places.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrPlaceNotFound
	}
	return nil
}
