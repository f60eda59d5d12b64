package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/store"
)

// MongoUserStore implements the store.UserStore interface using a
// MongoDB collection as the storage backend.
type MongoUserStore struct {
	users *mongo.Collection
}

// NewMongoUserStore creates a MongoDB implementation of the UserStore
// interface. The database connection is initialized and managed by the
// caller.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{users: db.Collection(usersCollection)}
}

var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *MongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail. Lookup is
// case-insensitive by way of lower-cased storage.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// List implements store.UserStore.List. Hashed credentials are excluded
// by projection so they never leave the database.
func (s *MongoUserStore) List(ctx context.Context) ([]*domain.User, error) {
	proj := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := s.users.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// AddPlace implements store.UserStore.AddPlace. $addToSet keeps the
// place set free of duplicates even under concurrent retries.
func (s *MongoUserStore) AddPlace(ctx context.Context, userID, placeID primitive.ObjectID) error {
	res, err := s.users.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"places": placeID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to add place to user: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// RemovePlace implements store.UserStore.RemovePlace.
func (s *MongoUserStore) RemovePlace(ctx context.Context, userID, placeID primitive.ObjectID) error {
	res, err := s.users.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"places": placeID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to remove place from user: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
