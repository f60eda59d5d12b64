// Package testutils provides in-memory store implementations for
// service and handler tests. The MemDB honors the same transaction
// contract as the MongoDB stores: writes made inside RunInTransaction
// are rolled back when the function returns an error.
package testutils

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/store"
)

// MemDB is an in-memory database backing the fake stores. Create one
// per test with NewMemDB; its Users(), Places() and TxRunner() views
// satisfy the store interfaces.
type MemDB struct {
	mu     sync.Mutex
	users  map[primitive.ObjectID]*domain.User
	places map[primitive.ObjectID]*domain.Place
}

// NewMemDB creates an empty in-memory database.
func NewMemDB() *MemDB {
	return &MemDB{
		users:  make(map[primitive.ObjectID]*domain.User),
		places: make(map[primitive.ObjectID]*domain.Place),
	}
}

// SeedUser stores a copy of the user, bypassing validation.
func (db *MemDB) SeedUser(user *domain.User) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[user.ID] = copyUser(user)
}

// SeedPlace stores a copy of the place, bypassing validation.
func (db *MemDB) SeedPlace(place *domain.Place) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.places[place.ID] = copyPlace(place)
}

// User returns a copy of the stored user, or nil.
func (db *MemDB) User(id primitive.ObjectID) *domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u, ok := db.users[id]; ok {
		return copyUser(u)
	}
	return nil
}

// Place returns a copy of the stored place, or nil.
func (db *MemDB) Place(id primitive.ObjectID) *domain.Place {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p, ok := db.places[id]; ok {
		return copyPlace(p)
	}
	return nil
}

// PlaceCount returns the number of stored places.
func (db *MemDB) PlaceCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.places)
}

// snapshot captures the full database state for rollback.
func (db *MemDB) snapshot() (map[primitive.ObjectID]*domain.User, map[primitive.ObjectID]*domain.Place) {
	users := make(map[primitive.ObjectID]*domain.User, len(db.users))
	for id, u := range db.users {
		users[id] = copyUser(u)
	}
	places := make(map[primitive.ObjectID]*domain.Place, len(db.places))
	for id, p := range db.places {
		places[id] = copyPlace(p)
	}
	return users, places
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	cp.Places = append([]primitive.ObjectID(nil), u.Places...)
	return &cp
}

func copyPlace(p *domain.Place) *domain.Place {
	cp := *p
	return &cp
}

// Users returns a UserStore view of the database.
func (db *MemDB) Users() *FakeUserStore {
	return &FakeUserStore{db: db}
}

// Places returns a PlaceStore view of the database.
func (db *MemDB) Places() *FakePlaceStore {
	return &FakePlaceStore{db: db}
}

// TxRunner returns a TxRunner view of the database.
func (db *MemDB) TxRunner() *FakeTxRunner {
	return &FakeTxRunner{db: db}
}

// FakeUserStore implements store.UserStore against a MemDB. Error
// fields inject failures into individual operations.
type FakeUserStore struct {
	db *MemDB

	CreateErr      error
	GetByIDErr     error
	GetByEmailErr  error
	ListErr        error
	AddPlaceErr    error
	RemovePlaceErr error
}

var _ store.UserStore = (*FakeUserStore)(nil)

func (s *FakeUserStore) Create(_ context.Context, user *domain.User) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}
	s.db.users[user.ID] = copyUser(user)
	return nil
}

func (s *FakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if s.GetByIDErr != nil {
		return nil, s.GetByIDErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (s *FakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.GetByEmailErr != nil {
		return nil, s.GetByEmailErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *FakeUserStore) List(_ context.Context) ([]*domain.User, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	users := make([]*domain.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		cp := copyUser(u)
		cp.HashedPassword = ""
		users = append(users, cp)
	}
	return users, nil
}

func (s *FakeUserStore) AddPlace(_ context.Context, userID, placeID primitive.ObjectID) error {
	if s.AddPlaceErr != nil {
		return s.AddPlaceErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	for _, id := range u.Places {
		if id == placeID {
			return nil
		}
	}
	u.Places = append(u.Places, placeID)
	return nil
}

func (s *FakeUserStore) RemovePlace(_ context.Context, userID, placeID primitive.ObjectID) error {
	if s.RemovePlaceErr != nil {
		return s.RemovePlaceErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	kept := u.Places[:0]
	for _, id := range u.Places {
		if id != placeID {
			kept = append(kept, id)
		}
	}
	u.Places = kept
	return nil
}

// FakePlaceStore implements store.PlaceStore against a MemDB.
type FakePlaceStore struct {
	db *MemDB

	CreateErr   error
	GetByIDErr  error
	GetByIDsErr error
	UpdateErr   error
	DeleteErr   error
}

var _ store.PlaceStore = (*FakePlaceStore)(nil)

func (s *FakePlaceStore) Create(_ context.Context, place *domain.Place) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.places[place.ID] = copyPlace(place)
	return nil
}

func (s *FakePlaceStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Place, error) {
	if s.GetByIDErr != nil {
		return nil, s.GetByIDErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.places[id]
	if !ok {
		return nil, store.ErrPlaceNotFound
	}
	return copyPlace(p), nil
}

func (s *FakePlaceStore) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*domain.Place, error) {
	if s.GetByIDsErr != nil {
		return nil, s.GetByIDsErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var places []*domain.Place
	for _, id := range ids {
		if p, ok := s.db.places[id]; ok {
			places = append(places, copyPlace(p))
		}
	}
	return places, nil
}

func (s *FakePlaceStore) Update(_ context.Context, place *domain.Place) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.places[place.ID]; !ok {
		return store.ErrPlaceNotFound
	}
	s.db.places[place.ID] = copyPlace(place)
	return nil
}

func (s *FakePlaceStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.places[id]; !ok {
		return store.ErrPlaceNotFound
	}
	delete(s.db.places, id)
	return nil
}

// FakeTxRunner implements store.TxRunner by snapshotting the MemDB
// before fn runs and restoring the snapshot when fn fails.
type FakeTxRunner struct {
	db *MemDB

	BeginErr error
	Calls    int
}

var _ store.TxRunner = (*FakeTxRunner)(nil)

func (r *FakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if r.BeginErr != nil {
		return r.BeginErr
	}
	r.Calls++

	r.db.mu.Lock()
	users, places := r.db.snapshot()
	r.db.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.db.mu.Lock()
		r.db.users = users
		r.db.places = places
		r.db.mu.Unlock()
		return err
	}
	return nil
}
