package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/api"
	"github.com/placeshare/places-api/internal/api/shared"
	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/service"
	"github.com/placeshare/places-api/internal/store"
)

// fakePlaceManager implements api.PlaceManager with canned results.
type fakePlaceManager struct {
	place  *domain.Place
	places []*domain.Place
	err    error

	lastCreateInput service.CreatePlaceInput
	lastUpdateInput service.UpdatePlaceInput
	lastUserID      primitive.ObjectID
	deleted         bool
}

func (m *fakePlaceManager) GetByID(_ context.Context, _ primitive.ObjectID) (*domain.Place, error) {
	return m.place, m.err
}

func (m *fakePlaceManager) ListByCreator(_ context.Context, _ primitive.ObjectID) ([]*domain.Place, error) {
	return m.places, m.err
}

func (m *fakePlaceManager) Create(_ context.Context, input service.CreatePlaceInput) (*domain.Place, error) {
	m.lastCreateInput = input
	return m.place, m.err
}

func (m *fakePlaceManager) Update(_ context.Context, _, userID primitive.ObjectID, input service.UpdatePlaceInput) (*domain.Place, error) {
	m.lastUpdateInput = input
	m.lastUserID = userID
	return m.place, m.err
}

func (m *fakePlaceManager) Delete(_ context.Context, _, userID primitive.ObjectID) error {
	m.lastUserID = userID
	if m.err == nil {
		m.deleted = true
	}
	return m.err
}

// fakeImageStore returns a fixed path for every upload.
type fakeImageStore struct {
	path string
	err  error
}

func (s *fakeImageStore) SaveUpload(_ *http.Request, _ string) (string, error) {
	return s.path, s.err
}

func testPlace(t *testing.T, creatorID primitive.ObjectID) *domain.Place {
	t.Helper()
	place, err := domain.NewPlace(
		"Empire State Building",
		"One of the most famous sky scrapers in the world",
		"20 W 34th St, New York, NY 10001",
		domain.Location{Lat: 40.7484, Lng: -73.9857},
		"uploads/images/empire.jpeg",
		creatorID,
	)
	require.NoError(t, err)
	return place
}

// placeRouter mounts the handler the way the server router does. When
// userID is non-zero it is injected into the context in place of the
// auth middleware.
func placeRouter(h *api.PlaceHandler, userID primitive.ObjectID) http.Handler {
	r := chi.NewRouter()
	if !userID.IsZero() {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(shared.WithUserID(req.Context(), userID)))
			})
		})
	}
	r.Get("/api/places/{placeId}", h.GetPlace)
	r.Get("/api/places/user/{userId}", h.GetPlacesByUser)
	r.Post("/api/places", h.CreatePlace)
	r.Patch("/api/places/{placeId}", h.UpdatePlace)
	r.Delete("/api/places/{placeId}", h.DeletePlace)
	return r
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestGetPlace(t *testing.T) {
	t.Parallel()

	creatorID := primitive.NewObjectID()

	t.Run("returns the place", func(t *testing.T) {
		t.Parallel()

		place := testPlace(t, creatorID)
		manager := &fakePlaceManager{place: place}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		req := httptest.NewRequest(http.MethodGet, "/api/places/"+place.ID.Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec.Body)
		got := body["place"].(map[string]interface{})
		assert.Equal(t, place.ID.Hex(), got["id"])
		assert.Equal(t, place.Title, got["title"])
		assert.Equal(t, creatorID.Hex(), got["creator"])
	})

	t.Run("unknown place yields 404", func(t *testing.T) {
		t.Parallel()

		manager := &fakePlaceManager{err: store.ErrPlaceNotFound}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		req := httptest.NewRequest(http.MethodGet, "/api/places/"+primitive.NewObjectID().Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec.Body)
		assert.Equal(t, "Could not find a place for the provided id.", body["message"])
	})

	t.Run("malformed id yields 404", func(t *testing.T) {
		t.Parallel()

		manager := &fakePlaceManager{}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		req := httptest.NewRequest(http.MethodGet, "/api/places/not-an-id", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetPlacesByUser(t *testing.T) {
	t.Parallel()

	t.Run("returns the user's places", func(t *testing.T) {
		t.Parallel()

		creatorID := primitive.NewObjectID()
		manager := &fakePlaceManager{places: []*domain.Place{testPlace(t, creatorID)}}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		req := httptest.NewRequest(http.MethodGet, "/api/places/user/"+creatorID.Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec.Body)
		assert.Len(t, body["places"], 1)
	})

	t.Run("user without places yields 404", func(t *testing.T) {
		t.Parallel()

		manager := &fakePlaceManager{err: service.ErrNoPlacesForUser}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		req := httptest.NewRequest(http.MethodGet, "/api/places/user/"+primitive.NewObjectID().Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func multipartPlaceBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "empire.jpeg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreatePlace(t *testing.T) {
	t.Parallel()

	fields := map[string]string{
		"title":       "Empire State Building",
		"description": "One of the most famous sky scrapers in the world",
		"address":     "20 W 34th St, New York, NY 10001",
	}

	t.Run("creates place for authenticated user", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{place: testPlace(t, userID)}
		images := &fakeImageStore{path: "uploads/images/generated.jpeg"}
		router := placeRouter(api.NewPlaceHandler(manager, images, nil), userID)

		body, contentType := multipartPlaceBody(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/places", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, userID, manager.lastCreateInput.CreatorID)
		assert.Equal(t, "uploads/images/generated.jpeg", manager.lastCreateInput.Image)
		assert.Equal(t, fields["title"], manager.lastCreateInput.Title)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		t.Parallel()

		manager := &fakePlaceManager{}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		body, contentType := multipartPlaceBody(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/places", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("short description yields 422 before any upload", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{}
		images := &fakeImageStore{err: errors.New("must not be called")}
		router := placeRouter(api.NewPlaceHandler(manager, images, nil), userID)

		bad := map[string]string{
			"title":       "Empire State Building",
			"description": "abc",
			"address":     "20 W 34th St, New York, NY 10001",
		}
		body, contentType := multipartPlaceBody(t, bad)
		req := httptest.NewRequest(http.MethodPost, "/api/places", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("service error is mapped", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{err: store.ErrUserNotFound}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		body, contentType := multipartPlaceBody(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/places", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("failed upload is mapped", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{}
		images := &fakeImageStore{err: errors.New("disk full")}
		router := placeRouter(api.NewPlaceHandler(manager, images, nil), userID)

		body, contentType := multipartPlaceBody(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/places", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUpdatePlace(t *testing.T) {
	t.Parallel()

	placeID := primitive.NewObjectID()

	t.Run("updates title and description", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{place: testPlace(t, userID)}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		req := httptest.NewRequest(http.MethodPatch, "/api/places/"+placeID.Hex(),
			strings.NewReader(`{"title": "New Title", "description": "A new description"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "New Title", manager.lastUpdateInput.Title)
		assert.Equal(t, userID, manager.lastUserID)
	})

	t.Run("short description is rejected", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		req := httptest.NewRequest(http.MethodPatch, "/api/places/"+placeID.Hex(),
			strings.NewReader(`{"title": "New Title", "description": "abc"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("non-owner yields 403", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{err: service.ErrNotOwner}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		req := httptest.NewRequest(http.MethodPatch, "/api/places/"+placeID.Hex(),
			strings.NewReader(`{"title": "New Title", "description": "A new description"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid body yields 400", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		req := httptest.NewRequest(http.MethodPatch, "/api/places/"+placeID.Hex(),
			strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeletePlace(t *testing.T) {
	t.Parallel()

	placeID := primitive.NewObjectID()

	t.Run("deletes the place", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		req := httptest.NewRequest(http.MethodDelete, "/api/places/"+placeID.Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, manager.deleted)
		assert.Equal(t, userID, manager.lastUserID)
	})

	t.Run("non-owner yields 403", func(t *testing.T) {
		t.Parallel()

		userID := primitive.NewObjectID()
		manager := &fakePlaceManager{err: service.ErrNotOwner}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), userID)

		req := httptest.NewRequest(http.MethodDelete, "/api/places/"+placeID.Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, manager.deleted)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		t.Parallel()

		manager := &fakePlaceManager{}
		router := placeRouter(api.NewPlaceHandler(manager, &fakeImageStore{}, nil), primitive.NilObjectID)

		req := httptest.NewRequest(http.MethodDelete, "/api/places/"+placeID.Hex(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
