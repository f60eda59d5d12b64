package api_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placeshare/places-api/internal/api"
	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/service"
	"github.com/placeshare/places-api/internal/store"
)

// fakeUserManager implements api.UserManager with canned results.
type fakeUserManager struct {
	user  *domain.User
	users []*domain.User
	token string
	err   error

	lastRegisterInput service.RegisterInput
}

func (m *fakeUserManager) Register(_ context.Context, input service.RegisterInput) (*domain.User, string, error) {
	m.lastRegisterInput = input
	return m.user, m.token, m.err
}

func (m *fakeUserManager) Authenticate(_ context.Context, _, _ string) (*domain.User, string, error) {
	return m.user, m.token, m.err
}

func (m *fakeUserManager) List(_ context.Context) ([]*domain.User, error) {
	return m.users, m.err
}

func userRouter(h *api.UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/users", h.ListUsers)
	r.Post("/api/users/signup", h.Signup)
	r.Post("/api/users/login", h.Login)
	return r
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Max Schwarz", "max@test.com", "hashed", "")
	require.NoError(t, err)
	return user
}

func multipartSignupBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestListUsers(t *testing.T) {
	t.Parallel()

	manager := &fakeUserManager{users: []*domain.User{testUser(t)}}
	router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body)
	users := body["users"].([]interface{})
	require.Len(t, users, 1)

	got := users[0].(map[string]interface{})
	assert.Equal(t, "max@test.com", got["email"])
	assert.NotContains(t, got, "password", "credentials must never be serialized")
}

func TestSignup(t *testing.T) {
	t.Parallel()

	fields := map[string]string{
		"name":     "Max Schwarz",
		"email":    "max@test.com",
		"password": "testers",
	}

	t.Run("creates account and returns token", func(t *testing.T) {
		t.Parallel()

		user := testUser(t)
		manager := &fakeUserManager{user: user, token: "issued-token"}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		body, contentType := multipartSignupBody(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decodeBody(t, rec.Body)
		assert.Equal(t, user.ID.Hex(), got["userId"])
		assert.Equal(t, "issued-token", got["token"])
		assert.Equal(t, "testers", manager.lastRegisterInput.Password)
	})

	t.Run("duplicate email yields 409", func(t *testing.T) {
		t.Parallel()

		manager := &fakeUserManager{err: store.ErrEmailExists}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		body, contentType := multipartSignupBody(t, fields)
		req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		got := decodeBody(t, rec.Body)
		assert.Equal(t, "User exists already, please login instead.", got["message"])
	})

	t.Run("invalid input yields 422", func(t *testing.T) {
		t.Parallel()

		manager := &fakeUserManager{}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		bad := map[string]string{"name": "Max", "email": "not-an-email", "password": "testers"}
		body, contentType := multipartSignupBody(t, bad)
		req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("short password yields 422", func(t *testing.T) {
		t.Parallel()

		manager := &fakeUserManager{}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		bad := map[string]string{"name": "Max", "email": "max@test.com", "password": "short"}
		body, contentType := multipartSignupBody(t, bad)
		req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials yield token", func(t *testing.T) {
		t.Parallel()

		user := testUser(t)
		manager := &fakeUserManager{user: user, token: "issued-token"}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		req := httptest.NewRequest(http.MethodPost, "/api/users/login",
			strings.NewReader(`{"email": "max@test.com", "password": "testers"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody(t, rec.Body)
		assert.Equal(t, "issued-token", got["token"])
	})

	t.Run("bad credentials yield 401", func(t *testing.T) {
		t.Parallel()

		manager := &fakeUserManager{err: service.ErrInvalidCredentials}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		req := httptest.NewRequest(http.MethodPost, "/api/users/login",
			strings.NewReader(`{"email": "max@test.com", "password": "wrong"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		got := decodeBody(t, rec.Body)
		assert.Equal(t, "Invalid credentials, could not log you in.", got["message"])
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		t.Parallel()

		manager := &fakeUserManager{}
		router := userRouter(api.NewUserHandler(manager, &fakeImageStore{}, nil))

		req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
