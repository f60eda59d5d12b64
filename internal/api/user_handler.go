package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/placeshare/places-api/internal/api/shared"
	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/service"
)

// UserManager defines the account use cases the handler depends on.
type UserManager interface {
	Register(ctx context.Context, input service.RegisterInput) (*domain.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService UserManager
	images      ImageStore
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService UserManager, images ImageStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		images:      images,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"users": NewUserListResponse(users),
	})
}

// Signup handles POST /api/users/signup. The body is multipart form
// data carrying name, email, password and an optional avatar image.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid form data.")
		return
	}

	req := SignupRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondMappedError(w, r, err)
		return
	}

	var imagePath string
	if _, _, err := r.FormFile("image"); err == nil {
		imagePath, err = h.images.SaveUpload(r, "image")
		if err != nil {
			RespondMappedError(w, r, err)
			return
		}
	}

	user, token, err := h.userService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    imagePath,
	})
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Token:  token,
	})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondMappedError(w, r, err)
		return
	}

	user, token, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Token:  token,
	})
}
