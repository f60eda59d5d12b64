package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/api/shared"
	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/platform/logger"
	"github.com/placeshare/places-api/internal/service"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 10 << 20 // 10 MiB

// PlaceManager defines the place use cases the handler depends on.
type PlaceManager interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Place, error)
	ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*domain.Place, error)
	Create(ctx context.Context, input service.CreatePlaceInput) (*domain.Place, error)
	Update(ctx context.Context, placeID, userID primitive.ObjectID, input service.UpdatePlaceInput) (*domain.Place, error)
	Delete(ctx context.Context, placeID, userID primitive.ObjectID) error
}

// ImageStore saves the image file of a multipart request and returns
// the stored path.
type ImageStore interface {
	SaveUpload(r *http.Request, field string) (string, error)
}

// PlaceHandler handles place-related HTTP requests.
type PlaceHandler struct {
	placeService PlaceManager
	images       ImageStore
	logger       *slog.Logger
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(placeService PlaceManager, images ImageStore, logger *slog.Logger) *PlaceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceHandler{
		placeService: placeService,
		images:       images,
		logger:       logger.With(slog.String("component", "place_handler")),
	}
}

// GetPlace handles GET /api/places/{placeId}.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := parseObjectIDParam(w, r, "placeId")
	if !ok {
		return
	}

	place, err := h.placeService.GetByID(r.Context(), placeID)
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"place": NewPlaceResponse(place),
	})
}

// GetPlacesByUser handles GET /api/places/user/{userId}.
func (h *PlaceHandler) GetPlacesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseObjectIDParam(w, r, "userId")
	if !ok {
		return
	}

	places, err := h.placeService.ListByCreator(r.Context(), userID)
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"places": NewPlaceListResponse(places),
	})
}

// CreatePlace handles POST /api/places. The body is multipart form data
// carrying title, description, address and an image file.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok || userID.IsZero() {
		log.Warn("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid form data.")
		return
	}

	req := CreatePlaceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondMappedError(w, r, err)
		return
	}

	imagePath, err := h.images.SaveUpload(r, "image")
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	place, err := h.placeService.Create(r.Context(), service.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Image:       imagePath,
		CreatorID:   userID,
	})
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"place": NewPlaceResponse(place),
	})
}

// UpdatePlace handles PATCH /api/places/{placeId}.
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := parseObjectIDParam(w, r, "placeId")
	if !ok {
		return
	}

	userID, ok := shared.GetUserID(r.Context())
	if !ok || userID.IsZero() {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req UpdatePlaceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondMappedError(w, r, err)
		return
	}

	place, err := h.placeService.Update(r.Context(), placeID, userID, service.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"place": NewPlaceResponse(place),
	})
}

// DeletePlace handles DELETE /api/places/{placeId}.
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	placeID, ok := parseObjectIDParam(w, r, "placeId")
	if !ok {
		return
	}

	userID, ok := shared.GetUserID(r.Context())
	if !ok || userID.IsZero() {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := h.placeService.Delete(r.Context(), placeID, userID); err != nil {
		RespondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Deleted place.",
	})
}

// parseObjectIDParam reads a hex document identity from the URL. An
// unparseable value is treated as a lookup that cannot match, so it
// responds 404 rather than 400.
func parseObjectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			"Could not find a resource for the provided id.")
		return primitive.NilObjectID, false
	}
	return id, true
}
