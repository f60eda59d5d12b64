package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/placeshare/places-api/internal/api"
	apiMiddleware "github.com/placeshare/places-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	placeHandler := api.NewPlaceHandler(app.placeService, app.imageStore, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.imageStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/places/{placeId}", placeHandler.GetPlace)
		r.Get("/places/user/{userId}", placeHandler.GetPlacesByUser)

		r.Get("/users", userHandler.ListUsers)
		r.Post("/users/signup", userHandler.Signup)
		r.Post("/users/login", userHandler.Login)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/places", placeHandler.CreatePlace)
			r.Patch("/places/{placeId}", placeHandler.UpdatePlace)
			r.Delete("/places/{placeId}", placeHandler.DeletePlace)
		})
	})

	// Stored image artifacts are served statically.
	fileServer := http.StripPrefix("/"+app.config.Upload.Dir+"/",
		http.FileServer(http.Dir(app.config.Upload.Dir)))
	r.Get("/"+app.config.Upload.Dir+"/*", fileServer.ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
