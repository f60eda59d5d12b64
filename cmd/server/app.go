package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placeshare/places-api/internal/config"
	"github.com/placeshare/places-api/internal/platform/filestore"
	"github.com/placeshare/places-api/internal/platform/geocode"
	"github.com/placeshare/places-api/internal/platform/mongodb"
	"github.com/placeshare/places-api/internal/service"
	"github.com/placeshare/places-api/internal/service/auth"
	"github.com/placeshare/places-api/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	mongoClient *mongo.Client

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	placeService     *service.PlaceService
	userService      *service.UserService
	imageStore       *filestore.Store
	cleanupWorker    *task.CleanupWorker
}

// buildApplication connects to storage and wires the service graph.
func buildApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	client, db, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	userStore := mongodb.NewMongoUserStore(db)
	placeStore := mongodb.NewMongoPlaceStore(db)
	txRunner := mongodb.NewSessionTxRunner(client)

	imageStore, err := filestore.New(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}

	cleanupCfg := task.DefaultCleanupConfig()
	cleanupWorker := task.NewCleanupWorker(imageStore, cleanupCfg, log)
	cleanupWorker.Start(cleanupCfg.WorkerCount)

	geocoder := geocode.NewClient(cfg.Geocode, log)
	jwtService := auth.NewJWTService(cfg.Auth)
	passwordVerifier := auth.NewBcryptVerifier()

	placeService := service.NewPlaceService(
		placeStore, userStore, txRunner, geocoder, cleanupWorker, log)
	userService := service.NewUserService(
		userStore, passwordVerifier, jwtService, log)

	return &application{
		config:           cfg,
		logger:           log,
		mongoClient:      client,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		placeService:     placeService,
		userService:      userService,
		imageStore:       imageStore,
		cleanupWorker:    cleanupWorker,
	}, nil
}

// shutdown releases the application's resources: drains the cleanup
// queue and disconnects from storage.
func (app *application) shutdown(ctx context.Context) {
	app.cleanupWorker.Stop()

	disconnectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.mongoClient.Disconnect(disconnectCtx); err != nil {
		app.logger.Error("failed to disconnect from database",
			slog.String("error", err.Error()))
	}
}
