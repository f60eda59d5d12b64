package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/placeshare/places-api/internal/domain"
	"github.com/placeshare/places-api/internal/platform/logger"
	"github.com/placeshare/places-api/internal/service/auth"
	"github.com/placeshare/places-api/internal/store"
)

// RegisterInput carries the caller-supplied fields for a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// UserService implements account use cases: registration, login and the
// public user listing.
type UserService struct {
	userStore  store.UserStore
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	log        *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	log *slog.Logger,
) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{
		userStore:  userStore,
		verifier:   verifier,
		jwtService: jwtService,
		log:        log.With(slog.String("service", "user")),
	}
}

// Register creates a new account and returns the user together with a
// fresh token, logging the caller in immediately. Returns
// store.ErrEmailExists when the email is already taken.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	if len(input.Password) < domain.MinPasswordLen {
		return nil, "", domain.ErrPasswordTooShort
	}

	hashed, err := s.verifier.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := domain.NewUser(input.Name, input.Email, hashed, input.Image)
	if err != nil {
		return nil, "", err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("user registered", slog.String("user_id", user.ID.Hex()))
	return user, token, nil
}

// Authenticate checks the credentials and returns the user with a fresh
// token. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("user authenticated", slog.String("user_id", user.ID.Hex()))
	return user, token, nil
}

// List returns all registered users without their credentials.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}
