package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/placeshare/places-api/internal/config"
	"github.com/placeshare/places-api/internal/service/auth"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-secret-key-thats-long-enough-for-hmac",
		TokenLifetimeMinutes: 60,
	}
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Parallel()

	svc := auth.NewJWTService(testAuthConfig())
	userID := primitive.NewObjectID()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTServiceExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	issuedAt := time.Now().Add(-2 * time.Hour)

	issuer := auth.NewJWTServiceWithClock(cfg, func() time.Time { return issuedAt })
	token, err := issuer.GenerateToken(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	validator := auth.NewJWTService(cfg)
	_, err = validator.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestJWTServiceInvalidTokens(t *testing.T) {
	t.Parallel()

	svc := auth.NewJWTService(testAuthConfig())

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "a-different-secret-key-also-long-enough"
		other := auth.NewJWTService(otherCfg)

		token, err := other.GenerateToken(context.Background(), primitive.NewObjectID())
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
