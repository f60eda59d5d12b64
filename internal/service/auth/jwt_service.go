// Package auth provides token issuance/validation and password hashing
// for the API's authentication layer.
package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JWTService defines operations for generating and validating
// authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the given user ID.
	GenerateToken(ctx context.Context, userID primitive.ObjectID) (string, error)

	// ValidateToken verifies a token's signature and expiry and returns
	// the user ID it was issued for. Returns ErrExpiredToken for expired
	// tokens and ErrInvalidToken for anything else unusable.
	ValidateToken(ctx context.Context, tokenString string) (primitive.ObjectID, error)
}
