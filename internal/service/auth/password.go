package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier hashes plaintext passwords and checks candidates
// against stored hashes.
type PasswordVerifier interface {
	// Hash returns the hash of a plaintext password.
	Hash(password string) (string, error)

	// Compare reports whether the candidate password matches the stored
	// hash. A mismatch is an error.
	Compare(hashedPassword, password string) error
}

// bcryptVerifier implements PasswordVerifier with bcrypt.
type bcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a PasswordVerifier using bcrypt at the
// default cost.
func NewBcryptVerifier() PasswordVerifier {
	return &bcryptVerifier{cost: bcrypt.DefaultCost}
}

var _ PasswordVerifier = (*bcryptVerifier)(nil)

// Hash implements PasswordVerifier.Hash.
func (v *bcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements PasswordVerifier.Compare.
func (v *bcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
