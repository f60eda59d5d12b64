package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinPasswordLen is the minimum accepted length of a plaintext password.
const MinPasswordLen = 6

// Common user validation errors
var (
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the places service. The Places
// field holds the identities of every place this user owns; it has set
// semantics (unique entries, order irrelevant) and is maintained by the
// place service only, inside the same transaction that creates or
// deletes the place itself.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name"          json:"name"`
	Email          string               `bson:"email"         json:"email"`
	HashedPassword string               `bson:"password"      json:"-"` // never exposed in JSON
	Image          string               `bson:"image"         json:"image"`
	Places         []primitive.ObjectID `bson:"places"        json:"places"`
	CreatedAt      time.Time            `bson:"created_at"    json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at"    json:"updated_at"`
}

// NewUser creates a new User with the given name, email, hashed password
// and image reference. It generates a fresh identity, normalizes the
// email to lower case and sets the creation/update timestamps. The
// caller is responsible for hashing the password beforehand.
func NewUser(name, email, hashedPassword, image string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Email:          strings.ToLower(strings.TrimSpace(email)),
		HashedPassword: hashedPassword,
		Image:          image,
		Places:         []primitive.ObjectID{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// OwnsPlace reports whether the given place identity is present in the
// user's place set.
func (u *User) OwnsPlace(placeID primitive.ObjectID) bool {
	for _, id := range u.Places {
		if id == placeID {
			return true
		}
	}
	return false
}

// validEmailFormat performs basic validation of email format: a single @
// with a dotted domain part. Full RFC 5322 validation is out of scope;
// the boundary layer applies the validator library's email rule as well.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
