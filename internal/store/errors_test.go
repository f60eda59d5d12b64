package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placeshare/places-api/internal/store"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsNotFoundError(store.ErrNotFound))
	assert.True(t, store.IsNotFoundError(store.ErrUserNotFound))
	assert.True(t, store.IsNotFoundError(store.ErrPlaceNotFound))
	assert.True(t, store.IsNotFoundError(fmt.Errorf("wrapped: %w", store.ErrPlaceNotFound)))

	assert.False(t, store.IsNotFoundError(store.ErrEmailExists))
	assert.False(t, store.IsNotFoundError(errors.New("other")))
	assert.False(t, store.IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsDuplicateError(store.ErrDuplicate))
	assert.True(t, store.IsDuplicateError(store.ErrEmailExists))
	assert.True(t, store.IsDuplicateError(fmt.Errorf("wrapped: %w", store.ErrEmailExists)))

	assert.False(t, store.IsDuplicateError(store.ErrUserNotFound))
	assert.False(t, store.IsDuplicateError(nil))
}
