package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKindAndSentinel(t *testing.T) {
	errMissing := New(ErrNotFound, "thing not found")
	wrapped := fmt.Errorf("get thing: %w", errMissing)

	assert.ErrorIs(t, wrapped, errMissing)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, "thing not found", errMissing.Error())
}

func TestValidation(t *testing.T) {
	err := Validation("content is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "content is required", err.Error())
}

func TestStorageWrapsUnclassified(t *testing.T) {
	err := Storage("deposits.create", sql.ErrConnDone)

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "deposits.create")

	var storageErr *StorageError
	if assert.True(t, errors.As(err, &storageErr)) {
		assert.Equal(t, "deposits.create", storageErr.Op)
	}
}

func TestStoragePassesClassifiedAndNil(t *testing.T) {
	conflict := New(ErrConflict, "taken")
	assert.Same(t, conflict, Storage("op", conflict))
	assert.NoError(t, Storage("op", nil))

	once := Storage("inner", sql.ErrNoRows)
	assert.Same(t, once, Storage("outer", once))
}
