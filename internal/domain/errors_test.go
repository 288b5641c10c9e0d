package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrValidation,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		key         string
		expectedMsg string
	}{
		{
			name:        "with entity and key",
			entity:      "borrow record",
			key:         "rec-1",
			expectedMsg: `borrow record "rec-1" not found`,
		},
		{
			name:        "with entity only",
			entity:      "book",
			expectedMsg: "book not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.key)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.key, notFound.Key)
		})
	}
}

func TestConflictError(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		expectedMsg string
	}{
		{
			name:        "with key",
			key:         "rec-1",
			expectedMsg: `borrow record "rec-1" conflict: already returned`,
		},
		{
			name:        "without key",
			expectedMsg: "borrow record conflict: already returned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConflictError("borrow record", tt.key, "already returned")

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrConflict)
			assert.True(t, IsConflict(err))
			assert.False(t, IsNotFound(err))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationErrorWithValue("return_date", "precedes borrow date", "2020-01-01")

	assert.Equal(t, "validation failed for return_date: precedes borrow date", err.Error())
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "2020-01-01", validationErr.Value)

	assert.Equal(t, "validation failed: bad", NewValidationError("", "bad").Error())
}

func TestIsHelpers_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("closing record: %w", NewNotFoundError("borrow record", "x"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(nil))
}
