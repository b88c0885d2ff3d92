package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := Clone(ErrNotFound, "itinerary not found")
	assert.Same(t, typed, FromError(fmt.Errorf("lookup: %w", typed)))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestCloneKeepsOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "end date is before start date")
	assert.Equal(t, "end date is before start date", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, ErrValidation.Code, clone.Code)

	assert.Equal(t, ErrForbidden.Message, Clone(ErrForbidden, "").Message)
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	wrapped := Wrap(cause, ErrInternal.Code, ErrInternal.Status, "failed to save itinerary")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "failed to save itinerary: dial tcp: refused", wrapped.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("save: %w", Clone(ErrNotFound, "proposal not found or expired"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(errors.New("plain"), ErrNotFound))
}
