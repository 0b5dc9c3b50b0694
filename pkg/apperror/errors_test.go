package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationErrorPromotesFirstMessage(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "recipient", Message: "Recipient is required"},
		{Field: "items", Message: "At least one item is required"},
	})

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Recipient is required", err.Message)
	assert.Len(t, err.Errors, 2)
}

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("loading receipt: %w", ErrStoreUnavailable)

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Database not configured", appErr.Message)
	assert.True(t, IsCode(wrapped, http.StatusInternalServerError))
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(fmt.Errorf("disk full"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "disk full", appErr.Message)
	assert.False(t, IsAppError(fmt.Errorf("disk full")))
}
