package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationError_HasBadRequestStatus(t *testing.T) {
	// Arrange + Act
	err := NewValidationError("name is required")

	// Assert
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, 400, err.HTTPStatus)
	assert.True(t, IsValidation(err))
}

func TestNewNotFoundError_FormatsResourceIntoMessage(t *testing.T) {
	// Arrange + Act
	err := NewNotFoundError("node abc")

	// Assert
	assert.Equal(t, "node abc not found", err.Message)
	assert.True(t, IsNotFound(err))
}

func TestAppError_Error_IncludesCauseWhenWrapped(t *testing.T) {
	// Arrange
	cause := stderrors.New("connection refused")
	err := NewDatabaseError("CreateNode", cause)

	// Act + Assert
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestGetAppError_ExtractsFromWrappedErrorChain(t *testing.T) {
	// Arrange
	original := NewConflictError("duplicate id")
	wrapped := Wrap(original, "CreateNode failed")

	// Act
	extracted := GetAppError(wrapped)

	// Assert
	assert.NotNil(t, extracted)
	assert.Equal(t, ErrorTypeConflict, extracted.Type)
	assert.Contains(t, extracted.Message, "CreateNode failed")
}

func TestWrap_NonAppErrorBecomesInternalError(t *testing.T) {
	// Arrange
	plain := stderrors.New("boom")

	// Act
	wrapped := Wrap(plain, "doing a thing")

	// Assert
	assert.True(t, IsInternal(wrapped))
}

func TestIsBackendUnavailable_TrueForBackendUnavailableError(t *testing.T) {
	// Arrange
	err := NewBackendUnavailableError("vector", stderrors.New("dial tcp timeout"))

	// Act + Assert
	assert.True(t, IsBackendUnavailable(err))
	assert.False(t, IsNotFound(err))
}

func TestIsExecutionError_TrueForExecutionError(t *testing.T) {
	// Arrange
	err := NewExecutionError("prop-1", stderrors.New("merge target missing"))

	// Act + Assert
	assert.True(t, IsExecutionError(err))
}
