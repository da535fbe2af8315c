package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewTerminalStateError("hazard", "closed"))

	assert.True(t, errors.Is(err, ErrTerminalState))
	assert.False(t, errors.Is(err, ErrInvalidTransition))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeTerminalState, appErr.Code)
	assert.Equal(t, "closed", appErr.Details["status"])
}

func TestMissingFieldsIsValidation(t *testing.T) {
	err := NewMissingFieldsError([]string{"rootCause", "preventativeMeasures"})

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, CodeMissingFields, err.Code)
	assert.Equal(t, []string{"rootCause", "preventativeMeasures"}, err.Details["missingFields"])
	assert.Contains(t, err.Error(), "rootCause")
}

func TestInternalErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("failed to save hazard", cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to save hazard: connection reset", err.Error())
}
