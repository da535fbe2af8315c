package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NewNotFoundError("hazard h-1 not found"), http.StatusNotFound},
		{"validation", apperrors.NewValidationFailedError("title is required"), http.StatusBadRequest},
		{"missing fields", apperrors.NewMissingFieldsError([]string{"rootCause"}), http.StatusUnprocessableEntity},
		{"incomplete checklist", apperrors.NewIncompleteChecklistError([]string{"item-1"}), http.StatusUnprocessableEntity},
		{"duplicate", apperrors.NewConflictError("email exists"), http.StatusConflict},
		{"invalid transition", apperrors.NewInvalidTransitionError("hazard", "open", "closed"), http.StatusConflict},
		{"terminal state", apperrors.NewTerminalStateError("permit", "denied"), http.StatusConflict},
		{"already assigned", apperrors.NewAlreadyAssignedError("h-1"), http.StatusConflict},
		{"concurrent modification", apperrors.NewConcurrentModificationError("hazard", "h-1"), http.StatusConflict},
		{"unauthorized", apperrors.NewUnauthorizedError("cross_tenant", "denied"), http.StatusForbidden},
		{"unauthenticated", apperrors.NewUnauthenticatedError("invalid email or password"), http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("loading site: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"internal", apperrors.NewInternalError("db down", errors.New("dial tcp")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
