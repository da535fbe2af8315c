package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	if appErr, ok := apperrors.As(err); ok {
		switch appErr.Code {
		case apperrors.CodeMissingFields, apperrors.CodeIncompleteChecklist:
			return http.StatusUnprocessableEntity
		}
	}
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrTerminalState),
		errors.Is(err, apperrors.ErrAlreadyAssigned),
		errors.Is(err, apperrors.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err as an ErrorResponse. Internal errors are logged
// and their message is not exposed.
func respondWithError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: "An internal server error occurred", Code: apperrors.CodeInternal})
		return
	}

	logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	resp := ErrorResponse{Error: err.Error()}
	if appErr, ok := apperrors.As(err); ok {
		resp.Error = appErr.Message
		resp.Code = appErr.Code
		resp.Details = appErr.Details
	}
	c.JSON(status, resp)
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: apperrors.CodeValidation})
}

// principalOrAbort returns the principal resolved by PrincipalMiddleware.
func principalOrAbort(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Code: apperrors.CodeUnauthenticated})
		return domain.Principal{}, false
	}
	return p, true
}
