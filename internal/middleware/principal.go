package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// PrincipalResolver loads the acting principal from storage.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*domain.Principal, error)
}

// PrincipalMiddleware resolves the authenticated user into a Principal (tenant,
// global role and site roles, read from the database rather than the token) and
// stores it in the context. Must run after AuthMiddleware.
func PrincipalMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromContext(c)

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenTenantID, _ := GetTenantIDFromContext(c)

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Token subject no longer exists")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			logger.Error("Failed to resolve principal", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		if principal.TenantID != tokenTenantID {
			logger.Warn("Token tenant does not match user tenant",
				slog.String("token_tenant_id", tokenTenantID),
				slog.String("user_tenant_id", principal.TenantID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(string(principalKey), *principal)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalKey, *principal))
		c.Next()
	}
}
