package middleware

import (
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of every value this package stores in a context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	tenantIDKey  = contextKey("tenantID")
	principalKey = contextKey("principal")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringValue(c, userIDKey)
}

// GetTenantIDFromContext retrieves the tenant claim of the access token.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	return stringValue(c, tenantIDKey)
}

// GetPrincipalFromContext retrieves the principal resolved by PrincipalMiddleware.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	if val, exists := c.Get(string(principalKey)); exists {
		p, ok := val.(domain.Principal)
		return p, ok
	}
	p, ok := c.Request.Context().Value(principalKey).(domain.Principal)
	return p, ok
}

func stringValue(c *gin.Context, key contextKey) (string, bool) {
	if val, exists := c.Get(string(key)); exists {
		s, ok := val.(string)
		return s, ok && s != ""
	}
	// check in the request context as well
	s, ok := c.Request.Context().Value(key).(string)
	return s, ok && s != ""
}
