package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey and roleKey hold the authenticated caller in the request context.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// Roles carried in the token's role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx reads the user ID stored by AuthMiddleware in a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext returns the caller's role, empty when unauthenticated.
func GetRoleFromContext(c *gin.Context) string {
	if roleVal, exists := c.Get(string(roleKey)); exists {
		if role, ok := roleVal.(string); ok {
			return role
		}
	}
	role, _ := c.Request.Context().Value(roleKey).(string)
	return role
}
