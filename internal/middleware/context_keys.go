package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

const (
	// userIDKey stores the authenticated user's ID in the request context.
	userIDKey = contextKey("userID")
	// roleKey stores the authenticated user's role in the request context.
	roleKey = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context, with a boolean indicating whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the authenticated user's role from the
// request context.
func GetRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.UserRole)
	if !ok || !role.IsValid() {
		return "", false
	}
	return role, true
}
