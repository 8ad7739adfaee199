package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/mma_accounts/internal/core/scope"
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID := scope.UserID(c.Request.Context())
	return userID, userID != ""
}
