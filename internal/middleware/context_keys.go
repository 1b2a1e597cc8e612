package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx retrieves the authenticated user ID from a plain context.
func UserIDFromCtx(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// setUserID stores the user ID in both the Gin context and the request context.
func setUserID(c *gin.Context, userID int64) {
	c.Set(string(userIDKey), userID)
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		return UserIDFromCtx(c.Request.Context())
	}

	userID, ok := userIDVal.(int64)
	if !ok {
		return 0, false
	}

	return userID, true
}
