package middleware

import (
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SingleUser attributes every request to the legacy owner. It replaces RequireSession
// when the application runs on the flat file store, which has no accounts.
func SingleUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		setUserID(c, domain.LegacyOwnerID)
		c.Next()
	}
}
