// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "cart_session"

// CartSession ensures every shopper has a session ID for their cart.
// Guests get a cookie on first contact; the same ID keys the cart in
// Redis for its whole lifetime.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			// 30 days, matching the cart TTL
			c.SetCookie(sessionCookieName, sessionID, 30*24*3600, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionIDFromContext extracts the cart session ID from gin context
func GetSessionIDFromContext(c *gin.Context) string {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return ""
	}
	return sessionID.(string)
}
