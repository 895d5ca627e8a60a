package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDKey is the context key the middleware stores the user ID under.
const userIDKey = "userID"

// Middleware rejects requests without a valid bearer token and stores the
// authenticated user's ID in the request context.
func Middleware(tokens Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the request context. It
// must only be called behind the Middleware.
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(userIDKey)

	userID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return userID
}
