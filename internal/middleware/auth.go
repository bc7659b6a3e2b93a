package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ajoapp/backend/internal/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user id.
	UserIDKey = "user_id"
	// EmailKey is the gin context key for the authenticated user's email.
	EmailKey = "email"
)

// UserID extracts the authenticated user id from the gin context.
// Returns empty string if the request was not authenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get(UserIDKey)
	s, _ := id.(string)
	return s
}

// AuthRequired validates the Bearer token and stores the caller's
// identity in the request context. Requests without a valid token are
// rejected with 401.
func AuthRequired(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
