package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/auth"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// TokenParser verifies a session token.
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// ValidateToken requires "Authorization: Bearer <token>" (a bare token is
// accepted too) and stores the user id and email in the context.
func ValidateToken(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		tokenString := header
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			tokenString = strings.TrimSpace(header[7:])
		}

		claims, err := parser.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
