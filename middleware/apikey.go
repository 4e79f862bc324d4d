package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey guards admin endpoints with the X-API-KEY header. An empty
// configured key rejects every request.
func ValidateAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-KEY")
		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
