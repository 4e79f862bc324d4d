// Package respond writes API error bodies in the {"error": "..."} shape.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/apperrors"
)

// Error writes err with the status apperrors maps it to. 5xx errors are
// logged with their detail and answered with a generic message.
func Error(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(status, gin.H{"error": apperrors.PublicMessage(err)})
}

// Message writes a plain error body with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
