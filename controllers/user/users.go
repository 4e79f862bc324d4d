package usercontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/auth"
	"github.com/infpro/storefront-api/middleware"
	"github.com/infpro/storefront-api/respond"
)

// GET /api/auth/me
func GetMe(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)
		if userID == "" {
			respond.Message(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := svc.FindUser(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user.Public())
	}
}

// GET /api/admin/users
func GetAllUsers(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
