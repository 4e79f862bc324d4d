package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/respond"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func RegisterHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Message(c, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/auth/login
func LoginHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Message(c, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
