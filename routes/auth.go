package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/auth"
	usercontroller "github.com/infpro/storefront-api/controllers/user"
	"github.com/infpro/storefront-api/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Dependencies) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(deps.Auth))
		authGroup.POST("/login", auth.LoginHandler(deps.Auth))

		// JWT-protected
		authGroup.GET("/me", middleware.ValidateToken(deps.Auth), usercontroller.GetMe(deps.Auth))
	}
}
