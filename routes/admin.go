package routes

import (
	"github.com/gin-gonic/gin"
	ordercontroller "github.com/infpro/storefront-api/controllers/order"
	productcontroller "github.com/infpro/storefront-api/controllers/product"
	usercontroller "github.com/infpro/storefront-api/controllers/user"
	"github.com/infpro/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, deps Dependencies) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.AdminAPIKey))
	{
		adminGroup.GET("/users", usercontroller.GetAllUsers(deps.Auth))
		adminGroup.GET("/orders", ordercontroller.GetAllOrdersHandler(deps.Orders))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(deps.Catalog))
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(deps.Catalog))
		}
	}
}
