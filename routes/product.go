package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/infpro/storefront-api/controllers/product"
)

func SetupProductRoutes(r *gin.Engine, deps Dependencies) {
	products := r.Group("/api/products")
	{
		products.GET("", productcontroller.GetProducts(deps.Catalog))
		products.GET("/:id", productcontroller.GetProductByID(deps.Catalog))
		products.POST("", productcontroller.CreateProduct(deps.Catalog))
	}
}
