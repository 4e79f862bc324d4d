package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/respond"
)

// GetProductByID returns a single product.
// URL param: /api/products/:id
func GetProductByID(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
