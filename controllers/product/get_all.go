package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/respond"
)

// GetProducts returns the catalog in stored order. Optional query params
// "search" (title substring) and "cat" narrow the list.
func GetProducts(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}

		search, cat := c.Query("search"), c.Query("cat")
		if search != "" || cat != "" {
			products = models.FilterProducts(products, search, cat)
		}
		c.JSON(http.StatusOK, products)
	}
}
