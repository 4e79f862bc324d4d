package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/respond"
)

// CreateProduct appends a product from a JSON body
// {title, price, cat, img, description}.
func CreateProduct(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.Message(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		product, err := catalog.CreateProduct(c.Request.Context(), input)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
