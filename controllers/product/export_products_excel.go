package productcontroller

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/respond"
)

var errEmptySheet = errors.New("workbook has no data rows")

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/admin/products/export
func ExportProductsToExcel(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var buf bytes.Buffer
		if err := catalog.ExportProducts(c.Request.Context(), &buf); err != nil {
			respond.Error(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
