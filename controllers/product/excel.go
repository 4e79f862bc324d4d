package productcontroller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/apperrors"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/respond"
	"github.com/tealeg/xlsx"
)

// Spreadsheet columns, shared by import and export.
var sheetHeaders = []string{"ID", "Title", "Price", "Cat", "Img", "Description"}

type ImportResult struct {
	Created []models.Product `json:"created"`
	Skipped int              `json:"skipped_count"`
}

// ImportProducts reads the first sheet of an xlsx workbook and creates one
// product per valid row. The ID column is ignored: imported products always
// get fresh ids. Rows without a title or with a bad price are skipped.
func (c *Catalog) ImportProducts(ctx context.Context, r io.ReaderAt, size int64) (ImportResult, error) {
	const op = "catalog.ImportProducts"

	book, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		slog.InfoContext(ctx, "rejected product workbook", "error", err)
		return ImportResult{}, apperrors.Validation(op, "invalid Excel file")
	}
	if len(book.Sheets) == 0 || book.Sheets[0].MaxRow < 2 {
		return ImportResult{}, errEmptySheet
	}

	sheet := book.Sheets[0]
	var inputs []models.ProductInput
	skipped := 0

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(index int) string {
			if row != nil && index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].Value)
			}
			return ""
		}

		title := get(1)
		price, err := strconv.ParseFloat(get(2), 64)
		if title == "" || err != nil || validateProduct(models.ProductInput{Title: title, Price: price}) != nil {
			skipped++
			continue
		}

		inputs = append(inputs, models.ProductInput{
			Title:       title,
			Price:       price,
			Cat:         get(3),
			Img:         get(4),
			Description: get(5),
		})
	}

	created, err := c.createProducts(ctx, inputs)
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Created: created, Skipped: skipped}, nil
}

// ExportProducts writes the catalog as an xlsx workbook.
func (c *Catalog) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range sheetHeaders {
		header.AddCell().SetString(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Title)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetString(p.Cat)
		row.AddCell().SetString(p.Img)
		row.AddCell().SetString(p.Description)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// POST /api/admin/products/import (multipart field "file")
func ImportProductsFromExcel(catalog *Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			respond.Message(c, http.StatusBadRequest, "Excel file is required")
			return
		}

		file, err := header.Open()
		if err != nil {
			respond.Message(c, http.StatusInternalServerError, "Failed to open Excel file")
			return
		}
		defer file.Close()

		result, err := catalog.ImportProducts(c.Request.Context(), file, header.Size)
		if err == errEmptySheet {
			respond.Message(c, http.StatusBadRequest, "Excel file is empty or missing header row")
			return
		}
		if err != nil {
			respond.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": len(result.Created),
			"skipped_count": result.Skipped,
			"created":       result.Created,
		})
	}
}
