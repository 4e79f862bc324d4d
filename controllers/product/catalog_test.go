package productcontroller

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/infpro/storefront-api/apperrors"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func newTestCatalog(t *testing.T, seed ...models.Product) (*Catalog, *store.FileCollection[models.Product]) {
	t.Helper()
	products := store.NewFileCollection[models.Product](filepath.Join(t.TempDir(), "products.json"))
	if len(seed) > 0 {
		require.NoError(t, products.Save(context.Background(), seed))
	}
	return NewCatalog(products), products
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t, store.DefaultProducts()...)

	p, err := catalog.GetProduct(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "AMD Ryzen 9 7900X", p.Title)

	_, err = catalog.GetProduct(ctx, "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCreateProductAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	catalog, products := newTestCatalog(t, store.DefaultProducts()...)

	created, err := catalog.CreateProduct(ctx, models.ProductInput{Title: " Mouse ", Price: 99.9, Cat: "acc"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Mouse", created.Title)

	stored, err := products.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "p1", stored[0].ID)
	assert.Equal(t, "p2", stored[1].ID)
	assert.Equal(t, created, stored[2])
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input models.ProductInput
	}{
		{"missing title", models.ProductInput{Price: 10}},
		{"blank title", models.ProductInput{Title: "   ", Price: 10}},
		{"negative price", models.ProductInput{Title: "X", Price: -1}},
		{"nan price", models.ProductInput{Title: "X", Price: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, products := newTestCatalog(t)
			_, err := catalog.CreateProduct(ctx, tt.input)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))

			exists, err := products.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestCatalog(t, store.DefaultProducts()...)

	var buf bytes.Buffer
	require.NoError(t, source.ExportProducts(ctx, &buf))

	book, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, book.Sheets, 1)
	rows := book.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Title", rows[0].Cells[1].Value)
	assert.Equal(t, "p1", rows[1].Cells[0].Value)

	target, products := newTestCatalog(t)
	result, err := target.ImportProducts(ctx, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Created, 2)

	stored, err := products.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for i, want := range store.DefaultProducts() {
		assert.NotEqual(t, want.ID, stored[i].ID)
		assert.Equal(t, want.Title, stored[i].Title)
		assert.InDelta(t, want.Price, stored[i].Price, 1e-9)
		assert.Equal(t, want.Cat, stored[i].Cat)
	}
}

func TestImportSkipsBadRows(t *testing.T) {
	ctx := context.Background()
	data := workbook(t, [][]string{
		{"", "Keyboard", "199.5", "acc", "", "Mechanical"},
		{"", "", "10", "acc", "", ""},
		{"", "Monitor", "abc", "mon", "", ""},
		{"", "Cable", "-3", "acc", "", ""},
	})

	catalog, _ := newTestCatalog(t)
	result, err := catalog.ImportProducts(ctx, bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "Keyboard", result.Created[0].Title)
	assert.Equal(t, 199.5, result.Created[0].Price)
}

func TestImportHeaderOnly(t *testing.T) {
	data := workbook(t, nil)
	catalog, _ := newTestCatalog(t)
	_, err := catalog.ImportProducts(context.Background(), bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, errEmptySheet)
}

func TestImportRejectsNonWorkbook(t *testing.T) {
	data := []byte("title,price\nMouse,10\n")
	catalog, products := newTestCatalog(t)

	_, err := catalog.ImportProducts(context.Background(), bytes.NewReader(data), int64(len(data)))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "invalid Excel file", apperrors.PublicMessage(err))

	exists, err := products.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

// workbook builds an xlsx file with the standard header row followed by rows.
func workbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range sheetHeaders {
		header.AddCell().SetString(h)
	}
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}
