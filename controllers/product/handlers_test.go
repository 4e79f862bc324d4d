package productcontroller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRouter(catalog *Catalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/products", GetProducts(catalog))
	r.GET("/api/products/:id", GetProductByID(catalog))
	r.POST("/api/products", CreateProduct(catalog))
	r.GET("/api/admin/products/export", ExportProductsToExcel(catalog))
	r.POST("/api/admin/products/import", ImportProductsFromExcel(catalog))
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProductsHandler(t *testing.T) {
	catalog, _ := newTestCatalog(t, store.DefaultProducts()...)
	r := newProductRouter(catalog)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/products?search=rtx&cat=gpu", nil))
	var filtered []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestGetProductsEmptyCatalog(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	w := serve(newProductRouter(catalog), httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetProductByIDHandler(t *testing.T) {
	catalog, _ := newTestCatalog(t, store.DefaultProducts()...)
	r := newProductRouter(catalog)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products/p1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"NVIDIA RTX 4070 Ti 12GB"`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/products/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, w.Body.String())
}

func TestCreateProductHandler(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	r := newProductRouter(catalog)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"title":"SSD 1TB","price":399.9,"cat":"storage"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "SSD 1TB", p.Title)

	req = httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"price":1}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"title is required"}`, w.Body.String())
}

func uploadRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImportHandlerRejectsNonWorkbook(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	r := newProductRouter(catalog)

	req := uploadRequest(t, "/api/admin/products/import", "products.xlsx", []byte("this is not a workbook"))
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid Excel file"}`, w.Body.String())
}

func TestImportHandlerHeaderOnly(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	r := newProductRouter(catalog)

	w := serve(r, uploadRequest(t, "/api/admin/products/import", "empty.xlsx", workbook(t, nil)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExcelHandlers(t *testing.T) {
	source, _ := newTestCatalog(t, store.DefaultProducts()...)
	w := serve(newProductRouter(source), httptest.NewRequest(http.MethodGet, "/api/admin/products/export", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")
	exported := w.Body.Bytes()

	target, _ := newTestCatalog(t)
	r := newProductRouter(target)

	w = serve(r, uploadRequest(t, "/api/admin/products/import", "products.xlsx", exported))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Created int `json:"created_count"`
		Skipped int `json:"skipped_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 0, resp.Skipped)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/api/admin/products/import", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
