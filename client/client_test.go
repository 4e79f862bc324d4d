package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/auth"
	"github.com/infpro/storefront-api/checkout"
	ordercontroller "github.com/infpro/storefront-api/controllers/order"
	productcontroller "github.com/infpro/storefront-api/controllers/product"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/routes"
	"github.com/infpro/storefront-api/session"
	"github.com/infpro/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.OpenFiles(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, st.Seed(context.Background()))

	r := routes.NewRouter(routes.Dependencies{
		Catalog: productcontroller.NewCatalog(st.Products),
		Auth:    auth.NewService(st.Users, "client-secret", auth.WithBcryptCost(bcrypt.MinCost)),
		Orders:  ordercontroller.NewService(st.Orders, nil),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, st
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	c := New(srv.URL + "/")

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	p, err := c.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "gpu", p.Cat)

	_, err = c.GetProduct(ctx, "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "product not found", apiErr.Message)

	created, err := c.CreateProduct(ctx, models.ProductInput{Title: "Fonte 750W", Price: 549, Cat: "psu"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := c.SearchProducts(ctx, "fonte", "psu")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
}

func TestRegisterLoginMe(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Register(ctx, "Ana", "ana@example.com", "pw")
	require.NoError(t, err)

	_, err = c.Login(ctx, "ana@example.com", "bad")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid credentials", apiErr.Message)

	resp, err := c.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	me, err := New(srv.URL, WithToken(resp.Token)).Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestCheckoutThroughClient(t *testing.T) {
	ctx := context.Background()
	srv, st := newTestServer(t)
	c := New(srv.URL)

	sess, err := session.Load(ctx, session.NewMemoryStorage())
	require.NoError(t, err)
	require.NoError(t, sess.AddToCart(ctx, models.Product{ID: "p9", Title: "Item", Price: 100}))
	require.NoError(t, sess.AddToCart(ctx, models.Product{ID: "p9", Title: "Item", Price: 100}))

	proc := checkout.NewProcessor(c, checkout.WithDelay(0))
	conf, err := proc.Process(ctx, sess, checkout.Customer{Name: "Ana", Address: "Rua A"})
	require.NoError(t, err)
	assert.Equal(t, 229.9, conf.Order.Total)
	assert.Equal(t, 2, conf.ItemCount)
	assert.False(t, sess.Cart.IsEmpty())

	require.NoError(t, conf.Acknowledge(ctx))
	assert.True(t, sess.Cart.IsEmpty())

	orders, err := st.Orders.Load(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].Customer)
}

func TestReviews(t *testing.T) {
	srv, _ := newTestServer(t)
	reviews, err := New(srv.URL).Reviews(context.Background())
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
