package ordercontroller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/infpro/storefront-api/apperrors"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 15, 4, 5, 123e6, time.FixedZone("BRT", -3*60*60))

func newTestService(t *testing.T, hub *Hub) (*Service, *store.FileCollection[models.Order]) {
	t.Helper()
	orders := store.NewFileCollection[models.Order](filepath.Join(t.TempDir(), "orders.json"))
	return NewService(orders, hub, WithClock(func() time.Time { return fixedNow })), orders
}

func sampleInput() models.OrderInput {
	return models.OrderInput{
		Items: []models.CartItem{
			{Product: models.Product{ID: "p1", Title: "GPU", Price: 100}, Qty: 2},
		},
		Total:    229.9,
		Customer: "Ana",
		Address:  "Rua A, 1",
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	svc, orders := newTestService(t, nil)

	order, err := svc.CreateOrder(ctx, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-1741629845123", order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, time.UTC, order.CreatedAt.Location())
	assert.True(t, order.CreatedAt.Equal(fixedNow))
	assert.Equal(t, 229.9, order.Total)

	stored, err := orders.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)
	assert.Equal(t, 2, stored[0].Items[0].Qty)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	ctx := context.Background()
	svc, orders := newTestService(t, nil)

	_, err := svc.CreateOrder(ctx, models.OrderInput{Customer: "Ana"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	exists, err := orders.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrdersAppendInOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	tick := fixedNow
	svc.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	first, err := svc.CreateOrder(ctx, sampleInput())
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, sampleInput())
	require.NoError(t, err)

	all, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestOrderHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, nil)
	r := gin.New()
	r.POST("/api/orders", CreateOrderHandler(svc))
	r.GET("/api/admin/orders", GetAllOrdersHandler(svc))

	body, err := json.Marshal(sampleInput())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	req = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[],"total":0}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"cart is empty"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestOrderFeedBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	svc, _ := newTestService(t, hub)

	r := gin.New()
	r.GET("/api/orders/ws", hub.ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/orders/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	created, err := svc.CreateOrder(context.Background(), sampleInput())
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got models.Order
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, created.ID, got.ID)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastDropsClientWithFullQueue(t *testing.T) {
	hub := NewHub()
	stalled := &feedClient{send: make(chan []byte, sendBuffer)}
	hub.clients[stalled] = struct{}{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < sendBuffer+1; i++ {
			hub.Broadcast(context.Background(), models.Order{ID: "ORD-" + strconv.Itoa(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a client that never reads")
	}

	assert.Equal(t, 0, hub.Count())
	queued := 0
	for range stalled.send {
		queued++
	}
	assert.Equal(t, sendBuffer, queued, "queue is closed after the buffered orders")
}

func TestCreateOrderNotDelayedByStalledFeedClient(t *testing.T) {
	hub := NewHub()
	hub.clients[&feedClient{send: make(chan []byte)}] = struct{}{}
	svc, _ := newTestService(t, hub)

	start := time.Now()
	_, err := svc.CreateOrder(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 0, hub.Count())
}
