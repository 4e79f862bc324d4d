package ordercontroller

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/apperrors"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/respond"
	"github.com/infpro/storefront-api/store"
)

// Service appends orders and announces them on the live feed. Orders are
// never updated or deleted.
type Service struct {
	orders store.Collection[models.Order]
	hub    *Hub
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the order service. hub may be nil when no live feed is
// served.
func NewService(orders store.Collection[models.Order], hub *Hub, opts ...Option) *Service {
	s := &Service{orders: orders, hub: hub, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate order reference, e.g. ORD-1715520000123
func orderRef(at time.Time) string {
	return fmt.Sprintf("ORD-%d", at.UnixMilli())
}

func (s *Service) CreateOrder(ctx context.Context, in models.OrderInput) (models.Order, error) {
	const op = "order.CreateOrder"

	if len(in.Items) == 0 {
		return models.Order{}, apperrors.Validation(op, "cart is empty")
	}

	now := s.now()
	order := models.Order{
		ID:        orderRef(now),
		Items:     in.Items,
		Total:     in.Total,
		Customer:  strings.TrimSpace(in.Customer),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now.UTC(),
		Status:    models.OrderStatusPending,
	}

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	orders = append(orders, order)
	if err := s.orders.Save(ctx, orders); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total,
	)

	if s.hub != nil {
		s.hub.Broadcast(ctx, order)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("order.ListOrders: %w", err)
	}
	return orders, nil
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.OrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.Message(c, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.CreateOrder(c.Request.Context(), input)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
