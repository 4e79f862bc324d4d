// Package checkout turns a session cart into an order. The cart is cleared
// only when the shopper acknowledges the confirmation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/infpro/storefront-api/cart"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/session"
)

var ErrEmptyCart = errors.New("cart is empty")

// DefaultDelay is the pause shown as "processing your order".
const DefaultDelay = 2 * time.Second

// OrderSubmitter sends an order to the Order Service.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, in models.OrderInput) (models.Order, error)
}

// Clock abstracts the processing delay so tests do not sleep.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Customer struct {
	Name    string
	Address string
}

type Processor struct {
	submitter OrderSubmitter
	clock     Clock
	delay     time.Duration
}

type Option func(*Processor)

func WithClock(c Clock) Option {
	return func(p *Processor) { p.clock = c }
}

func WithDelay(d time.Duration) Option {
	return func(p *Processor) { p.delay = d }
}

func NewProcessor(submitter OrderSubmitter, opts ...Option) *Processor {
	p := &Processor{
		submitter: submitter,
		clock:     realClock{},
		delay:     DefaultDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process submits the session's cart. It fails with ErrEmptyCart without
// side effects when there is nothing to buy. On success the cart is still
// intact; call Confirmation.Acknowledge to clear it.
func (p *Processor) Process(ctx context.Context, sess *session.Session, customer Customer) (*Confirmation, error) {
	if sess.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := sess.Cart.Items()
	itemCount := sess.Cart.ItemCount()
	totals := cart.ComputeTotals(items)

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.clock.After(p.delay):
		}
	}

	order, err := p.submitter.SubmitOrder(ctx, models.OrderInput{
		Items:    items,
		Total:    totals.Total.InexactFloat64(),
		Customer: strings.TrimSpace(customer.Name),
		Address:  strings.TrimSpace(customer.Address),
	})
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	slog.InfoContext(ctx, "order submitted", "order_id", order.ID, "items", len(items))

	return &Confirmation{
		Order:     order,
		Totals:    totals,
		ItemCount: itemCount,
		sess:      sess,
	}, nil
}

// Confirmation is the summary shown after a successful checkout.
type Confirmation struct {
	Order     models.Order
	Totals    cart.Totals
	ItemCount int

	sess *session.Session
	once sync.Once
	err  error
}

// Acknowledge clears and persists the session cart. Only the first call has
// any effect; later calls return the first call's result.
func (c *Confirmation) Acknowledge(ctx context.Context) error {
	c.once.Do(func() {
		c.err = c.sess.ClearCart(ctx)
	})
	return c.err
}
