// Package cart holds the client-side shopping cart: an ordered list of line
// items with at most one item per product id and every qty >= 1.
package cart

import "github.com/infpro/storefront-api/models"

type Cart struct {
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// FromItems rebuilds a cart from persisted items. Duplicate ids are merged
// into the first occurrence, a missing or zero qty counts as 1 and items with
// a negative qty are dropped.
func FromItems(items []models.CartItem) *Cart {
	c := New()
	for _, it := range items {
		if it.Qty < 0 {
			continue
		}
		if it.Qty == 0 {
			it.Qty = 1
		}
		if i := c.index(it.ID); i >= 0 {
			c.items[i].Qty += it.Qty
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Add increments the qty of the product's line item, or appends a new item
// with qty 1.
func (c *Cart) Add(p models.Product) {
	if i := c.index(p.ID); i >= 0 {
		c.items[i].Qty++
		return
	}
	c.items = append(c.items, models.CartItem{Product: p, Qty: 1})
}

// Remove drops the item with the given product id, if any.
func (c *Cart) Remove(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// SetQuantity sets an item's qty. A qty <= 0 removes the item; unknown ids
// are ignored.
func (c *Cart) SetQuantity(id string, qty int) {
	i := c.index(id)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.Remove(id)
		return
	}
	c.items[i].Qty = qty
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in cart order.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Qty
	}
	return n
}

func (c *Cart) Totals() Totals {
	return ComputeTotals(c.items)
}

func (c *Cart) index(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
