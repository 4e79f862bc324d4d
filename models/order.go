package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the store
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping
)

// Order is an append-only record of a checked-out cart.
type Order struct {
	ID        string      `json:"id"`
	Items     []CartItem  `json:"items"`
	Total     float64     `json:"total"`
	Customer  string      `json:"customer"`
	Address   string      `json:"address"`
	CreatedAt time.Time   `json:"createdAt"`
	Status    OrderStatus `json:"status"`
}

// OrderInput is the body accepted by POST /api/orders.
type OrderInput struct {
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
	Customer string     `json:"customer"`
	Address  string     `json:"address"`
}
