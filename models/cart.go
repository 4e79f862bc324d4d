package models

// CartItem is a product snapshot plus a quantity. Its identity is the product id.
type CartItem struct {
	Product
	Qty int `json:"qty"`
}
