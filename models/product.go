package models

import "strings"

// Product is a catalog entry. Products are created once and never mutated.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Cat         string  `json:"cat"`
	Img         string  `json:"img"`
	Description string  `json:"description"`
}

// ProductInput is the body accepted by POST /api/products.
type ProductInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Cat         string  `json:"cat"`
	Img         string  `json:"img"`
	Description string  `json:"description"`
}

// FilterProducts keeps the products whose title contains search
// (case-insensitive) and whose category equals cat. An empty search matches
// every title; an empty cat or "all" matches every category.
func FilterProducts(products []Product, search, cat string) []Product {
	search = strings.ToLower(strings.TrimSpace(search))
	cat = strings.TrimSpace(cat)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if cat != "" && cat != "all" && p.Cat != cat {
			continue
		}
		out = append(out, p)
	}
	return out
}
