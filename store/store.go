// Package store persists whole collections. Every write replaces the entire
// collection: concurrent writers are last-writer-wins, there is no locking.
package store

import (
	"context"
	"fmt"

	"github.com/infpro/storefront-api/models"
)

const (
	ProductsCollection = "products"
	UsersCollection    = "users"
	OrdersCollection   = "orders"
)

// Collection loads and saves one ordered array of records.
type Collection[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
	// Exists reports whether the collection was ever written.
	Exists(ctx context.Context) (bool, error)
}

type Store struct {
	Products Collection[models.Product]
	Users    Collection[models.User]
	Orders   Collection[models.Order]
}

// DefaultProducts is the catalog written on first start.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p1",
			Title:       "NVIDIA RTX 4070 Ti 12GB",
			Price:       4299.90,
			Cat:         "gpu",
			Img:         "https://images.unsplash.com/photo-1611078480916-2b1b5b0a9c5b?q=80&w=800&auto=format&fit=crop",
			Description: "Placa de vídeo topo de linha.",
		},
		{
			ID:          "p2",
			Title:       "AMD Ryzen 9 7900X",
			Price:       2599.00,
			Cat:         "cpu",
			Img:         "https://images.unsplash.com/photo-1593642634367-d91a135587b5?q=80&w=800&auto=format&fit=crop",
			Description: "Processador alto desempenho.",
		},
	}
}

// Seed writes the default catalog and empty user/order collections when they
// do not exist yet. Existing collections are left alone, even when empty.
func (s *Store) Seed(ctx context.Context) error {
	if err := seed(ctx, s.Products, DefaultProducts()); err != nil {
		return fmt.Errorf("seed %s: %w", ProductsCollection, err)
	}
	if err := seed(ctx, s.Users, []models.User{}); err != nil {
		return fmt.Errorf("seed %s: %w", UsersCollection, err)
	}
	if err := seed(ctx, s.Orders, []models.Order{}); err != nil {
		return fmt.Errorf("seed %s: %w", OrdersCollection, err)
	}
	return nil
}

func seed[T any](ctx context.Context, c Collection[T], defaults []T) error {
	ok, err := c.Exists(ctx)
	if err != nil || ok {
		return err
	}
	return c.Save(ctx, defaults)
}
