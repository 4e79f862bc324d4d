package productcontroller

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/infpro/storefront-api/apperrors"
	"github.com/infpro/storefront-api/models"
	"github.com/infpro/storefront-api/store"
)

// Catalog lists, reads and creates products. Anyone may create products:
// there is no role check on this path yet.
type Catalog struct {
	products store.Collection[models.Product]
	newID    func() string
}

func NewCatalog(products store.Collection[models.Product]) *Catalog {
	return &Catalog{products: products, newID: uuid.NewString}
}

func (c *Catalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := c.products.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListProducts: %w", err)
	}
	return products, nil
}

func (c *Catalog) GetProduct(ctx context.Context, id string) (models.Product, error) {
	products, err := c.products.Load(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, apperrors.NotFound("catalog.GetProduct", "product not found")
}

func (c *Catalog) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	created, err := c.createProducts(ctx, []models.ProductInput{in})
	if err != nil {
		return models.Product{}, err
	}
	return created[0], nil
}

// createProducts validates every input, then appends them all in a single
// write.
func (c *Catalog) createProducts(ctx context.Context, inputs []models.ProductInput) ([]models.Product, error) {
	const op = "catalog.CreateProduct"

	created := make([]models.Product, 0, len(inputs))
	for _, in := range inputs {
		if err := validateProduct(in); err != nil {
			return nil, apperrors.Validation(op, err.Error())
		}
		created = append(created, models.Product{
			ID:          c.newID(),
			Title:       strings.TrimSpace(in.Title),
			Price:       in.Price,
			Cat:         strings.TrimSpace(in.Cat),
			Img:         strings.TrimSpace(in.Img),
			Description: in.Description,
		})
	}
	if len(created) == 0 {
		return created, nil
	}

	products, err := c.products.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	products = append(products, created...)
	if err := c.products.Save(ctx, products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slog.InfoContext(ctx, "products created", "count", len(created))
	return created, nil
}

func validateProduct(in models.ProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return fmt.Errorf("price must be a non-negative number")
	}
	return nil
}
