package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// ErrNotFound signals an id lookup miss. Callers treat it as an absent
// value, not a fault.
var ErrNotFound = errors.New("catalog: product not found")

// Store is the catalog contract. Two implementations exist: an in-memory
// store and a durable SQLite-backed store, selected by configuration.
type Store interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int) (*models.Product, error)
	Add(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Remove(ctx context.Context, id int) error
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

func normalizeImage(product *models.Product) {
	if product.Image == "" {
		product.Image = models.DefaultProductImage
	}
}
