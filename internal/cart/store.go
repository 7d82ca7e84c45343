package cart

import (
	"context"
	"errors"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// ErrNotFound signals a cart line lookup miss.
var ErrNotFound = errors.New("cart: line not found")

// Store is the cart persistence contract. Lines are keyed by line id and
// additionally addressable by product id (one line per distinct product).
type Store interface {
	List(ctx context.Context) ([]models.CartLine, error)
	Get(ctx context.Context, id int) (*models.CartLine, error)
	FindByProduct(ctx context.Context, productID int) (*models.CartLine, error)
	Add(ctx context.Context, line *models.CartLine) error
	Update(ctx context.Context, line *models.CartLine) error
	Remove(ctx context.Context, id int) error
	Clear(ctx context.Context) error
}
