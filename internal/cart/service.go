package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/metrics"
)

// ProductGetter resolves a product by id. Satisfied by the catalog store.
type ProductGetter interface {
	Get(ctx context.Context, id int) (*models.Product, error)
}

// Service is the cart access layer: quantity-merge adds, derived totals,
// and a count-changed notification on every confirmed mutation.
type Service interface {
	Items(ctx context.Context) ([]models.CartLine, error)
	ItemCount(ctx context.Context) (int, error)
	AddToCart(ctx context.Context, productID int) error
	UpdateQuantity(ctx context.Context, lineID, quantity int) error
	RemoveFromCart(ctx context.Context, lineID int) error
	ClearCart(ctx context.Context) error
	TotalPrice(ctx context.Context) (decimal.Decimal, error)
	SyncProduct(ctx context.Context, product *models.Product) error
	SubscribeCount(fn func(count int)) (unsubscribe func())
}

type service struct {
	store    Store
	products ProductGetter
	notifier *countNotifier
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService constructs the cart access layer.
func NewService(store Store, products ProductGetter, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product getter required")
	}
	return &service{
		store:    store,
		products: products,
		notifier: newCountNotifier(),
		logg:     logg,
		metrics:  m,
	}, nil
}

func (s *service) Items(ctx context.Context) ([]models.CartLine, error) {
	lines, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storeFault(ctx, "listing cart lines", err)
	}
	return lines, nil
}

// ItemCount is the sum of quantities across all lines.
func (s *service) ItemCount(ctx context.Context) (int, error) {
	lines, err := s.store.List(ctx)
	if err != nil {
		return 0, s.storeFault(ctx, "counting cart items", err)
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count, nil
}

// AddToCart merges into an existing line for the product or creates a new
// one with quantity 1. The product's current details are denormalized onto
// the line at this moment.
func (s *service) AddToCart(ctx context.Context, productID int) error {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) || pkgerrors.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return s.storeFault(ctx, "resolving product", err)
	}

	existing, err := s.store.FindByProduct(ctx, productID)
	switch {
	case err == nil:
		existing.Quantity++
		if err := s.store.Update(ctx, existing); err != nil {
			return s.storeFault(ctx, "updating cart line", err)
		}
	case errors.Is(err, ErrNotFound):
		line := &models.CartLine{
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductPrice:    product.Price,
			ProductImage:    productImage(product),
			ProductCategory: product.Category,
			Quantity:        1,
		}
		if err := s.store.Add(ctx, line); err != nil {
			return s.storeFault(ctx, "adding cart line", err)
		}
	default:
		return s.storeFault(ctx, "looking up cart line", err)
	}

	s.metrics.IncCartMutation("add")
	return s.notifyCount(ctx)
}

// UpdateQuantity replaces the line's quantity. A quantity of zero or less
// removes the line.
func (s *service) UpdateQuantity(ctx context.Context, lineID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, lineID)
	}

	line, err := s.store.Get(ctx, lineID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return s.storeFault(ctx, "loading cart line", err)
	}

	line.Quantity = quantity
	if err := s.store.Update(ctx, line); err != nil {
		return s.storeFault(ctx, "updating cart line", err)
	}

	s.metrics.IncCartMutation("update")
	return s.notifyCount(ctx)
}

func (s *service) RemoveFromCart(ctx context.Context, lineID int) error {
	if err := s.store.Remove(ctx, lineID); err != nil {
		return s.storeFault(ctx, "removing cart line", err)
	}
	s.metrics.IncCartMutation("remove")
	return s.notifyCount(ctx)
}

// ClearCart empties the store and notifies zero, including when the cart
// was already empty.
func (s *service) ClearCart(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return s.storeFault(ctx, "clearing cart", err)
	}
	s.metrics.IncCartMutation("clear")
	s.notifier.notify(0)
	return nil
}

// TotalPrice recomputes the cart total on every call.
func (s *service) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	lines, err := s.store.List(ctx)
	if err != nil {
		return decimal.Zero, s.storeFault(ctx, "totaling cart", err)
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total, nil
}

// SyncProduct overwrites the denormalized fields of the matching line so a
// catalog edit is never charged at a stale price. No-op when the product
// has no line in the cart.
func (s *service) SyncProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return nil
	}
	line, err := s.store.FindByProduct(ctx, product.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return s.storeFault(ctx, "looking up cart line", err)
	}

	line.ProductName = product.Name
	line.ProductPrice = product.Price
	line.ProductImage = productImage(product)
	line.ProductCategory = product.Category
	if err := s.store.Update(ctx, line); err != nil {
		return s.storeFault(ctx, "syncing cart line", err)
	}
	return nil
}

func (s *service) SubscribeCount(fn func(count int)) func() {
	return s.notifier.subscribe(fn)
}

// notifyCount recomputes the item count and fans it out. Fires only after
// a mutation has been confirmed by the store.
func (s *service) notifyCount(ctx context.Context) error {
	count, err := s.ItemCount(ctx)
	if err != nil {
		return err
	}
	s.notifier.notify(count)
	return nil
}

func (s *service) storeFault(ctx context.Context, action string, err error) error {
	if s.logg != nil {
		s.logg.Error(ctx, "cart store failure", err)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action+" failed")
}

func productImage(product *models.Product) string {
	if product.Image == "" {
		return models.DefaultProductImage
	}
	return product.Image
}
