package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/hoangnd-dev/storefront/internal/catalog"
	"github.com/hoangnd-dev/storefront/internal/gateway"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/metrics"
)

// cartSyncer pushes edited product details into any matching cart line.
// Satisfied by the cart service.
type cartSyncer interface {
	SyncProduct(ctx context.Context, product *models.Product) error
}

// Service is the product access layer. GetAll prefers the remote gateway
// and falls back to the local catalog store; every other operation is
// local-only.
type Service interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int) (*models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Add(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
}

type service struct {
	store   catalog.Store
	gateway gateway.Client
	cart    cartSyncer
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewService constructs the product access layer. The cart syncer is
// optional; without it catalog edits simply do not reach open carts.
func NewService(store catalog.Store, gw gateway.Client, cart cartSyncer, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if gw == nil {
		return nil, fmt.Errorf("gateway client required")
	}
	return &service{
		store:   store,
		gateway: gw,
		cart:    cart,
		logg:    logg,
		metrics: m,
	}, nil
}

// GetAll returns the remote catalog when it is reachable and non-empty,
// otherwise the local store's contents. An empty remote result means
// "unavailable", never "the catalog is empty".
func (s *service) GetAll(ctx context.Context) ([]models.Product, error) {
	if remote := s.gateway.FetchProducts(ctx); len(remote) > 0 {
		return remote, nil
	}

	if s.logg != nil {
		s.logg.Warn(ctx, "remote catalog unavailable, serving local store")
	}
	s.metrics.IncFallbackRead()

	local, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storeFault(ctx, "listing products", err)
	}
	return local, nil
}

func (s *service) Get(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, s.storeFault(ctx, "loading product", err)
	}
	return product, nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	found, err := s.store.Search(ctx, keyword)
	if err != nil {
		return nil, s.storeFault(ctx, "searching products", err)
	}
	return found, nil
}

func (s *service) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	found, err := s.store.ByCategory(ctx, category)
	if err != nil {
		return nil, s.storeFault(ctx, "filtering products by category", err)
	}
	return found, nil
}

func (s *service) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	found, err := s.store.ByPriceRange(ctx, min, max)
	if err != nil {
		return nil, s.storeFault(ctx, "filtering products by price", err)
	}
	return found, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, s.storeFault(ctx, "listing categories", err)
	}
	return categories, nil
}

func (s *service) Add(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.store.Add(ctx, product); err != nil {
		return s.storeFault(ctx, "adding product", err)
	}
	return nil
}

// Update persists the full record and re-syncs any matching cart line so
// an open cart never keeps a stale price.
func (s *service) Update(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.store.Update(ctx, product); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return s.storeFault(ctx, "updating product", err)
	}

	if s.cart != nil {
		if err := s.cart.SyncProduct(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return s.storeFault(ctx, "deleting product", err)
	}
	return nil
}

func validateProduct(product *models.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product required")
	}

	var problems error
	if len(strings.TrimSpace(product.Name)) < 2 {
		problems = multierr.Append(problems, fmt.Errorf("name must be at least 2 characters"))
	}
	if product.Price.IsNegative() {
		problems = multierr.Append(problems, fmt.Errorf("price must not be negative"))
	}
	if strings.TrimSpace(product.Description) == "" {
		problems = multierr.Append(problems, fmt.Errorf("description is required"))
	}
	if strings.TrimSpace(product.Category) == "" {
		problems = multierr.Append(problems, fmt.Errorf("category is required"))
	}
	if problems != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, problems, "invalid product")
	}
	return nil
}

func (s *service) storeFault(ctx context.Context, action string, err error) error {
	if s.logg != nil {
		s.logg.Error(ctx, "catalog store failure", err)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action+" failed")
}
