package orders

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
	pkgerrors "github.com/hoangnd-dev/storefront/pkg/errors"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/types"
)

// Service is the server-side order intake: validate the wire request,
// persist the order with its item snapshots, and list order history.
type Service interface {
	Create(ctx context.Context, req types.OrderRequest) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
}

type service struct {
	repo     *Repository
	validate *validator.Validate
	logg     *logger.Logger
}

func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		repo:     repo,
		validate: validator.New(),
		logg:     logg,
	}, nil
}

// Create validates the request and persists it. The stored total is
// recomputed from the item snapshots, never trusted from the client.
func (s *service) Create(ctx context.Context, req types.OrderRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order")
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Note:            req.Note,
		Items:           make([]models.OrderItem, 0, len(req.Items)),
	}

	total := decimal.Zero
	for _, item := range req.Items {
		lineTotal := item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			TotalPrice:   lineTotal,
		})
	}
	order.TotalPrice = total

	if err := s.repo.Create(ctx, order); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persisting order failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving order failed")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "order persisted")
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "listing orders failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders failed")
	}
	return found, nil
}
