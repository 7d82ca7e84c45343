package orders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// Repository persists submitted orders and their item snapshots.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &Repository{db: db}, nil
}

// Create inserts the order together with its items in one transaction.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// List returns all orders with nested items, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
