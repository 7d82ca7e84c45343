package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// GormStore backs the catalog contract with a shared server connection.
// Unlike SQLiteStore it never owns its connection and uses portable SQL
// so it works against both postgres and sqlite.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := s.db.WithContext(ctx).Order("category, name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) Get(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) Add(ctx context.Context, product *models.Product) error {
	product.ID = 0
	normalizeImage(product)
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *GormStore) Update(ctx context.Context, product *models.Product) error {
	existing, err := s.Get(ctx, product.ID)
	if err != nil {
		return err
	}
	normalizeImage(product)
	product.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(product).Error
}

func (s *GormStore) Remove(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (s *GormStore) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.List(ctx)
	}
	pattern := "%" + strings.ToLower(keyword) + "%"
	var out []models.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(category)).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).
		Where("price >= ? AND price <= ?", min, max).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
