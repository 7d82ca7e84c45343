package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// SQLiteStore backs the catalog contract with an embedded database file.
// Schema creation happens lazily on first access; the init guard ensures
// concurrent first calls create it exactly once and never run against an
// unopened connection.
type SQLiteStore struct {
	path string

	initMu      sync.Mutex
	initialized bool
	conn        *gorm.DB
}

// NewSQLiteStore returns a store bound to the given database file. The
// file is opened and migrated on first use, not here.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) db(ctx context.Context) (*gorm.DB, error) {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.initialized {
		return s.conn.WithContext(ctx), nil
	}

	conn, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening catalog db %q: %w", s.path, err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("migrating catalog schema: %w", err)
	}
	s.conn = conn
	s.initialized = true
	return s.conn.WithContext(ctx), nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.Product, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	if err := db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int) (*models.Product, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *SQLiteStore) Add(ctx context.Context, product *models.Product) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	product.ID = 0
	normalizeImage(product)
	return db.Create(product).Error
}

func (s *SQLiteStore) Update(ctx context.Context, product *models.Product) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	existing, err := s.Get(ctx, product.ID)
	if err != nil {
		return err
	}
	normalizeImage(product)
	product.CreatedAt = existing.CreatedAt
	return db.Save(product).Error
}

func (s *SQLiteStore) Remove(ctx context.Context, id int) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return db.Delete(&models.Product{}, "id = ?", id).Error
}

func (s *SQLiteStore) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.List(ctx)
	}
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	pattern := "%" + keyword + "%"
	var out []models.Product
	err = db.
		Where("name LIKE ? COLLATE NOCASE OR category LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE",
			pattern, pattern, pattern).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	if err := db.Where("category = ? COLLATE NOCASE", category).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	if err := db.Where("price >= ? AND price <= ?", min, max).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Categories(ctx context.Context) ([]string, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	err = db.Model(&models.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the underlying connection if it was ever opened.
func (s *SQLiteStore) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if !s.initialized {
		return nil
	}
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
