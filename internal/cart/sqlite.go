package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// SQLiteStore backs the cart contract with an embedded database file.
// First access opens the file and creates the schema exactly once.
type SQLiteStore struct {
	path string

	initMu      sync.Mutex
	initialized bool
	conn        *gorm.DB
}

// NewSQLiteStore returns a store bound to the given database file.
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
		return nil, fmt.Errorf("opening cart db %q: %w", s.path, err)
	}
	if err := conn.AutoMigrate(&models.CartLine{}); err != nil {
		return nil, fmt.Errorf("migrating cart schema: %w", err)
	}
	s.conn = conn
	s.initialized = true
	return s.conn.WithContext(ctx), nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.CartLine, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.CartLine
	if err := db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int) (*models.CartLine, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var line models.CartLine
	if err := db.First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (s *SQLiteStore) FindByProduct(ctx context.Context, productID int) (*models.CartLine, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var line models.CartLine
	if err := db.First(&line, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (s *SQLiteStore) Add(ctx context.Context, line *models.CartLine) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	line.ID = 0
	return db.Create(line).Error
}

func (s *SQLiteStore) Update(ctx context.Context, line *models.CartLine) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	existing, err := s.Get(ctx, line.ID)
	if err != nil {
		return err
	}
	line.AddedAt = existing.AddedAt
	return db.Save(line).Error
}

func (s *SQLiteStore) Remove(ctx context.Context, id int) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return db.Delete(&models.CartLine{}, "id = ?", id).Error
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&models.CartLine{}).Error
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
