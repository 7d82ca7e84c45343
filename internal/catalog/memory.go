package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// MemoryStore keeps the catalog in process memory. Contents are lost on
// restart; the durable variant backs the same contract with a SQLite file.
type MemoryStore struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

// NewMemoryStore returns an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Add(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.nextID
	s.nextID++
	normalizeImage(product)
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	s.products = append(s.products, *product)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == product.ID {
			normalizeImage(product)
			// Creation timestamp is immutable after Add.
			product.CreatedAt = p.CreatedAt
			s.products[i] = *product
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.List(ctx)
	}
	needle := strings.ToLower(keyword)

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}
