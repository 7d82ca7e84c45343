package cart

import (
	"context"
	"sync"
	"time"

	"github.com/hoangnd-dev/storefront/pkg/db/models"
)

// MemoryStore keeps cart lines in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	lines  []models.CartLine
	nextID int
}

// NewMemoryStore returns an empty in-memory cart.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int) (*models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByProduct(ctx context.Context, productID int) (*models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.ProductID == productID {
			found := l
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Add(ctx context.Context, line *models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	line.ID = s.nextID
	s.nextID++
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}
	s.lines = append(s.lines, *line)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, line *models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lines {
		if l.ID == line.ID {
			line.AddedAt = l.AddedAt
			s.lines[i] = *line
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return nil
}
