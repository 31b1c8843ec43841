package repository

import (
	"context"
	"sync"

	"microsvc/internal/domain"
)

// MemoryRepository provides thread-safe in-memory link storage.
// Its contents live as long as the process.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*domain.ShortLink
}

// NewMemoryRepository creates a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*domain.ShortLink),
	}
}

// SaveIfNotExists atomically saves the link only if the code
// doesn't already exist.
func (r *MemoryRepository) SaveIfNotExists(ctx context.Context, link *domain.ShortLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[link.Code]; exists {
		return domain.ErrCodeExists
	}

	r.data[link.Code] = link.Clone()
	return nil
}

// FindByShortCode retrieves a link by its code.
func (r *MemoryRepository) FindByShortCode(ctx context.Context, code string) (*domain.ShortLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	link, exists := r.data[code]
	if !exists {
		return nil, domain.ErrNotFound
	}

	return link.Clone(), nil
}

// IncrementClickCount atomically increments the click counter.
func (r *MemoryRepository) IncrementClickCount(ctx context.Context, code string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	link, exists := r.data[code]
	if !exists {
		return 0, domain.ErrNotFound
	}

	link.Clicks++
	return link.Clicks, nil
}

// Len returns the number of stored links.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

var _ LinkRepository = (*MemoryRepository)(nil)
