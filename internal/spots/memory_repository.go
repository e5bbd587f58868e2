package spots

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and single-node deployments. Production
// should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	spots map[string]*Spot
}

// NewInMemoryRepository creates a new in-memory spot repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		spots: make(map[string]*Spot),
	}
}

// Get retrieves a spot by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}

	cpy := *s
	return &cpy, nil
}

// List retrieves all spots with pagination, newest first.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*Spot
	for _, s := range r.spots {
		cpy := *s
		items = append(items, &cpy)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	result := &ListResult{Items: items}
	if len(items) > limit {
		result.Items = items[:limit]
		result.NextCursor = items[limit-1].ID
	}

	return result, nil
}

// Create creates a new spot.
func (r *InMemoryRepository) Create(_ context.Context, s *Spot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *s
	r.spots[s.ID] = &cpy
	return nil
}

// Update updates an existing spot.
func (r *InMemoryRepository) Update(_ context.Context, s *Spot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.spots[s.ID]; !ok {
		return ErrSpotNotFound
	}

	cpy := *s
	r.spots[s.ID] = &cpy
	return nil
}

// Delete deletes a spot by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.spots, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
