package repository

import (
	"context"
	"sync"
	"time"

	"product-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memoryRepository keeps products in process memory.
// order holds IDs in insertion order.
type memoryRepository struct {
	mu     sync.RWMutex
	m      map[string]model.Product
	order  []string
	now    func() time.Time
	logger zerolog.Logger
}

// NewMemoryProductRepository creates a product repository that lives in memory.
func NewMemoryProductRepository(logger zerolog.Logger) ProductRepository {
	return &memoryRepository{
		m:      make(map[string]model.Product),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With().Str("repository", "product-memory").Logger(),
	}
}

func (r *memoryRepository) Create(ctx context.Context, product *model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.m[product.ID] = clone(*product)
	r.order = append(r.order, product.ID)

	r.logger.Debug().Str("product_id", product.ID).Msg("product inserted")

	return nil
}

func (r *memoryRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, clone(r.m[id]))
	}

	return products, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.m[id]
	if !ok {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, nil
	}

	p = clone(p)
	return &p, nil
}

func (r *memoryRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := []string{}
	for _, id := range r.order {
		c := r.m[id].Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}

	return categories, nil
}

func (r *memoryRepository) Update(ctx context.Context, product *model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.m[product.ID]
	if !ok {
		r.logger.Warn().Str("product_id", product.ID).Msg("product vanished before update")
		return model.ErrProductNotFound
	}

	product.CreatedAt = stored.CreatedAt
	product.UpdatedAt = r.now()
	r.m[product.ID] = clone(*product)

	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.m[id]; !ok {
		r.logger.Warn().Str("product_id", id).Msg("product vanished before delete")
		return model.ErrProductNotFound
	}

	delete(r.m, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// clone copies the optional fields so callers never share pointers with the store.
func clone(p model.Product) model.Product {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	if p.Image != nil {
		i := *p.Image
		p.Image = &i
	}
	return p
}
