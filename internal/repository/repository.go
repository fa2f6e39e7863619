package repository

import (
	"context"

	"product-catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a product and fills in its ID and timestamps.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves all products in creation order.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// DistinctCategories returns each category once, in first-seen order.
	DistinctCategories(ctx context.Context) ([]string, error)

	// Update persists every mutable field of product.
	// Returns model.ErrProductNotFound if the row no longer exists.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes the product permanently.
	// Returns model.ErrProductNotFound if the row no longer exists.
	Delete(ctx context.Context, id string) error
}
