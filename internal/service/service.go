package service

import (
	"context"

	"product-catalog/internal/model"
)

// ProductService defines the catalogue operations.
type ProductService interface {
	// Create validates input, resolves its image and persists a new product.
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)

	// List retrieves every product in creation order.
	List(ctx context.Context) ([]model.Product, error)

	// ListCategories retrieves each category once, in first-seen order.
	ListCategories(ctx context.Context) ([]string, error)

	// Update merges the supplied fields into an existing product.
	Update(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error)

	// Delete permanently removes a product.
	Delete(ctx context.Context, id string) error
}
