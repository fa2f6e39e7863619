package service

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/imagesource"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      imagesource.Source
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	images imagesource.Source,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create persists a new product. Input is validated before any image is stored.
func (s *productService) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	product, err := input.Build()
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid product input")
		return nil, err
	}

	image, err := s.images.Resolve(ctx, input.Image)
	if err != nil {
		s.logger.Error().Err(err).Str("image_mode", s.images.Mode()).Msg("failed to resolve product image")
		return nil, err
	}
	product.Image = image

	if err := s.productRepo.Create(ctx, &product); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("category", product.Category).
		Bool("has_image", product.Image != nil).
		Msg("product created")

	return &product, nil
}

// List retrieves all products.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// ListCategories retrieves the distinct categories.
func (s *productService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.DistinctCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if categories == nil {
		categories = []string{}
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")

	return categories, nil
}

// Update checks existence, merges, stores any new image, then persists.
func (s *productService) Update(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := update.Apply(*existing)
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("invalid product update")
		return nil, err
	}

	image, err := s.images.Resolve(ctx, update.Image)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to resolve product image")
		return nil, err
	}
	if image != nil {
		merged.Image = image
	}

	if err := s.productRepo.Update(ctx, &merged); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, model.ErrProductNotFound
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().
		Str("product_id", id).
		Bool("image_replaced", image != nil).
		Msg("product updated")

	return &merged, nil
}

// Delete removes a product after confirming it exists.
func (s *productService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return model.ErrProductNotFound
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

// get loads a product and maps absence to ErrProductNotFound.
func (s *productService) get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}
