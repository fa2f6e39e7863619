package main

import (
	"context"
	"log"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"
)

// Inserts a small sample catalogue through the repository so local
// development starts with data in every category.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		log.Fatalf("Failed to bootstrap schema: %v", err)
	}

	repo := repository.NewProductRepository(pool, logger)

	samples := []model.ProductInput{
		{Category: "Lanches", Name: "X-Burguer", Value: "22.00"},
		{Category: "Lanches", Name: "Misto quente", Value: "14.00"},
		{Category: "Bebidas", Name: "Suco de laranja", Value: "7.50"},
		{Category: "Bebidas", Name: "Refrigerante lata", Value: "6"},
		{Category: "Sobremesas", Name: "Pudim", Value: "12.90"},
	}

	for _, in := range samples {
		product, err := in.Build()
		if err != nil {
			log.Fatalf("Invalid sample %q: %v", in.Name, err)
		}
		if err := repo.Create(ctx, &product); err != nil {
			log.Fatalf("Failed to insert %q: %v", in.Name, err)
		}
		log.Printf("Created %s (%s)", product.Name, product.ID)
	}

	log.Printf("Seeded %d products", len(samples))
}
