package integration

import (
	"context"
	"sync"
	"testing"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()

	repo, err := repository.New(repository.DriverPostgres, testDB.Pool, logger)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("GetAll returns seeded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 5)
		assert.Equal(t, seeded[0].ID, products[0].ID)
		assert.Equal(t, "Suco de laranja", products[0].Name)
		assert.Equal(t, 7.50, products[0].Value)
	})

	t.Run("Data survives a new repository instance", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedProducts(t, testDB.Pool)

		other := repository.NewProductRepository(testDB.Pool, logger)
		product, err := other.GetByID(ctx, seeded[2].ID)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Refrigerante", product.Name)
		assert.Equal(t, "Bebidas", product.Category)
	})

	t.Run("Update keeps created_at and clears description", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		desc := "Gelado"
		product := model.Product{Category: "Bebidas", Name: "Chá", Description: &desc, Value: 5}
		require.NoError(t, repo.Create(ctx, &product))

		product.Description = nil
		product.Value = 5.5
		require.NoError(t, repo.Update(ctx, &product))

		stored, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.Description)
		assert.Equal(t, 5.5, stored.Value)
		assert.True(t, stored.CreatedAt.Equal(product.CreatedAt))
	})

	t.Run("Concurrent creates get distinct ids", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		const n = 20
		ids := make(chan string, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := model.Product{Category: "Lanches", Value: 1}
				if err := repo.Create(ctx, &p); err == nil {
					ids <- p.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[string]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)

		categories, err := repo.DistinctCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lanches"}, categories)
	})

	t.Run("Delete of missing product returns not found", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		err := repo.Delete(ctx, "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, model.IsNotFound(err))
	})
}
