package repository

import (
	"context"
	"testing"

	"product-catalog/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

// testProductRepository runs the behaviour every driver must share.
// newRepo must return an empty repository on each call.
func testProductRepository(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	ctx := context.Background()

	t.Run("Create assigns unique IDs", func(t *testing.T) {
		repo := newRepo(t)

		a := &model.Product{Category: "A", Name: "x", Value: 1}
		b := &model.Product{Category: "A", Name: "x", Value: 1}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, b.ID)
		assert.NotEqual(t, a.ID, b.ID)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("GetAll returns creation order", func(t *testing.T) {
		repo := newRepo(t)

		empty, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		names := []string{"first", "second", "third"}
		for _, n := range names {
			require.NoError(t, repo.Create(ctx, &model.Product{Category: "C", Name: n, Value: 2}))
		}

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		for i, p := range products {
			assert.Equal(t, names[i], p.Name)
		}
	})

	t.Run("GetByID round trip and missing", func(t *testing.T) {
		repo := newRepo(t)

		p := &model.Product{
			Category:    "Bebidas",
			Name:        "Suco",
			Description: strPtr("Laranja"),
			Value:       12.5,
			Image:       strPtr("/uploads/a.png"),
		}
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "Bebidas", got.Category)
		assert.Equal(t, "Suco", got.Name)
		assert.Equal(t, "Laranja", *got.Description)
		assert.Equal(t, 12.5, got.Value)
		assert.Equal(t, "/uploads/a.png", *got.Image)

		missing, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("DistinctCategories keeps first-seen order", func(t *testing.T) {
		repo := newRepo(t)

		empty, err := repo.DistinctCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{}, empty)

		for _, c := range []string{"A", "B", "A", "C"} {
			require.NoError(t, repo.Create(ctx, &model.Product{Category: c, Value: 1}))
		}

		categories, err := repo.DistinctCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, categories)
	})

	t.Run("Update persists merged state", func(t *testing.T) {
		repo := newRepo(t)

		p := &model.Product{Category: "A", Name: "old", Description: strPtr("d"), Value: 1}
		require.NoError(t, repo.Create(ctx, p))

		p.Name = "new"
		p.Description = nil
		p.Image = strPtr("http://cdn/img.png")
		require.NoError(t, repo.Update(ctx, p))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "new", got.Name)
		assert.Nil(t, got.Description)
		assert.Equal(t, "http://cdn/img.png", *got.Image)
		assert.Equal(t, 1.0, got.Value)
	})

	t.Run("Update missing product", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Update(ctx, &model.Product{ID: "00000000-0000-0000-0000-000000000000", Category: "A"})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Delete removes product", func(t *testing.T) {
		repo := newRepo(t)

		keep := &model.Product{Category: "A", Value: 1}
		drop := &model.Product{Category: "B", Value: 2}
		require.NoError(t, repo.Create(ctx, keep))
		require.NoError(t, repo.Create(ctx, drop))

		require.NoError(t, repo.Delete(ctx, drop.ID))

		got, err := repo.GetByID(ctx, drop.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		products, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, keep.ID, products[0].ID)

		assert.ErrorIs(t, repo.Delete(ctx, drop.ID), model.ErrProductNotFound)
	})
}
