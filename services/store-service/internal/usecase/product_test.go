package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository/repositorytest"
)

func TestProductUsecase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := NewProductUsecase(repositorytest.NewProductRepository())

	phone, err := uc.CreateProduct(ctx, &model.Product{Title: "Galaxy S24 Ultra", Price: 1200, Brand: model.BrandSamsung})
	require.NoError(t, err)
	assert.Equal(t, "galaxy-s24-ultra", phone.Slug)
	assert.Zero(t, phone.Sold)

	_, err = uc.CreateProduct(ctx, &model.Product{Title: "Galaxy S24 Ultra!", Price: 1100})
	assert.ErrorIs(t, err, ErrProductSlugConflict)

	laptop, err := uc.CreateProduct(ctx, &model.Product{Title: "ThinkPad", Slug: "ThinkPad X1", Price: 1500, Brand: model.BrandLenovo})
	require.NoError(t, err)
	assert.Equal(t, "thinkpad-x1", laptop.Slug)

	t.Run("list filters", func(t *testing.T) {
		brand := model.BrandLenovo
		products, err := uc.ListProducts(ctx, repository.FilterProductsParams{Brand: &brand})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, laptop.ID, products[0].ID)

		maxPrice := 1300.0
		products, err = uc.ListProducts(ctx, repository.FilterProductsParams{MaxPrice: &maxPrice})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, phone.ID, products[0].ID)
	})

	t.Run("retitle follows slug", func(t *testing.T) {
		title := "Galaxy S25"
		updated, err := uc.UpdateProduct(ctx, phone.ID.Hex(), repository.UpdateProductParams{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "galaxy-s25", updated.Slug)

		_, err = uc.UpdateProduct(ctx, phone.ID.Hex(), repository.UpdateProductParams{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)

		clash := "thinkpad-x1"
		_, err = uc.UpdateProduct(ctx, phone.ID.Hex(), repository.UpdateProductParams{Slug: &clash})
		assert.ErrorIs(t, err, ErrProductSlugConflict)
	})

	t.Run("get and delete", func(t *testing.T) {
		_, err := uc.DeleteProduct(ctx, laptop.ID.Hex())
		require.NoError(t, err)

		_, err = uc.GetProduct(ctx, laptop.ID.Hex())
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductUsecase_SlugWithoutLettersOrDigits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repositorytest.NewProductRepository()
	uc := NewProductUsecase(repo)

	_, err := uc.CreateProduct(ctx, &model.Product{Title: "!!!", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidProductSlug)

	_, err = uc.CreateProduct(ctx, &model.Product{Title: "Pixel", Slug: "---", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidProductSlug)

	// An unrelated punctuation-only title is rejected the same way, not as a conflict.
	_, err = uc.CreateProduct(ctx, &model.Product{Title: "???", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidProductSlug)

	products, err := repo.ListProducts(ctx, repository.FilterProductsParams{})
	require.NoError(t, err)
	assert.Empty(t, products)

	pixel, err := uc.CreateProduct(ctx, &model.Product{Title: "Pixel 9", Price: 1})
	require.NoError(t, err)

	title := "***"
	_, err = uc.UpdateProduct(ctx, pixel.ID.Hex(), repository.UpdateProductParams{Title: &title})
	assert.ErrorIs(t, err, ErrInvalidProductSlug)

	explicit := "  "
	_, err = uc.UpdateProduct(ctx, pixel.ID.Hex(), repository.UpdateProductParams{Slug: &explicit})
	assert.ErrorIs(t, err, ErrInvalidProductSlug)

	stored, err := uc.GetProduct(ctx, pixel.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "pixel-9", stored.Slug)
}
