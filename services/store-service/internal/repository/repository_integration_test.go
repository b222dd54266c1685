//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()

	ctx := context.Background()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		t.Skip("Docker not available, skipping integration tests")
	}
	provider.Close()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	return client.Database("storefront_test")
}

func TestUserMongoRepository(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewUserMongoRepository(ctx, &logger, db)

	user, err := repo.CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	_, err = repo.CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "h2"})
	assert.True(t, mongo.IsDuplicateKeyError(err))

	id := user.ID.Hex()

	t.Run("refresh token", func(t *testing.T) {
		require.NoError(t, repo.SetRefreshToken(ctx, id, "r1"))

		found, err := repo.GetUserByRefreshToken(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		require.NoError(t, repo.ClearRefreshToken(ctx, id))
		_, err = repo.GetUserByRefreshToken(ctx, "r1")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	t.Run("reset token consumed once", func(t *testing.T) {
		expires := time.Now().Add(10 * time.Minute)
		require.NoError(t, repo.SetPasswordResetToken(ctx, id, "hashed", expires))

		found, err := repo.GetUserByPasswordResetToken(ctx, "hashed")
		require.NoError(t, err)
		require.NotNil(t, found.PasswordResetExpires)

		updated, err := repo.ConsumePasswordResetToken(ctx, id, "hashed", "h3")
		require.NoError(t, err)
		assert.Equal(t, "h3", updated.PasswordHash)
		assert.Empty(t, updated.PasswordResetToken)
		assert.Nil(t, updated.PasswordResetExpires)
		assert.NotNil(t, updated.PasswordChangedAt)

		_, err = repo.ConsumePasswordResetToken(ctx, id, "hashed", "h4")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	t.Run("block and list", func(t *testing.T) {
		blocked := true
		updated, err := repo.UpdateUser(ctx, id, UpdateUserParams{IsBlocked: &blocked})
		require.NoError(t, err)
		assert.True(t, updated.IsBlocked)

		users, err := repo.ListUsers(ctx, FilterUsersParams{IsBlocked: &blocked})
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := repo.GetUser(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestProductMongoRepository(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewProductMongoRepository(ctx, &logger, db)

	for _, p := range []*model.Product{
		{Title: "Phone", Slug: "phone", Price: 500, Brand: model.BrandApple},
		{Title: "Laptop", Slug: "laptop", Price: 1500, Brand: model.BrandLenovo},
		{Title: "Tablet", Slug: "tablet", Price: 800, Brand: model.BrandApple},
	} {
		_, err := repo.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	_, err := repo.CreateProduct(ctx, &model.Product{Title: "Phone", Slug: "phone"})
	assert.True(t, mongo.IsDuplicateKeyError(err))

	brand := model.BrandApple
	minPrice := 600.0
	products, err := repo.ListProducts(ctx, FilterProductsParams{Brand: &brand, MinPrice: &minPrice})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "tablet", products[0].Slug)

	sortBy := "price"
	products, err = repo.ListProducts(ctx, FilterProductsParams{
		ListParams: ListParams{SortBy: &sortBy, SortDesc: true, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "laptop", products[0].Slug)
}

func TestBlogMongoRepository_IncrementViews(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewBlogMongoRepository(ctx, &logger, db)

	blog, err := repo.CreateBlog(ctx, &model.Blog{Title: "Hello", Author: model.DefaultAuthor})
	require.NoError(t, err)

	for want := int64(1); want <= 3; want++ {
		got, err := repo.IncrementBlogViews(ctx, blog.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, want, got.NumViews)
	}
}
