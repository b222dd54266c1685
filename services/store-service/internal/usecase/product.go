package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/slug"
)

// ProductUsecase defines catalogue operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, params repository.FilterProductsParams) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, id string, params repository.UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
}

type productUsecase struct {
	productRepo repository.ProductRepository
}

// NewProductUsecase creates a new instance of ProductUsecase.
func NewProductUsecase(productRepo repository.ProductRepository) ProductUsecase {
	return &productUsecase{productRepo: productRepo}
}

func (u *productUsecase) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Slug == "" {
		product.Slug = slug.Make(product.Title)
	} else {
		product.Slug = slug.Make(product.Slug)
	}
	if product.Slug == "" {
		return nil, ErrInvalidProductSlug
	}

	created, err := u.productRepo.CreateProduct(ctx, product)
	if err != nil {
		return nil, productError(err)
	}

	return created, nil
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.productRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, productError(err)
	}

	return product, nil
}

func (u *productUsecase) ListProducts(
	ctx context.Context,
	params repository.FilterProductsParams,
) ([]*model.Product, error) {
	return u.productRepo.ListProducts(ctx, params)
}

func (u *productUsecase) UpdateProduct(
	ctx context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	if params == (repository.UpdateProductParams{}) {
		return nil, ErrNothingToUpdate
	}

	// A retitled product follows its new title unless a slug is given explicitly.
	if params.Slug != nil {
		s := slug.Make(*params.Slug)
		params.Slug = &s
	} else if params.Title != nil {
		s := slug.Make(*params.Title)
		params.Slug = &s
	}
	if params.Slug != nil && *params.Slug == "" {
		return nil, ErrInvalidProductSlug
	}

	product, err := u.productRepo.UpdateProduct(ctx, id, params)
	if err != nil {
		return nil, productError(err)
	}

	return product, nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		return nil, productError(err)
	}

	return product, nil
}

func productError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrProductNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrProductSlugConflict
	default:
		return err
	}
}
