package repositorytest

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
)

// ProductRepository is an in-memory repository.ProductRepository.
type ProductRepository struct {
	*store[model.Product]
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates an empty in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{store: newStore(cloneProduct)}
}

func cloneProduct(p *model.Product) *model.Product {
	c := *p
	c.Images = slices.Clone(p.Images)
	if p.Category != nil {
		category := *p.Category
		c.Category = &category
	}

	return &c
}

func (r *ProductRepository) slugTaken(slug string, except bson.ObjectID) bool {
	_, ok := r.first(func(p *model.Product) bool { return p.Slug == slug && p.ID != except })
	return ok
}

func (r *ProductRepository) CreateProduct(_ context.Context, product *model.Product) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(product.Slug, bson.NilObjectID) {
		return nil, duplicateKeyError("slug")
	}

	ts := now()
	product.ID = bson.NewObjectID()
	product.CreatedAt = ts
	product.UpdatedAt = ts
	r.put(product.ID, product)

	return cloneProduct(product), nil
}

func (r *ProductRepository) GetProduct(_ context.Context, id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, err := r.get(id)
	if err != nil {
		return nil, err
	}

	return cloneProduct(product), nil
}

func (r *ProductRepository) ListProducts(
	_ context.Context,
	params repository.FilterProductsParams,
) ([]*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.list(params.ListParams, func(p *model.Product) bool {
		switch {
		case params.Brand != nil && p.Brand != *params.Brand:
			return false
		case params.Color != nil && p.Color != *params.Color:
			return false
		case params.Category != nil && (p.Category == nil || *p.Category != *params.Category):
			return false
		case params.MinPrice != nil && p.Price < *params.MinPrice:
			return false
		case params.MaxPrice != nil && p.Price > *params.MaxPrice:
			return false
		}

		return true
	}), nil
}

func (r *ProductRepository) UpdateProduct(
	_ context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.get(id)
	if err != nil {
		return nil, err
	}

	if params == (repository.UpdateProductParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	p := cloneProduct(stored)
	if params.Slug != nil {
		if r.slugTaken(*params.Slug, p.ID) {
			return nil, duplicateKeyError("slug")
		}
		p.Slug = *params.Slug
	}
	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.Brand != nil {
		p.Brand = *params.Brand
	}
	if params.Category != nil {
		category := *params.Category
		p.Category = &category
	}
	if params.Quantity != nil {
		p.Quantity = *params.Quantity
	}
	if params.Sold != nil {
		p.Sold = *params.Sold
	}
	if params.Images != nil {
		p.Images = slices.Clone(*params.Images)
	}
	if params.Color != nil {
		p.Color = *params.Color
	}
	if params.Ratings != nil {
		p.Ratings = *params.Ratings
	}
	p.UpdatedAt = now()
	r.put(p.ID, p)

	return cloneProduct(p), nil
}

func (r *ProductRepository) DeleteProduct(_ context.Context, id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(id)
}
