package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, params FilterProductsParams) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
}

// UpdateProductParams defines the optional parameters for updating a product.
// Only the fields that are not nil will be updated.
type UpdateProductParams struct {
	Title       *string
	Slug        *string
	Description *string
	Price       *float64
	Brand       *model.Brand
	Category    *bson.ObjectID
	Quantity    *int
	Sold        *int
	Images      *[]string
	Color       *model.Color
	Ratings     *float64
}

// FilterProductsParams defines the parameters for filtering and paginating products.
type FilterProductsParams struct {
	ListParams
	Brand    *model.Brand
	Color    *model.Color
	Category *bson.ObjectID
	MinPrice *float64
	MaxPrice *float64
}

const productCollection = "products"

var sortableProductFields = map[string]bool{
	"created_at": true,
	"price":      true,
	"title":      true,
	"sold":       true,
	"ratings":    true,
}

type productMongoRepository struct {
	products documentCollection[model.Product]
}

// NewProductMongoRepository creates the product repository and ensures its indexes.
func NewProductMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProductRepository {
	collection := db.Collection(productCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "brand", Value: 1}, {Key: "price", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create product indexes")
	}

	return &productMongoRepository{products: documentCollection[model.Product]{collection: collection}}
}

func (r *productMongoRepository) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	id, err := r.products.insert(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id

	return product, nil
}

func (r *productMongoRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return r.products.findByID(ctx, id)
}

func (r *productMongoRepository) ListProducts(ctx context.Context, params FilterProductsParams) ([]*model.Product, error) {
	filter := bson.M{}
	if params.Brand != nil {
		filter["brand"] = *params.Brand
	}
	if params.Color != nil {
		filter["color"] = *params.Color
	}
	if params.Category != nil {
		filter["category"] = *params.Category
	}

	price := bson.M{}
	if params.MinPrice != nil {
		price["$gte"] = *params.MinPrice
	}
	if params.MaxPrice != nil {
		price["$lte"] = *params.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return r.products.find(ctx, filter, params.findOptions(sortableProductFields))
}

func (r *productMongoRepository) UpdateProduct(
	ctx context.Context,
	id string,
	params UpdateProductParams,
) (*model.Product, error) {
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Slug != nil {
		updateMap["slug"] = *params.Slug
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Price != nil {
		updateMap["price"] = *params.Price
	}
	if params.Brand != nil {
		updateMap["brand"] = *params.Brand
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Quantity != nil {
		updateMap["quantity"] = *params.Quantity
	}
	if params.Sold != nil {
		updateMap["sold"] = *params.Sold
	}
	if params.Images != nil {
		updateMap["images"] = *params.Images
	}
	if params.Color != nil {
		updateMap["color"] = *params.Color
	}
	if params.Ratings != nil {
		updateMap["ratings"] = *params.Ratings
	}

	if len(updateMap) == 0 {
		return nil, ErrNothingToUpdate
	}

	updateMap["updated_at"] = time.Now()

	return r.products.updateByID(ctx, id, bson.M{"$set": updateMap})
}

func (r *productMongoRepository) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	return r.products.deleteByID(ctx, id)
}
