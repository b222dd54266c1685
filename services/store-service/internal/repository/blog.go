package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
)

// BlogRepository defines the interface for blog-related database operations.
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	GetBlog(ctx context.Context, id string) (*model.Blog, error)
	ListBlogs(ctx context.Context, params FilterContentParams) ([]*model.Blog, error)
	UpdateBlog(ctx context.Context, id string, params UpdateBlogParams) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id string) (*model.Blog, error)

	// IncrementBlogViews atomically bumps num_views and returns the updated blog.
	IncrementBlogViews(ctx context.Context, id string) (*model.Blog, error)
}

// UpdateBlogParams defines the optional parameters for updating a blog.
type UpdateBlogParams struct {
	Title       *string
	Description *string
	Category    *string
	Author      *string
	Image       *string
}

// FilterContentParams defines the parameters for filtering and paginating blogs and posts.
type FilterContentParams struct {
	ListParams
	Category *string
	Author   *string
}

func (p FilterContentParams) filter() bson.M {
	filter := bson.M{}
	if p.Category != nil {
		filter["category"] = *p.Category
	}
	if p.Author != nil {
		filter["author"] = *p.Author
	}

	return filter
}

const blogCollection = "blogs"

var sortableContentFields = map[string]bool{
	"created_at": true,
	"num_views":  true,
	"title":      true,
}

type blogMongoRepository struct {
	blogs documentCollection[model.Blog]
}

// NewBlogMongoRepository creates the blog repository and ensures its indexes.
func NewBlogMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) BlogRepository {
	collection := db.Collection(blogCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create blog indexes")
	}

	return &blogMongoRepository{blogs: documentCollection[model.Blog]{collection: collection}}
}

func (r *blogMongoRepository) CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	id, err := r.blogs.insert(ctx, blog)
	if err != nil {
		return nil, err
	}
	blog.ID = id

	return blog, nil
}

func (r *blogMongoRepository) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	return r.blogs.findByID(ctx, id)
}

func (r *blogMongoRepository) ListBlogs(ctx context.Context, params FilterContentParams) ([]*model.Blog, error) {
	return r.blogs.find(ctx, params.filter(), params.findOptions(sortableContentFields))
}

func (r *blogMongoRepository) UpdateBlog(ctx context.Context, id string, params UpdateBlogParams) (*model.Blog, error) {
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Author != nil {
		updateMap["author"] = *params.Author
	}
	if params.Image != nil {
		updateMap["image"] = *params.Image
	}

	if len(updateMap) == 0 {
		return nil, ErrNothingToUpdate
	}

	updateMap["updated_at"] = time.Now()

	return r.blogs.updateByID(ctx, id, bson.M{"$set": updateMap})
}

func (r *blogMongoRepository) DeleteBlog(ctx context.Context, id string) (*model.Blog, error) {
	return r.blogs.deleteByID(ctx, id)
}

func (r *blogMongoRepository) IncrementBlogViews(ctx context.Context, id string) (*model.Blog, error) {
	return r.blogs.updateByID(ctx, id, bson.M{"$inc": bson.M{"num_views": 1}})
}
