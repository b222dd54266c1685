package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, params FilterContentParams) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id string, params UpdatePostParams) (*model.Post, error)
	DeletePost(ctx context.Context, id string) (*model.Post, error)
	IncrementPostViews(ctx context.Context, id string) (*model.Post, error)
}

// UpdatePostParams defines the optional parameters for updating a post.
type UpdatePostParams struct {
	Title    *string
	Content  *string
	Category *string
	Author   *string
	Tags     *[]string
}

const postCollection = "posts"

type postMongoRepository struct {
	posts documentCollection[model.Post]
}

// NewPostMongoRepository creates the post repository and ensures its indexes.
func NewPostMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PostRepository {
	collection := db.Collection(postCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create post indexes")
	}

	return &postMongoRepository{posts: documentCollection[model.Post]{collection: collection}}
}

func (r *postMongoRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	id, err := r.posts.insert(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id

	return post, nil
}

func (r *postMongoRepository) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return r.posts.findByID(ctx, id)
}

func (r *postMongoRepository) ListPosts(ctx context.Context, params FilterContentParams) ([]*model.Post, error) {
	return r.posts.find(ctx, params.filter(), params.findOptions(sortableContentFields))
}

func (r *postMongoRepository) UpdatePost(ctx context.Context, id string, params UpdatePostParams) (*model.Post, error) {
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Content != nil {
		updateMap["content"] = *params.Content
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Author != nil {
		updateMap["author"] = *params.Author
	}
	if params.Tags != nil {
		updateMap["tags"] = *params.Tags
	}

	if len(updateMap) == 0 {
		return nil, ErrNothingToUpdate
	}

	updateMap["updated_at"] = time.Now()

	return r.posts.updateByID(ctx, id, bson.M{"$set": updateMap})
}

func (r *postMongoRepository) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	return r.posts.deleteByID(ctx, id)
}

func (r *postMongoRepository) IncrementPostViews(ctx context.Context, id string) (*model.Post, error) {
	return r.posts.updateByID(ctx, id, bson.M{"$inc": bson.M{"num_views": 1}})
}
