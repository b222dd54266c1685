package repositorytest

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
)

// BlogRepository is an in-memory repository.BlogRepository.
type BlogRepository struct {
	*store[model.Blog]
}

var _ repository.BlogRepository = (*BlogRepository)(nil)

// NewBlogRepository creates an empty in-memory blog repository.
func NewBlogRepository() *BlogRepository {
	return &BlogRepository{store: newStore(func(b *model.Blog) *model.Blog {
		c := *b
		return &c
	})}
}

func (r *BlogRepository) CreateBlog(_ context.Context, blog *model.Blog) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	blog.ID = bson.NewObjectID()
	blog.CreatedAt = ts
	blog.UpdatedAt = ts
	r.put(blog.ID, blog)

	return r.clone(blog), nil
}

func (r *BlogRepository) GetBlog(_ context.Context, id string) (*model.Blog, error) {
	return r.update(id, nil)
}

func (r *BlogRepository) ListBlogs(_ context.Context, params repository.FilterContentParams) ([]*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.list(params.ListParams, func(b *model.Blog) bool {
		return matchContent(params, b.Category, b.Author)
	}), nil
}

func (r *BlogRepository) UpdateBlog(
	_ context.Context,
	id string,
	params repository.UpdateBlogParams,
) (*model.Blog, error) {
	if params == (repository.UpdateBlogParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	return r.update(id, func(b *model.Blog) {
		if params.Title != nil {
			b.Title = *params.Title
		}
		if params.Description != nil {
			b.Description = *params.Description
		}
		if params.Category != nil {
			b.Category = *params.Category
		}
		if params.Author != nil {
			b.Author = *params.Author
		}
		if params.Image != nil {
			b.Image = *params.Image
		}
		b.UpdatedAt = now()
	})
}

func (r *BlogRepository) DeleteBlog(_ context.Context, id string) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(id)
}

func (r *BlogRepository) IncrementBlogViews(_ context.Context, id string) (*model.Blog, error) {
	return r.update(id, func(b *model.Blog) { b.NumViews++ })
}

// update applies fn, if any, to the stored blog under the lock and returns a copy.
func (r *BlogRepository) update(id string, fn func(*model.Blog)) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blog, err := r.get(id)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		fn(blog)
	}

	return r.clone(blog), nil
}

// PostRepository is an in-memory repository.PostRepository.
type PostRepository struct {
	*store[model.Post]
}

var _ repository.PostRepository = (*PostRepository)(nil)

// NewPostRepository creates an empty in-memory post repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{store: newStore(func(p *model.Post) *model.Post {
		c := *p
		c.Tags = slices.Clone(p.Tags)
		return &c
	})}
}

func (r *PostRepository) CreatePost(_ context.Context, post *model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	post.ID = bson.NewObjectID()
	post.CreatedAt = ts
	post.UpdatedAt = ts
	r.put(post.ID, post)

	return r.clone(post), nil
}

func (r *PostRepository) GetPost(_ context.Context, id string) (*model.Post, error) {
	return r.update(id, nil)
}

func (r *PostRepository) ListPosts(_ context.Context, params repository.FilterContentParams) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.list(params.ListParams, func(p *model.Post) bool {
		return matchContent(params, p.Category, p.Author)
	}), nil
}

func (r *PostRepository) UpdatePost(
	_ context.Context,
	id string,
	params repository.UpdatePostParams,
) (*model.Post, error) {
	if params == (repository.UpdatePostParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	return r.update(id, func(p *model.Post) {
		if params.Title != nil {
			p.Title = *params.Title
		}
		if params.Content != nil {
			p.Content = *params.Content
		}
		if params.Category != nil {
			p.Category = *params.Category
		}
		if params.Author != nil {
			p.Author = *params.Author
		}
		if params.Tags != nil {
			p.Tags = slices.Clone(*params.Tags)
		}
		p.UpdatedAt = now()
	})
}

func (r *PostRepository) DeletePost(_ context.Context, id string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(id)
}

func (r *PostRepository) IncrementPostViews(_ context.Context, id string) (*model.Post, error) {
	return r.update(id, func(p *model.Post) { p.NumViews++ })
}

func (r *PostRepository) update(id string, fn func(*model.Post)) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, err := r.get(id)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		fn(post)
	}

	return r.clone(post), nil
}

func matchContent(params repository.FilterContentParams, category, author string) bool {
	if params.Category != nil && category != *params.Category {
		return false
	}
	if params.Author != nil && author != *params.Author {
		return false
	}

	return true
}
