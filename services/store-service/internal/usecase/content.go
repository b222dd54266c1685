package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
)

// BlogUsecase defines blog operations.
type BlogUsecase interface {
	CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	// ViewBlog returns the blog after counting the read.
	ViewBlog(ctx context.Context, id string) (*model.Blog, error)
	ListBlogs(ctx context.Context, params repository.FilterContentParams) ([]*model.Blog, error)
	UpdateBlog(ctx context.Context, id string, params repository.UpdateBlogParams) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id string) (*model.Blog, error)
}

// PostUsecase defines post operations.
type PostUsecase interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	ViewPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, params repository.FilterContentParams) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id string, params repository.UpdatePostParams) (*model.Post, error)
	DeletePost(ctx context.Context, id string) (*model.Post, error)
}

type blogUsecase struct {
	blogRepo repository.BlogRepository
}

// NewBlogUsecase creates a new instance of BlogUsecase.
func NewBlogUsecase(blogRepo repository.BlogRepository) BlogUsecase {
	return &blogUsecase{blogRepo: blogRepo}
}

func (u *blogUsecase) CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	if blog.Author == "" {
		blog.Author = model.DefaultAuthor
	}
	blog.NumViews = 0

	return u.blogRepo.CreateBlog(ctx, blog)
}

func (u *blogUsecase) ViewBlog(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := u.blogRepo.IncrementBlogViews(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBlogNotFound)
	}

	return blog, nil
}

func (u *blogUsecase) ListBlogs(ctx context.Context, params repository.FilterContentParams) ([]*model.Blog, error) {
	return u.blogRepo.ListBlogs(ctx, params)
}

func (u *blogUsecase) UpdateBlog(
	ctx context.Context,
	id string,
	params repository.UpdateBlogParams,
) (*model.Blog, error) {
	if params == (repository.UpdateBlogParams{}) {
		return nil, ErrNothingToUpdate
	}

	blog, err := u.blogRepo.UpdateBlog(ctx, id, params)
	if err != nil {
		return nil, notFound(err, ErrBlogNotFound)
	}

	return blog, nil
}

func (u *blogUsecase) DeleteBlog(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := u.blogRepo.DeleteBlog(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBlogNotFound)
	}

	return blog, nil
}

type postUsecase struct {
	postRepo repository.PostRepository
}

// NewPostUsecase creates a new instance of PostUsecase.
func NewPostUsecase(postRepo repository.PostRepository) PostUsecase {
	return &postUsecase{postRepo: postRepo}
}

func (u *postUsecase) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.NumViews = 0
	return u.postRepo.CreatePost(ctx, post)
}

func (u *postUsecase) ViewPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := u.postRepo.IncrementPostViews(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	return post, nil
}

func (u *postUsecase) ListPosts(ctx context.Context, params repository.FilterContentParams) ([]*model.Post, error) {
	return u.postRepo.ListPosts(ctx, params)
}

func (u *postUsecase) UpdatePost(
	ctx context.Context,
	id string,
	params repository.UpdatePostParams,
) (*model.Post, error) {
	if params == (repository.UpdatePostParams{}) {
		return nil, ErrNothingToUpdate
	}

	post, err := u.postRepo.UpdatePost(ctx, id, params)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	return post, nil
}

func (u *postUsecase) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	post, err := u.postRepo.DeletePost(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	return post, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}

	return err
}
