package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/payload"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

func contentParams(r *http.Request) repository.FilterContentParams {
	return repository.FilterContentParams{
		ListParams: listParams(r),
		Category:   httputil.QueryString(r, "category"),
		Author:     httputil.QueryString(r, "author"),
	}
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateBlogRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	blog, err := h.usecases.Blog.CreateBlog(r.Context(), &model.Blog{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeCreated(w, blog)
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.usecases.Blog.ViewBlog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.usecases.Blog.ListBlogs(r.Context(), contentParams(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, blogs)
}

func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateBlogRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	blog, err := h.usecases.Blog.UpdateBlog(r.Context(), chi.URLParam(r, "id"), repository.UpdateBlogParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
		Image:       req.Image,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.usecases.Blog.DeleteBlog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, blog)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req payload.CreatePostRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	post, err := h.usecases.Post.CreatePost(r.Context(), &model.Post{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Author:   req.Author,
		Tags:     req.Tags,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeCreated(w, post)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.usecases.Post.ViewPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, post)
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.usecases.Post.ListPosts(r.Context(), contentParams(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdatePostRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	post, err := h.usecases.Post.UpdatePost(r.Context(), chi.URLParam(r, "id"), repository.UpdatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Author:   req.Author,
		Tags:     req.Tags,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.usecases.Post.DeletePost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, post)
}
