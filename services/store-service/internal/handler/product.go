package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/payload"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateProductRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	category, err := optionalID(&req.Category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.usecases.Product.CreateProduct(r.Context(), &model.Product{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Brand:       model.Brand(req.Brand),
		Category:    category,
		Quantity:    req.Quantity,
		Images:      req.Images,
		Color:       model.Color(req.Color),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeCreated(w, product)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.usecases.Product.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterProductsParams{
		ListParams: listParams(r),
		MinPrice:   httputil.QueryFloat(r, "min_price"),
		MaxPrice:   httputil.QueryFloat(r, "max_price"),
	}
	if brand := httputil.QueryString(r, "brand"); brand != nil {
		b := model.Brand(*brand)
		params.Brand = &b
	}
	if color := httputil.QueryString(r, "color"); color != nil {
		c := model.Color(*color)
		params.Color = &c
	}

	category, err := optionalID(httputil.QueryString(r, "category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	params.Category = category

	products, err := h.usecases.Product.ListProducts(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProductRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	category, err := optionalID(req.Category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	params := repository.UpdateProductParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Category:    category,
		Quantity:    req.Quantity,
		Sold:        req.Sold,
		Images:      req.Images,
		Ratings:     req.Ratings,
	}
	if req.Brand != nil {
		b := model.Brand(*req.Brand)
		params.Brand = &b
	}
	if req.Color != nil {
		c := model.Color(*req.Color)
		params.Color = &c
	}

	product, err := h.usecases.Product.UpdateProduct(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.usecases.Product.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// optionalID parses id when it is present and non-empty.
func optionalID(id *string) (*bson.ObjectID, error) {
	if id == nil || *id == "" {
		return nil, nil
	}

	objectID, err := repository.ParseID(*id)
	if err != nil {
		return nil, err
	}

	return &objectID, nil
}
