// Package handler exposes the store usecases over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/config"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/usecase"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

// Usecases groups the business logic the handlers delegate to.
type Usecases struct {
	Auth          usecase.AuthUsecase
	PasswordReset usecase.PasswordResetUsecase
	User          usecase.UserUsecase
	Product       usecase.ProductUsecase
	Blog          usecase.BlogUsecase
	Post          usecase.PostUsecase
}

// Handler serves every /api route.
type Handler struct {
	usecases  Usecases
	cookie    config.CookieConfig
	validator *httputil.Validator
	logger    *zerolog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(usecases Usecases, cookie config.CookieConfig, logger *zerolog.Logger) *Handler {
	return &Handler{
		usecases:  usecases,
		cookie:    cookie,
		validator: httputil.NewValidator(),
		logger:    logger,
	}
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
	{usecase.ErrRefreshTokenMissing, http.StatusUnauthorized},
	{usecase.ErrRefreshTokenNotFound, http.StatusUnauthorized},
	{usecase.ErrUserBlocked, http.StatusForbidden},
	{usecase.ErrRefreshTokenMismatch, http.StatusForbidden},
	{usecase.ErrUserNotFound, http.StatusNotFound},
	{usecase.ErrResetTokenNotFound, http.StatusNotFound},
	{usecase.ErrProductNotFound, http.StatusNotFound},
	{usecase.ErrBlogNotFound, http.StatusNotFound},
	{usecase.ErrPostNotFound, http.StatusNotFound},
	{usecase.ErrResetTokenExpired, http.StatusGone},
	{usecase.ErrUserAlreadyExists, http.StatusConflict},
	{usecase.ErrProductSlugConflict, http.StatusConflict},
	{usecase.ErrEmailDeliveryFailed, http.StatusBadGateway},
	{repository.ErrInvalidID, http.StatusBadRequest},
	{usecase.ErrNothingToUpdate, http.StatusBadRequest},
	{usecase.ErrInvalidProductSlug, http.StatusBadRequest},
}

// writeError maps a usecase error to its status code. Only the sentinel message is
// exposed; anything unrecognised is logged and answered with a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			if e.status >= http.StatusInternalServerError {
				h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream dependency failed")
			}
			httputil.WriteErrorMessage(w, e.status, e.err.Error())
			return
		}
	}

	h.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	httputil.WriteErrorMessage(w, http.StatusInternalServerError, "something went wrong")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	if err := httputil.WriteJSON(w, status, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (h *Handler) writeCreated(w http.ResponseWriter, data any) {
	if err := httputil.WriteCreated(w, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}

func listParams(r *http.Request) repository.ListParams {
	return repository.ListParams{
		Limit:    uint64(httputil.QueryInt(r, "limit", 0)),
		Offset:   uint64(httputil.QueryInt(r, "offset", 0)),
		SortBy:   httputil.QueryString(r, "sort"),
		SortDesc: r.URL.Query().Get("order") == "desc",
	}
}
