package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/middleware"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/payload"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/usecase"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.usecases.User.ListUsers(r.Context(), repository.FilterUsersParams{ListParams: listParams(r)})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.usecases.User.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.usecases.User.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

func (h *Handler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	user, err := h.usecases.User.SetBlocked(r.Context(), chi.URLParam(r, "id"), blocked)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req payload.UpdateUserRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.usecases.User.UpdateProfile(r.Context(), current.ID.Hex(), usecase.UpdateProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Mobile:    req.Mobile,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteErrorMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req payload.PasswordRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.usecases.User.UpdatePassword(r.Context(), current.ID.Hex(), req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}
