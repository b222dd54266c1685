package handler

import (
	"net/http"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/payload"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/usecase"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.usecases.Auth.Register(r.Context(), usecase.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeCreated(w, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.usecases.Auth.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setRefreshCookie(w, result.RefreshToken)
	h.writeJSON(w, http.StatusOK, payload.LoginResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.usecases.Auth.Refresh(r.Context(), h.refreshCookie(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, payload.RefreshResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.usecases.Auth.Logout(r.Context(), h.refreshCookie(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearRefreshCookie(w)
	httputil.WriteNoContent(w)
}
