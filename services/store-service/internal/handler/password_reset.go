package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/payload"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.usecases.PasswordReset.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, httputil.MessageResponse{Message: "password reset link sent"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.PasswordRequest
	if !httputil.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.usecases.PasswordReset.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}
