package handler

import (
	"net/http"
	"time"
)

func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		Expires:  time.Now().Add(h.cookie.MaxAge),
		HttpOnly: true,
		Secure:   h.cookie.IsSecure(),
		SameSite: h.cookie.SameSiteMode(),
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.IsSecure(),
		SameSite: h.cookie.SameSiteMode(),
	})
}

func (h *Handler) refreshCookie(r *http.Request) string {
	cookie, err := r.Cookie(h.cookie.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
