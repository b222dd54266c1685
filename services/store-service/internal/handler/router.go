package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/middleware"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger                 *zerolog.Logger
	Handler                *Handler
	Authenticator          *middleware.Authenticator
	RequestTimeout         time.Duration
	AuthRateLimitPerMinute int
	Production             bool
}

// NewRouter constructs the chi router serving /api.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP, chimw.RequestID)
	r.Use(httputil.AccessLog(params.Logger)...)
	r.Use(chimw.Recoverer)
	if params.RequestTimeout > 0 {
		r.Use(chimw.Timeout(params.RequestTimeout))
	}
	r.Use(securityHeaders(params.Logger, params.Production))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteSuccess(w, map[string]string{"status": "ok"})
	})

	h := params.Handler
	authn := params.Authenticator.Handler
	credentialLimit := httprate.Limit(
		params.AuthRateLimitPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteErrorMessage(w, http.StatusTooManyRequests, "too many requests, try again later")
		}),
	)

	r.Route("/api/users", func(r chi.Router) {
		r.With(credentialLimit).Post("/register", h.Register)
		r.With(credentialLimit).Post("/login", h.Login)
		r.With(credentialLimit).Post("/forgot-password-token", h.ForgotPassword)
		r.Put("/reset-password/{token}", h.ResetPassword)
		r.Get("/refresh", h.Refresh)
		r.Get("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Put("/update-password", h.UpdatePassword)
			r.Put("/update-user", h.UpdateCurrentUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.ListUsers)
				r.Get("/{id}", h.GetUser)
				r.Delete("/{id}", h.DeleteUser)
				r.Put("/block-user/{id}", h.BlockUser)
				r.Put("/unblock-user/{id}", h.UnblockUser)
			})
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireAdmin)
			r.Post("/", h.CreateProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})

	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", h.ListBlogs)
		r.Get("/{id}", h.GetBlog)

		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireAdmin)
			r.Post("/", h.CreateBlog)
			r.Put("/{id}", h.UpdateBlog)
			r.Delete("/{id}", h.DeleteBlog)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Get("/{id}", h.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireAdmin)
			r.Post("/", h.CreatePost)
			r.Put("/{id}", h.UpdatePost)
			r.Delete("/{id}", h.DeletePost)
		})
	})

	return r
}

func securityHeaders(logger *zerolog.Logger, production bool) func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            31536000,
		IsDevelopment:         !production,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("secure headers blocked request")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
