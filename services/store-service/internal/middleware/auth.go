// Package middleware authenticates requests and gates them by role.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/auth"
	"github.com/vasapolrittideah/storefront-api/shared/httputil"
)

const (
	msgNoToken      = "no token, authorization denied"
	msgTokenInvalid = "not authorized, token expired, please login again"
	msgBlocked      = "account is blocked"
	msgNotAdmin     = "not authorized, admin only"
)

type contextKey struct{}

var userKey = contextKey{}

// UserFinder loads the identity named by a token subject.
type UserFinder interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// WithUser attaches an authenticated user to ctx.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// Authenticator verifies the bearer access token of every request and re-reads the
// identity from the store, so deleted or blocked users lose access on their next request.
type Authenticator struct {
	jwtAuth        *auth.JWTAuthenticator
	users          UserFinder
	logger         *zerolog.Logger
	enforceBlocked bool
}

// NewAuthenticator creates the authentication middleware.
func NewAuthenticator(
	jwtAuth *auth.JWTAuthenticator,
	users UserFinder,
	logger *zerolog.Logger,
	enforceBlocked bool,
) *Authenticator {
	return &Authenticator{
		jwtAuth:        jwtAuth,
		users:          users,
		logger:         logger,
		enforceBlocked: enforceBlocked,
	}
}

// Handler wraps next so that it only runs for authenticated requests.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			a.logger.Debug().Str("path", r.URL.Path).Msg("request without bearer token")
			httputil.WriteErrorMessage(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		claims, err := a.jwtAuth.ValidateAccessToken(token)
		if err != nil {
			a.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("access token rejected")
			httputil.WriteErrorMessage(w, http.StatusUnauthorized, msgTokenInvalid)
			return
		}

		user, err := a.users.GetUser(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrInvalidID) {
				a.logger.Debug().Str("user_id", claims.Subject).Msg("token subject no longer exists")
				httputil.WriteErrorMessage(w, http.StatusUnauthorized, msgTokenInvalid)
				return
			}

			a.logger.Error().Err(err).Str("user_id", claims.Subject).Msg("failed to load authenticated user")
			httputil.WriteErrorMessage(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		if a.enforceBlocked && user.IsBlocked {
			a.logger.Debug().Str("user_id", claims.Subject).Msg("blocked user rejected")
			httputil.WriteErrorMessage(w, http.StatusForbidden, msgBlocked)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user.Sanitized())))
	})
}

// RequireRole rejects requests whose authenticated user does not hold role.
// A request with no user attached is rejected the same way.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return requireUser(func(user *model.User) bool { return user.Role == role })
}

// RequireAdmin only lets administrators through.
func RequireAdmin(next http.Handler) http.Handler {
	return requireUser((*model.User).IsAdmin)(next)
}

func requireUser(allowed func(*model.User) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !allowed(user) {
				httputil.WriteErrorMessage(w, http.StatusForbidden, msgNotAdmin)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
