package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository/repositorytest"
	"github.com/vasapolrittideah/storefront-api/shared/auth"
)

func newTestAuthenticator() *auth.JWTAuthenticator {
	return auth.NewJWTAuthenticator(auth.Config{
		AccessTokenSecret:     "0123456789abcdef0123456789abcdef",
		RefreshTokenSecret:    "fedcba9876543210fedcba9876543210",
		AccessTokenExpiresIn:  time.Hour,
		RefreshTokenExpiresIn: 72 * time.Hour,
		Issuer:                "storefront-api",
	})
}

type failingFinder struct{}

func (failingFinder) GetUser(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection reset")
}

// echoUser replies 200 with the attached user's email.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	if user.PasswordHash != "" || user.RefreshToken != "" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(user.Email))
})

func TestAuthenticator_Handler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	jwtAuth := newTestAuthenticator()
	repo := repositorytest.NewUserRepository()
	logger := zerolog.Nop()

	active, err := repo.CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "h", RefreshToken: "r"})
	require.NoError(t, err)
	blocked, err := repo.CreateUser(ctx, &model.User{Email: "b@x.com", PasswordHash: "h", IsBlocked: true})
	require.NoError(t, err)
	deleted, err := repo.CreateUser(ctx, &model.User{Email: "c@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.DeleteUser(ctx, deleted.ID.Hex())
	require.NoError(t, err)

	token := func(id string) string {
		tok, err := jwtAuth.GenerateAccessToken(id)
		require.NoError(t, err)
		return tok
	}
	refresh, err := jwtAuth.GenerateRefreshToken(active.ID.Hex())
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		enforce    bool
		wantStatus int
		wantBody   string
	}{
		{"no header", "", true, http.StatusUnauthorized, msgNoToken},
		{"wrong scheme", "Basic " + token(active.ID.Hex()), true, http.StatusUnauthorized, msgNoToken},
		{"empty bearer", "Bearer ", true, http.StatusUnauthorized, msgNoToken},
		{"garbage", "Bearer garbage", true, http.StatusUnauthorized, msgTokenInvalid},
		{"refresh token", "Bearer " + refresh, true, http.StatusUnauthorized, msgTokenInvalid},
		{"deleted user", "Bearer " + token(deleted.ID.Hex()), true, http.StatusUnauthorized, msgTokenInvalid},
		{"malformed subject", "Bearer " + token("not-an-object-id"), true, http.StatusUnauthorized, msgTokenInvalid},
		{"blocked user enforced", "Bearer " + token(blocked.ID.Hex()), true, http.StatusForbidden, msgBlocked},
		{"blocked user not enforced", "Bearer " + token(blocked.ID.Hex()), false, http.StatusOK, "b@x.com"},
		{"valid", "Bearer " + token(active.ID.Hex()), true, http.StatusOK, "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthenticator(jwtAuth, repo, &logger, tt.enforce).Handler(echoUser)

			req := httptest.NewRequest(http.MethodGet, "/api/users/update-user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthenticator_StoreFailure(t *testing.T) {
	t.Parallel()

	jwtAuth := newTestAuthenticator()
	logger := zerolog.Nop()
	h := NewAuthenticator(jwtAuth, failingFinder{}, &logger, true).Handler(echoUser)

	tok, err := jwtAuth.GenerateAccessToken("000000000000000000000001")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		user       *model.User
		wantStatus int
	}{
		{"admin", &model.User{Role: model.RoleAdmin}, http.StatusOK},
		{"user", &model.User{Role: model.RoleUser}, http.StatusForbidden},
		{"no identity", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()

			RequireAdmin(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireRole(model.RoleUser)(ok)

	for role, want := range map[model.Role]int{
		model.RoleUser:  http.StatusOK,
		model.RoleAdmin: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUser(req.Context(), &model.User{Role: role}))
		rec := httptest.NewRecorder()

		guard.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Code, role)
	}
}

func TestUserFromContext_NilUser(t *testing.T) {
	t.Parallel()

	_, ok := UserFromContext(WithUser(context.Background(), nil))
	assert.False(t, ok)

	_, ok = UserFromContext(context.Background())
	assert.False(t, ok)
}

var _ UserFinder = (repository.UserRepository)(nil)
