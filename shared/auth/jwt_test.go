package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(opts ...Option) *JWTAuthenticator {
	return NewJWTAuthenticator(Config{
		AccessTokenSecret:     "access-secret-access-secret-access",
		RefreshTokenSecret:    "refresh-secret-refresh-secret-refresh",
		AccessTokenExpiresIn:  time.Hour,
		RefreshTokenExpiresIn: 72 * time.Hour,
		Issuer:                "storefront-api",
	}, opts...)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator()

	token, err := a.GenerateAccessToken("user-123")
	require.NoError(t, err)

	claims, err := a.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator()

	token, err := a.GenerateRefreshToken("user-456")
	require.NoError(t, err)

	claims, err := a.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestTokensIssuedTogetherDiffer(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator()

	first, err := a.GenerateRefreshToken("u1")
	require.NoError(t, err)
	second, err := a.GenerateRefreshToken("u1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now()
	issuer := newTestAuthenticator(WithClock(func() time.Time { return issuedAt }))
	token, err := issuer.GenerateAccessToken("u1")
	require.NoError(t, err)

	later := newTestAuthenticator(WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) }))
	_, err = later.ValidateAccessToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_Rejections(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator()

	refresh, err := a.GenerateRefreshToken("u1")
	require.NoError(t, err)

	other := NewJWTAuthenticator(Config{
		AccessTokenSecret:    "some-other-secret-some-other-secret",
		AccessTokenExpiresIn: time.Hour,
		Issuer:               "storefront-api",
	})
	foreign, err := other.GenerateAccessToken("u1")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id":    "u1",
		"sub":        "u1",
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "garbage"},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
		{"refresh token used as access", refresh},
		{"wrong secret", foreign},
		{"unsigned", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.ValidateAccessToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.NotErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator()

	access, err := a.GenerateAccessToken("u1")
	require.NoError(t, err)

	_, err = a.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_SharedSecretStillChecksType(t *testing.T) {
	t.Parallel()

	secret := "shared-secret-shared-secret-shared"
	a := NewJWTAuthenticator(Config{
		AccessTokenSecret:     secret,
		RefreshTokenSecret:    secret,
		AccessTokenExpiresIn:  time.Hour,
		RefreshTokenExpiresIn: 72 * time.Hour,
		Issuer:                "storefront-api",
	})

	refresh, err := a.GenerateRefreshToken("u1")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}
