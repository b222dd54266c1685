package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType tells access and refresh tokens apart so one can never stand in for the other.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	// ErrInvalidToken is returned for every token that fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is wrapped together with ErrInvalidToken when the token is well-formed but stale.
	ErrTokenExpired = errors.New("token has expired")

	// ErrWrongTokenType is wrapped together with ErrInvalidToken when a refresh token is presented as an access token or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims is the payload carried by access and refresh tokens.
type Claims struct {
	UserID    string    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Config holds the signing material and lifetimes of issued tokens.
type Config struct {
	AccessTokenSecret     string
	RefreshTokenSecret    string
	AccessTokenExpiresIn  time.Duration
	RefreshTokenExpiresIn time.Duration
	Issuer                string
}

// JWTAuthenticator represents a JWT based authenticator.
type JWTAuthenticator struct {
	config Config
	now    func() time.Time
}

// Option configures a JWTAuthenticator.
type Option func(*JWTAuthenticator)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(a *JWTAuthenticator) {
		a.now = now
	}
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(cfg Config, opts ...Option) *JWTAuthenticator {
	a := &JWTAuthenticator{
		config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// AccessTokenExpiresIn returns the lifetime of issued access tokens.
func (a *JWTAuthenticator) AccessTokenExpiresIn() time.Duration {
	return a.config.AccessTokenExpiresIn
}

// GenerateAccessToken issues a short-lived access token for the given user.
func (a *JWTAuthenticator) GenerateAccessToken(userID string) (string, error) {
	claims := a.newClaims(userID, TokenTypeAccess, a.config.AccessTokenExpiresIn)
	return a.GenerateToken(claims, a.config.AccessTokenSecret)
}

// GenerateRefreshToken issues a long-lived refresh token for the given user.
func (a *JWTAuthenticator) GenerateRefreshToken(userID string) (string, error) {
	claims := a.newClaims(userID, TokenTypeRefresh, a.config.RefreshTokenExpiresIn)
	return a.GenerateToken(claims, a.config.RefreshTokenSecret)
}

// GenerateToken generates a JWT token with the given claims and secret.
func (a *JWTAuthenticator) GenerateToken(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func (a *JWTAuthenticator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return a.validate(tokenString, a.config.AccessTokenSecret, TokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (a *JWTAuthenticator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return a.validate(tokenString, a.config.RefreshTokenSecret, TokenTypeRefresh)
}

func (a *JWTAuthenticator) validate(tokenString, secret string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.config.Issuer),
		jwt.WithIssuer(a.config.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expected {
		return nil, fmt.Errorf("%w: %w %q", ErrInvalidToken, ErrWrongTokenType, claims.TokenType)
	}

	if claims.Subject == "" || claims.Subject != claims.UserID {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

func (a *JWTAuthenticator) newClaims(userID string, tokenType TokenType, expiresIn time.Duration) Claims {
	now := a.now()

	return Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    a.config.Issuer,
			Audience:  jwt.ClaimStrings{a.config.Issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
}
