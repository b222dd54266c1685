package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/storefront-api/shared/auth"
	"github.com/vasapolrittideah/storefront-api/shared/logger"
	"github.com/vasapolrittideah/storefront-api/shared/mailer"
)

const minSecretLength = 32

// Config holds runtime configuration for the store service.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	HTTP   HTTPConfig
	Log    logger.Config
	Mongo  MongoConfig
	Token  TokenConfig
	Cookie CookieConfig
	SMTP   mailer.Config

	AppPasswordResetURL    string `env:"APP_PASSWORD_RESET_URL"     envDefault:"http://localhost:5001/api/users/reset-password"`
	EnforceBlocked         bool   `env:"AUTH_ENFORCE_BLOCKED"       envDefault:"true"`
	AuthRateLimitPerMinute int    `env:"RATE_LIMIT_AUTH_PER_MINUTE" envDefault:"20"`
}

// HTTPConfig holds the listener settings.
type HTTPConfig struct {
	Addr           string        `env:"HTTP_ADDR"            envDefault:":5001"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT"    envDefault:"15s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT"   envDefault:"15s"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI            string        `env:"MONGO_URI,required"`
	Database       string        `env:"MONGO_DATABASE"        envDefault:"storefront"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

// TokenConfig holds the signing secrets and lifetimes of every token the service issues.
type TokenConfig struct {
	Issuer                      string        `env:"JWT_ISSUER"                      envDefault:"storefront-api"`
	AccessTokenSecret           string        `env:"JWT_SECRET,required"`
	RefreshTokenSecret          string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenExpiresIn        time.Duration `env:"JWT_ACCESS_TOKEN_EXPIRES_IN"     envDefault:"1h"`
	RefreshTokenExpiresIn       time.Duration `env:"JWT_REFRESH_TOKEN_EXPIRES_IN"    envDefault:"72h"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_TOKEN_SECRET"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"10m"`
}

// CookieConfig controls the refresh token cookie.
type CookieConfig struct {
	Name     string        `env:"COOKIE_REFRESH_NAME"    envDefault:"refreshToken"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Path     string        `env:"COOKIE_PATH"            envDefault:"/"`
	Secure   *bool         `env:"COOKIE_SECURE"`
	SameSite string        `env:"COOKIE_SAME_SITE"       envDefault:"lax"`
	MaxAge   time.Duration `env:"COOKIE_REFRESH_MAX_AGE" envDefault:"24h"`
}

// Load reads configuration from environment variables, fills derived defaults and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// JWT returns the settings handed to the token signer.
func (c *Config) JWT() auth.Config {
	return auth.Config{
		AccessTokenSecret:     c.Token.AccessTokenSecret,
		RefreshTokenSecret:    c.Token.RefreshTokenSecret,
		AccessTokenExpiresIn:  c.Token.AccessTokenExpiresIn,
		RefreshTokenExpiresIn: c.Token.RefreshTokenExpiresIn,
		Issuer:                c.Token.Issuer,
	}
}

func (c *Config) applyDefaults() {
	if c.Token.RefreshTokenSecret == "" {
		c.Token.RefreshTokenSecret = c.Token.AccessTokenSecret
	}
	if c.Token.PasswordResetTokenSecret == "" {
		c.Token.PasswordResetTokenSecret = c.Token.AccessTokenSecret
	}
	if c.Cookie.Secure == nil {
		secure := c.IsProduction()
		c.Cookie.Secure = &secure
	}
}

// Validate checks secrets, lifetimes and cookie settings.
func (c *Config) Validate() error {
	if len(c.Token.AccessTokenSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET too short (min %d chars)", minSecretLength)
	}
	if len(c.Token.RefreshTokenSecret) < minSecretLength {
		return fmt.Errorf("JWT_REFRESH_SECRET too short (min %d chars)", minSecretLength)
	}
	if c.Token.AccessTokenExpiresIn <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_EXPIRES_IN must be positive")
	}
	if c.Token.RefreshTokenExpiresIn <= c.Token.AccessTokenExpiresIn {
		return errors.New("JWT_REFRESH_TOKEN_EXPIRES_IN must be longer than JWT_ACCESS_TOKEN_EXPIRES_IN")
	}
	if c.Token.PasswordResetTokenExpiresIn <= 0 {
		return errors.New("PASSWORD_RESET_TOKEN_EXPIRES_IN must be positive")
	}
	if c.Cookie.MaxAge <= 0 {
		return errors.New("COOKIE_REFRESH_MAX_AGE must be positive")
	}
	if c.AuthRateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_AUTH_PER_MINUTE must be positive")
	}
	switch strings.ToLower(c.Cookie.SameSite) {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("COOKIE_SAME_SITE must be one of lax, strict, none, got %q", c.Cookie.SameSite)
	}

	return c.SMTP.Validate()
}

// SameSiteMode converts the configured SameSite string to its net/http value.
func (c CookieConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// IsSecure reports whether the cookie carries the Secure attribute.
func (c CookieConfig) IsSecure() bool {
	return c.Secure != nil && *c.Secure
}
