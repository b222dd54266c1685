// Package usecase holds the business rules of the store: authentication,
// password reset, user administration and the catalogue and content CRUD.
package usecase

import (
	"errors"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBlocked        = errors.New("account is blocked")

	ErrRefreshTokenMissing  = errors.New("no refresh token")
	ErrRefreshTokenNotFound = errors.New("refresh token not recognised")
	ErrRefreshTokenMismatch = errors.New("refresh token does not match")

	ErrResetTokenNotFound  = errors.New("password reset token not found")
	ErrResetTokenExpired   = errors.New("password reset token has expired")
	ErrEmailDeliveryFailed = errors.New("failed to send email")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductSlugConflict = errors.New("product slug already exists")
	ErrInvalidProductSlug  = errors.New("product slug must contain a letter or digit")
	ErrBlogNotFound        = errors.New("blog not found")
	ErrPostNotFound        = errors.New("post not found")

	// Repository errors re-exported so handlers only need to know this package.
	ErrInvalidID       = repository.ErrInvalidID
	ErrNothingToUpdate = repository.ErrNothingToUpdate
)
