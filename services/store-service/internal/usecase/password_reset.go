package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/mailer"
	"github.com/vasapolrittideah/storefront-api/shared/security"
)

// PasswordResetUsecase defines the business logic for password reset token operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset stores a fresh reset token for the user and emails its plaintext.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a plaintext reset token and sets the new password.
	ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error)
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	tokens   *security.ResetTokenGenerator
	mailer   mailer.Sender
	resetURL string
	clock    func() time.Time
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
// resetURL is the link base the plaintext token is appended to.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokens *security.ResetTokenGenerator,
	mailer mailer.Sender,
	resetURL string,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: strings.TrimRight(resetURL, "/"),
		clock:    time.Now,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	plain, hashed, expiresAt, err := u.tokens.Generate()
	if err != nil {
		return err
	}

	// A new token overwrites any pending one.
	if err := u.userRepo.SetPasswordResetToken(ctx, user.ID.Hex(), hashed, expiresAt); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/%s", u.resetURL, plain)
	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>Please follow this link to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, resetLink, resetLink, u.tokens.Window())

	if err := u.mailer.Send(mailer.Email{
		To:       []string{user.Email},
		Subject:  "Password Reset Request",
		Body:     fmt.Sprintf("Reset your password within %s: %s", u.tokens.Window(), resetLink),
		HTMLBody: htmlBody,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDeliveryFailed, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error) {
	hashed := u.tokens.Hash(token)

	user, err := u.userRepo.GetUserByPasswordResetToken(ctx, hashed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}

	if user.PasswordResetExpires == nil || !user.PasswordResetExpires.After(u.clock()) {
		return nil, ErrResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	// The filter on the hashed token makes a concurrent second use miss.
	updated, err := u.userRepo.ConsumePasswordResetToken(ctx, user.ID.Hex(), hashed, passwordHash)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}

	return updated.Sanitized(), nil
}
