package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository/repositorytest"
	"github.com/vasapolrittideah/storefront-api/shared/security"
)

const testResetURL = "http://localhost:5001/api/users/reset-password/"

type passwordResetFixture struct {
	uc     *passwordResetUsecase
	repo   *repositorytest.UserRepository
	tokens *security.ResetTokenGenerator
	mail   *fakeMailer
	user   *model.User
}

func newPasswordResetFixture(t *testing.T) *passwordResetFixture {
	t.Helper()

	repo := repositorytest.NewUserRepository()
	hash, err := security.HashPassword("secret1")
	require.NoError(t, err)
	user, err := repo.CreateUser(context.Background(), &model.User{Email: "a@x.com", PasswordHash: hash})
	require.NoError(t, err)

	tokens := security.NewResetTokenGenerator(testSecret, 10*time.Minute)
	mail := &fakeMailer{}
	uc := NewPasswordResetUsecase(repo, tokens, mail, testResetURL).(*passwordResetUsecase)

	return &passwordResetFixture{uc: uc, repo: repo, tokens: tokens, mail: mail, user: user}
}

// plainTokenFromEmail extracts the plaintext token from the last reset link sent.
func (f *passwordResetFixture) plainTokenFromEmail(t *testing.T) string {
	t.Helper()

	body := f.mail.last().Body
	idx := strings.LastIndex(body, "/")
	require.Positive(t, idx)

	return body[idx+1:]
}

func TestRequestPasswordReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPasswordResetFixture(t)

	require.NoError(t, f.uc.RequestPasswordReset(ctx, "a@x.com"))

	email := f.mail.last()
	assert.Equal(t, []string{"a@x.com"}, email.To)
	assert.Equal(t, "Password Reset Request", email.Subject)
	assert.Contains(t, email.HTMLBody, "http://localhost:5001/api/users/reset-password/")

	plain := f.plainTokenFromEmail(t)
	stored, err := f.repo.GetUser(ctx, f.user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, f.tokens.Hash(plain), stored.PasswordResetToken)
	assert.NotEqual(t, plain, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordResetExpires)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *stored.PasswordResetExpires, time.Minute)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	f := newPasswordResetFixture(t)

	err := f.uc.RequestPasswordReset(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, f.mail.sent)
}

func TestRequestPasswordReset_DeliveryFailure(t *testing.T) {
	t.Parallel()

	f := newPasswordResetFixture(t)
	f.mail.err = errSMTPDown

	err := f.uc.RequestPasswordReset(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrEmailDeliveryFailed)
	assert.ErrorIs(t, err, errSMTPDown)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPasswordResetFixture(t)

	require.NoError(t, f.uc.RequestPasswordReset(ctx, "a@x.com"))
	plain := f.plainTokenFromEmail(t)

	user, err := f.uc.ResetPassword(ctx, plain, "newpass1")
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, user.ID)
	assert.NotNil(t, user.PasswordChangedAt)

	stored, err := f.repo.GetUser(ctx, f.user.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, stored.PasswordResetToken)
	assert.Nil(t, stored.PasswordResetExpires)
	ok, err := security.VerifyPassword("newpass1", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.uc.ResetPassword(ctx, plain, "another1")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestResetPassword_WrongToken(t *testing.T) {
	t.Parallel()

	f := newPasswordResetFixture(t)

	_, err := f.uc.ResetPassword(context.Background(), "deadbeef", "newpass1")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestResetPassword_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPasswordResetFixture(t)

	plain, hashed, _, err := f.tokens.Generate()
	require.NoError(t, err)
	require.NoError(t, f.repo.SetPasswordResetToken(ctx, f.user.ID.Hex(), hashed, time.Now().Add(-time.Second)))

	_, err = f.uc.ResetPassword(ctx, plain, "newpass1")
	assert.ErrorIs(t, err, ErrResetTokenExpired)

	stored, err := f.repo.GetUser(ctx, f.user.ID.Hex())
	require.NoError(t, err)
	ok, err := security.VerifyPassword("secret1", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResetPassword_NewRequestSupersedesOld(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPasswordResetFixture(t)

	require.NoError(t, f.uc.RequestPasswordReset(ctx, "a@x.com"))
	first := f.plainTokenFromEmail(t)
	require.NoError(t, f.uc.RequestPasswordReset(ctx, "a@x.com"))
	second := f.plainTokenFromEmail(t)

	_, err := f.uc.ResetPassword(ctx, first, "newpass1")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)

	_, err = f.uc.ResetPassword(ctx, second, "newpass1")
	assert.NoError(t, err)
}
