package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/auth"
	"github.com/vasapolrittideah/storefront-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh mints a new access token from the refresh token held in the client's cookie.
	// The refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)

	// Logout forgets the refresh token. An unknown token is not an error.
	Logout(ctx context.Context, refreshToken string) error
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Password  string
}

// LoginResult carries the sanitized user together with the freshly issued tokens.
type LoginResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// RefreshResult carries a newly minted access token and its lifetime.
type RefreshResult struct {
	AccessToken string
	ExpiresIn   time.Duration
}

type authUsecase struct {
	userRepo       repository.UserRepository
	jwtAuth        *auth.JWTAuthenticator
	enforceBlocked bool
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth *auth.JWTAuthenticator,
	enforceBlocked bool,
) AuthUsecase {
	return &authUsecase{
		userRepo:       userRepo,
		jwtAuth:        jwtAuth,
		enforceBlocked: enforceBlocked,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Mobile:       params.Mobile,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user.Sanitized(), nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if u.enforceBlocked && user.IsBlocked {
		return nil, ErrUserBlocked
	}

	userID := user.ID.Hex()

	accessToken, err := u.jwtAuth.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.jwtAuth.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.SetRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    u.jwtAuth.AccessTokenExpiresIn(),
	}, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenMissing
	}

	user, err := u.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRefreshTokenNotFound
		}

		return nil, err
	}

	claims, err := u.jwtAuth.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Join(ErrRefreshTokenMismatch, err)
	}

	if claims.Subject != user.ID.Hex() {
		return nil, ErrRefreshTokenMismatch
	}

	if u.enforceBlocked && user.IsBlocked {
		return nil, ErrUserBlocked
	}

	accessToken, err := u.jwtAuth.GenerateAccessToken(claims.Subject)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken: accessToken,
		ExpiresIn:   u.jwtAuth.AccessTokenExpiresIn(),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshTokenMissing
	}

	user, err := u.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}

		return err
	}

	return u.userRepo.ClearRefreshToken(ctx, user.ID.Hex())
}
