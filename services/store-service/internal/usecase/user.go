package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
	"github.com/vasapolrittideah/storefront-api/shared/security"
)

// UserUsecase defines profile and administration operations on users.
type UserUsecase interface {
	ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*model.User, error)
	UpdatePassword(ctx context.Context, id string, newPassword string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*model.User, error)
}

// UpdateProfileParams holds the self-service editable fields of a user.
type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	Mobile    *string
}

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	users, err := u.userRepo.ListUsers(ctx, params)
	if err != nil {
		return nil, err
	}

	for i, user := range users {
		users[i] = user.Sanitized()
	}

	return users, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, userError(err)
	}

	return user.Sanitized(), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*model.User, error) {
	if params == (UpdateProfileParams{}) {
		return nil, ErrNothingToUpdate
	}

	user, err := u.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Mobile:    params.Mobile,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, userError(err)
	}

	return user.Sanitized(), nil
}

func (u *userUsecase) UpdatePassword(ctx context.Context, id string, newPassword string) (*model.User, error) {
	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.UpdatePassword(ctx, id, passwordHash)
	if err != nil {
		return nil, userError(err)
	}

	return user.Sanitized(), nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return nil, userError(err)
	}

	return user.Sanitized(), nil
}

func (u *userUsecase) SetBlocked(ctx context.Context, id string, blocked bool) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{IsBlocked: &blocked})
	if err != nil {
		return nil, userError(err)
	}

	return user.Sanitized(), nil
}

func userError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}

	return err
}
