package repositorytest

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	*store[model.User]
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{store: newStore(cloneUser)}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.PasswordChangedAt != nil {
		t := *u.PasswordChangedAt
		c.PasswordChangedAt = &t
	}
	if u.PasswordResetExpires != nil {
		t := *u.PasswordResetExpires
		c.PasswordResetExpires = &t
	}

	return &c
}

func (r *UserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.first(func(u *model.User) bool { return u.Email == user.Email }); ok {
		return nil, duplicateKeyError("email")
	}

	ts := now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = ts
	user.UpdatedAt = ts
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	r.put(user.ID, user)

	return cloneUser(user), nil
}

func (r *UserRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.get(id)
	if err != nil {
		return nil, err
	}

	return cloneUser(user), nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Email == email })
}

func (r *UserRepository) GetUserByRefreshToken(_ context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, mongo.ErrNoDocuments
	}

	return r.findBy(func(u *model.User) bool { return u.RefreshToken == token })
}

func (r *UserRepository) GetUserByPasswordResetToken(_ context.Context, hashedToken string) (*model.User, error) {
	if hashedToken == "" {
		return nil, mongo.ErrNoDocuments
	}

	return r.findBy(func(u *model.User) bool { return u.PasswordResetToken == hashedToken })
}

func (r *UserRepository) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	return r.mutate(id, func(u *model.User) error {
		if params.Email == nil && params.FirstName == nil && params.LastName == nil &&
			params.Mobile == nil && params.Role == nil && params.IsBlocked == nil {
			return repository.ErrNothingToUpdate
		}

		if params.Email != nil && *params.Email != u.Email {
			if _, ok := r.first(func(o *model.User) bool { return o.Email == *params.Email }); ok {
				return duplicateKeyError("email")
			}
			u.Email = *params.Email
		}
		if params.FirstName != nil {
			u.FirstName = *params.FirstName
		}
		if params.LastName != nil {
			u.LastName = *params.LastName
		}
		if params.Mobile != nil {
			u.Mobile = *params.Mobile
		}
		if params.Role != nil {
			u.Role = *params.Role
		}
		if params.IsBlocked != nil {
			u.IsBlocked = *params.IsBlocked
		}

		return nil
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id string, passwordHash string) (*model.User, error) {
	return r.mutate(id, func(u *model.User) error {
		setPassword(u, passwordHash)
		return nil
	})
}

func (r *UserRepository) SetRefreshToken(_ context.Context, id string, token string) error {
	_, err := r.mutate(id, func(u *model.User) error {
		u.RefreshToken = token
		return nil
	})

	return err
}

func (r *UserRepository) ClearRefreshToken(_ context.Context, id string) error {
	_, err := r.mutate(id, func(u *model.User) error {
		u.RefreshToken = ""
		return nil
	})

	return err
}

func (r *UserRepository) SetPasswordResetToken(
	_ context.Context,
	id string,
	hashedToken string,
	expiresAt time.Time,
) error {
	_, err := r.mutate(id, func(u *model.User) error {
		u.PasswordResetToken = hashedToken
		u.PasswordResetExpires = &expiresAt
		return nil
	})

	return err
}

func (r *UserRepository) ConsumePasswordResetToken(
	_ context.Context,
	id string,
	hashedToken string,
	passwordHash string,
) (*model.User, error) {
	return r.mutate(id, func(u *model.User) error {
		if hashedToken == "" || u.PasswordResetToken != hashedToken {
			return mongo.ErrNoDocuments
		}
		setPassword(u, passwordHash)

		return nil
	})
}

func (r *UserRepository) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(id)
}

func (r *UserRepository) ListUsers(_ context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.list(params.ListParams, func(u *model.User) bool {
		if params.Role != nil && u.Role != *params.Role {
			return false
		}
		if params.IsBlocked != nil && u.IsBlocked != *params.IsBlocked {
			return false
		}

		return true
	}), nil
}

func (r *UserRepository) findBy(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.first(match)
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return cloneUser(user), nil
}

// mutate applies fn to a copy of the stored user and commits it only when fn succeeds.
func (r *UserRepository) mutate(id string, fn func(*model.User) error) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.get(id)
	if err != nil {
		return nil, err
	}

	user := cloneUser(stored)
	if err := fn(user); err != nil {
		return nil, err
	}
	user.UpdatedAt = now()
	r.put(user.ID, user)

	return cloneUser(user), nil
}

func setPassword(u *model.User, passwordHash string) {
	ts := now()
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &ts
	u.PasswordResetToken = ""
	u.PasswordResetExpires = nil
}
