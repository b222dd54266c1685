package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/storefront-api/services/store-service/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByRefreshToken(ctx context.Context, token string) (*model.User, error)
	GetUserByPasswordResetToken(ctx context.Context, hashedToken string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error)

	// UpdatePassword replaces the password hash and drops any pending reset token.
	UpdatePassword(ctx context.Context, id string, passwordHash string) (*model.User, error)

	// SetRefreshToken overwrites the stored refresh token, invalidating the previous one.
	SetRefreshToken(ctx context.Context, id string, token string) error

	// ClearRefreshToken removes the stored refresh token.
	ClearRefreshToken(ctx context.Context, id string) error

	// SetPasswordResetToken stores a hashed reset token together with its expiry.
	SetPasswordResetToken(ctx context.Context, id string, hashedToken string, expiresAt time.Time) error

	// ConsumePasswordResetToken sets a new password hash and clears both reset fields in one
	// write, provided the user still holds hashedToken. Otherwise it returns mongo.ErrNoDocuments.
	ConsumePasswordResetToken(ctx context.Context, id string, hashedToken string, passwordHash string) (*model.User, error)
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated.
type UpdateUserParams struct {
	Email     *string
	FirstName *string
	LastName  *string
	Mobile    *string
	Role      *model.Role
	IsBlocked *bool
}

// FilterUsersParams defines the parameters for filtering and paginating users.
type FilterUsersParams struct {
	ListParams
	Role      *model.Role
	IsBlocked *bool
}

const userCollection = "users"

var sortableUserFields = map[string]bool{
	"created_at": true,
	"email":      true,
	"lastname":   true,
}

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates the user repository and ensures its indexes.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "refresh_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "password_reset_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongoRepository) GetUserByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, mongo.ErrNoDocuments
	}

	return r.findOne(ctx, bson.M{"refresh_token": token})
}

func (r *userMongoRepository) GetUserByPasswordResetToken(ctx context.Context, hashedToken string) (*model.User, error) {
	if hashedToken == "" {
		return nil, mongo.ErrNoDocuments
	}

	return r.findOne(ctx, bson.M{"password_reset_token": hashedToken})
}

func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	updateMap := bson.M{}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.FirstName != nil {
		updateMap["firstname"] = *params.FirstName
	}
	if params.LastName != nil {
		updateMap["lastname"] = *params.LastName
	}
	if params.Mobile != nil {
		updateMap["mobile"] = *params.Mobile
	}
	if params.Role != nil {
		updateMap["role"] = *params.Role
	}
	if params.IsBlocked != nil {
		updateMap["is_blocked"] = *params.IsBlocked
	}

	if len(updateMap) == 0 {
		return nil, ErrNothingToUpdate
	}

	updateMap["updated_at"] = time.Now()

	return r.findOneAndUpdate(ctx, id, bson.M{}, bson.M{"$set": updateMap})
}

func (r *userMongoRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) (*model.User, error) {
	now := time.Now()

	return r.findOneAndUpdate(ctx, id, bson.M{}, bson.M{
		"$set": bson.M{
			"password_hash":       passwordHash,
			"password_changed_at": now,
			"updated_at":          now,
		},
		"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		},
	})
}

func (r *userMongoRepository) SetRefreshToken(ctx context.Context, id string, token string) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"refresh_token": token,
			"updated_at":    time.Now(),
		},
	})
}

func (r *userMongoRepository) ClearRefreshToken(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.M{
		"$set":   bson.M{"updated_at": time.Now()},
		"$unset": bson.M{"refresh_token": ""},
	})
}

func (r *userMongoRepository) SetPasswordResetToken(
	ctx context.Context,
	id string,
	hashedToken string,
	expiresAt time.Time,
) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"password_reset_token":   hashedToken,
			"password_reset_expires": expiresAt,
			"updated_at":             time.Now(),
		},
	})
}

func (r *userMongoRepository) ConsumePasswordResetToken(
	ctx context.Context,
	id string,
	hashedToken string,
	passwordHash string,
) (*model.User, error) {
	now := time.Now()

	return r.findOneAndUpdate(ctx, id, bson.M{"password_reset_token": hashedToken}, bson.M{
		"$set": bson.M{
			"password_hash":       passwordHash,
			"password_changed_at": now,
			"updated_at":          now,
		},
		"$unset": bson.M{
			"password_reset_token":   "",
			"password_reset_expires": "",
		},
	})
}

func (r *userMongoRepository) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error) {
	filter := bson.M{}
	if params.Role != nil {
		filter["role"] = *params.Role
	}
	if params.IsBlocked != nil {
		filter["is_blocked"] = *params.IsBlocked
	}

	users := documentCollection[model.User]{collection: r.db.Collection(userCollection)}

	return users.find(ctx, filter, params.findOptions(sortableUserFields))
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) findOneAndUpdate(
	ctx context.Context,
	id string,
	filter bson.M,
	update bson.M,
) (*model.User, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	filter["_id"] = objectID

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	objectID, err := ParseID(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
