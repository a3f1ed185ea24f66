package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/glowcart/glowcart-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
// The passcode and lockout mutations are purpose-built updates so the auth
// flows never do a raw read-modify-write of the whole record.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*model.User, error)

	SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error
	MarkVerified(ctx context.Context, id string) error

	SetLoginCode(ctx context.Context, id, code string, expires time.Time) error
	ClearLoginCode(ctx context.Context, id string) error

	SetResetCode(ctx context.Context, id, code string, expires time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, history []string) error

	RecordLoginFailure(ctx context.Context, id string, attempts int, lockout *time.Time) error
	ClearLoginFailures(ctx context.Context, id string) error
}

// UpdateProfileParams defines the optional parameters for updating a user's
// profile. Only the fields that are not nil will be updated.
type UpdateProfileParams struct {
	UserName       *string
	Email          *string
	Phone          *string
	ProfilePicture *string
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
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
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongoRepository) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *userMongoRepository) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.UserName != nil {
		updateMap["user_name"] = *params.UserName
	}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.Phone != nil {
		updateMap["phone"] = *params.Phone
	}
	if params.ProfilePicture != nil {
		updateMap["profile_picture"] = *params.ProfilePicture
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no user fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
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

func (r *userMongoRepository) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	return r.setFields(ctx, id, bson.M{
		"verification_otp": code,
		"otp_expires":      expires,
	})
}

func (r *userMongoRepository) MarkVerified(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{
		"is_verified":      true,
		"verification_otp": nil,
		"otp_expires":      nil,
	})
}

func (r *userMongoRepository) SetLoginCode(ctx context.Context, id, code string, expires time.Time) error {
	return r.setFields(ctx, id, bson.M{
		"login_otp":         code,
		"login_otp_expires": expires,
	})
}

func (r *userMongoRepository) ClearLoginCode(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{
		"login_otp":         nil,
		"login_otp_expires": nil,
	})
}

func (r *userMongoRepository) SetResetCode(ctx context.Context, id, code string, expires time.Time) error {
	return r.setFields(ctx, id, bson.M{
		"reset_password_otp":     code,
		"reset_password_expires": expires,
	})
}

func (r *userMongoRepository) UpdatePassword(ctx context.Context, id, passwordHash string, history []string) error {
	return r.setFields(ctx, id, bson.M{
		"password_hash":          passwordHash,
		"password_history":       history,
		"reset_password_otp":     nil,
		"reset_password_expires": nil,
	})
}

func (r *userMongoRepository) RecordLoginFailure(ctx context.Context, id string, attempts int, lockout *time.Time) error {
	return r.setFields(ctx, id, bson.M{
		"failed_login_attempts": attempts,
		"lockout_time":          lockout,
	})
}

func (r *userMongoRepository) ClearLoginFailures(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{
		"failed_login_attempts": 0,
		"lockout_time":          nil,
	})
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

func (r *userMongoRepository) setFields(ctx context.Context, id string, fields bson.M) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	fields["updated_at"] = time.Now()

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
