package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// UserUsecase defines profile-related use cases for an authenticated user.
type UserUsecase interface {
	CurrentUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, params repository.UpdateProfileParams) (*model.User, error)
}

type userUsecase struct {
	userRepo repository.UserRepository
}

func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) CurrentUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

// UpdateProfile applies a partial update: only the fields present in params
// are touched, everything else stays as is.
func (u *userUsecase) UpdateProfile(
	ctx context.Context,
	id string,
	params repository.UpdateProfileParams,
) (*model.User, error) {
	user, err := u.userRepo.UpdateProfile(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}
