package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// ReviewUsecase defines product rating and review use cases.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, userID, productID string, rating int, comment string) (*model.Review, error)
	GetReviewsByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	GetReviewByUserAndProduct(ctx context.Context, userID, productID string) (*model.Review, error)
	UpdateReview(ctx context.Context, userID, productID string, rating int, comment string) (*model.Review, error)
	GetAverageRating(ctx context.Context, productID string) (float64, int64, error)
}

var (
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrReviewNotFound  = errors.New("review not found")
)

type reviewUsecase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewUsecase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewUsecase {
	return &reviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (u *reviewUsecase) CreateReview(
	ctx context.Context,
	userID, productID string,
	rating int,
	comment string,
) (*model.Review, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	product, err := u.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	_, err = u.reviewRepo.GetByUserAndProduct(ctx, userObjectID, product.ID)
	if err == nil {
		return nil, ErrAlreadyReviewed
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return u.reviewRepo.CreateReview(ctx, &model.Review{
		UserID:    userObjectID,
		ProductID: product.ID,
		Rating:    rating,
		Comment:   comment,
	})
}

func (u *reviewUsecase) GetReviewsByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	productObjectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	return u.reviewRepo.ListByProduct(ctx, productObjectID)
}

func (u *reviewUsecase) GetReviewByUserAndProduct(
	ctx context.Context,
	userID, productID string,
) (*model.Review, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	productObjectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	review, err := u.reviewRepo.GetByUserAndProduct(ctx, userObjectID, productObjectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}

		return nil, err
	}

	return review, nil
}

func (u *reviewUsecase) UpdateReview(
	ctx context.Context,
	userID, productID string,
	rating int,
	comment string,
) (*model.Review, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	productObjectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	review, err := u.reviewRepo.UpdateReview(ctx, userObjectID, productObjectID, rating, comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}

		return nil, err
	}

	return review, nil
}

func (u *reviewUsecase) GetAverageRating(ctx context.Context, productID string) (float64, int64, error) {
	productObjectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return 0, 0, ErrProductNotFound
	}

	return u.reviewRepo.AverageRating(ctx, productObjectID)
}
