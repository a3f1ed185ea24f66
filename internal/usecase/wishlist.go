package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// WishlistUsecase defines wishlist use cases.
type WishlistUsecase interface {
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
	GetWishlist(ctx context.Context, userID string) ([]*model.Product, error)
}

var (
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not found in wishlist")
)

type wishlistUsecase struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
}

func NewWishlistUsecase(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) WishlistUsecase {
	return &wishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

func (u *wishlistUsecase) AddToWishlist(ctx context.Context, userID, productID string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	product, err := u.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}

		return err
	}

	wishlist, err := u.wishlistRepo.GetByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if wishlist != nil && containsObjectID(wishlist.ProductIDs, product.ID) {
		return ErrAlreadyInWishlist
	}

	return u.wishlistRepo.AddProduct(ctx, user.ID, product.ID)
}

func (u *wishlistUsecase) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	productObjectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}

	if err := u.wishlistRepo.RemoveProduct(ctx, userObjectID, productObjectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotInWishlist
		}

		return err
	}

	return nil
}

func (u *wishlistUsecase) GetWishlist(ctx context.Context, userID string) ([]*model.Product, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	wishlist, err := u.wishlistRepo.GetByUser(ctx, userObjectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []*model.Product{}, nil
		}

		return nil, err
	}

	if len(wishlist.ProductIDs) == 0 {
		return []*model.Product{}, nil
	}

	return u.productRepo.GetProductsByIDs(ctx, wishlist.ProductIDs)
}

func containsObjectID(ids []bson.ObjectID, id bson.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}
