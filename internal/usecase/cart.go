package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// CartUsecase defines shopping cart use cases.
type CartUsecase interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, error)
	RemoveFromCart(ctx context.Context, itemID string) error
	GetActiveCart(ctx context.Context, userID string) ([]*model.CartItemWithProduct, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	DeactivateCart(ctx context.Context, userID string) error
}

var (
	ErrAlreadyInCart = errors.New("product already in cart")
	ErrNotInCart     = errors.New("product not found in cart")
)

type cartUsecase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewCartUsecase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) CartUsecase {
	return &cartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (u *cartUsecase) AddToCart(
	ctx context.Context,
	userID, productID string,
	quantity int,
) (*model.CartItem, error) {
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

	_, err = u.cartRepo.GetActiveItem(ctx, userObjectID, product.ID)
	if err == nil {
		return nil, ErrAlreadyInCart
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return u.cartRepo.AddItem(ctx, &model.CartItem{
		UserID:    userObjectID,
		ProductID: product.ID,
		Quantity:  quantity,
	})
}

func (u *cartUsecase) RemoveFromCart(ctx context.Context, itemID string) error {
	if err := u.cartRepo.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotInCart
		}

		return err
	}

	return nil
}

func (u *cartUsecase) GetActiveCart(ctx context.Context, userID string) ([]*model.CartItemWithProduct, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	items, err := u.cartRepo.ListActiveItems(ctx, userObjectID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return []*model.CartItemWithProduct{}, nil
	}

	productIDs := make([]bson.ObjectID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := u.productRepo.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productsByID := make(map[bson.ObjectID]*model.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	joined := make([]*model.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		joined = append(joined, &model.CartItemWithProduct{
			CartItem: *item,
			Product:  productsByID[item.ProductID],
		})
	}

	return joined, nil
}

func (u *cartUsecase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	productObjectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return ErrProductNotFound
	}

	if err := u.cartRepo.UpdateQuantity(ctx, userObjectID, productObjectID, quantity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotInCart
		}

		return err
	}

	return nil
}

func (u *cartUsecase) DeactivateCart(ctx context.Context, userID string) error {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	return u.cartRepo.UpdateStatusForUser(ctx, userObjectID, model.CartStatusInactive)
}
