package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// OrderUsecase defines order placement and management use cases.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID string, params PlaceOrderParams) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]*model.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}

// PlaceOrderParams defines the parameters for placing an order.
type PlaceOrderParams struct {
	CartItemIDs []string
	TotalPrice  float64
	Name        string
	Email       string
	Street      string
	City        string
	Phone       string
}

var ErrOrderNotFound = errors.New("order not found")

type orderUsecase struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

func NewOrderUsecase(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
) OrderUsecase {
	return &orderUsecase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

func (u *orderUsecase) PlaceOrder(
	ctx context.Context,
	userID string,
	params PlaceOrderParams,
) (*model.Order, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	cartItemIDs := make([]bson.ObjectID, 0, len(params.CartItemIDs))
	for _, id := range params.CartItemIDs {
		objectID, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrNotInCart
		}
		cartItemIDs = append(cartItemIDs, objectID)
	}

	return u.orderRepo.CreateOrder(ctx, &model.Order{
		UserID:      userObjectID,
		CartItemIDs: cartItemIDs,
		TotalPrice:  params.TotalPrice,
		Name:        params.Name,
		Email:       params.Email,
		Street:      params.Street,
		City:        params.City,
		Phone:       params.Phone,
	})
}

func (u *orderUsecase) GetAllOrders(ctx context.Context) ([]*model.Order, error) {
	return u.orderRepo.ListOrders(ctx)
}

func (u *orderUsecase) GetOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return u.orderRepo.ListOrdersByUser(ctx, userObjectID)
}

// UpdateOrderStatus sets an order's status. A delivered order is removed,
// matching the storefront's behavior of treating delivery as completion.
func (u *orderUsecase) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if _, err := u.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOrderNotFound
		}

		return err
	}

	if strings.EqualFold(status, model.OrderStatusDelivered) {
		return u.orderRepo.DeleteOrder(ctx, orderID)
	}

	return nil
}
