package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/shared/payment"
)

// PaymentUsecase defines the payment gateway integration use cases.
type PaymentUsecase interface {
	InitializePayment(ctx context.Context, params InitializePaymentParams) (*InitializePaymentResult, error)
	CompletePayment(ctx context.Context, pidx string) (*model.Payment, error)
}

// InitializePaymentParams defines the parameters for starting a gateway
// payment for an order.
type InitializePaymentParams struct {
	OrderID    string
	TotalPrice float64
	WebsiteURL string
	ReturnURL  string
}

// InitializePaymentResult carries the gateway redirect details back to the
// storefront.
type InitializePaymentResult struct {
	PaymentID  string
	PIDX       string
	PaymentURL string
}

// PaymentGateway is the slice of the gateway client the usecase needs.
// Implemented by shared/payment.KhaltiClient.
type PaymentGateway interface {
	Initiate(ctx context.Context, params payment.InitiateParams) (*payment.InitiateResult, error)
	Lookup(ctx context.Context, pidx string) (*payment.LookupResult, error)
}

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentMismatch = errors.New("payment could not be verified")
)

type paymentUsecase struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	gateway     PaymentGateway
}

func NewPaymentUsecase(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	gateway PaymentGateway,
) PaymentUsecase {
	return &paymentUsecase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		gateway:     gateway,
	}
}

func (u *paymentUsecase) InitializePayment(
	ctx context.Context,
	params InitializePaymentParams,
) (*InitializePaymentResult, error) {
	order, err := u.orderRepo.GetOrder(ctx, params.OrderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	if order.TotalPrice != params.TotalPrice {
		return nil, ErrPaymentMismatch
	}

	purchaseName, err := u.purchaseName(ctx, order)
	if err != nil {
		return nil, err
	}

	pending, err := u.paymentRepo.CreatePayment(ctx, &model.Payment{
		OrderID: order.ID,
		Gateway: "khalti",
		Amount:  order.TotalPrice,
		Status:  model.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	initiated, err := u.gateway.Initiate(ctx, payment.InitiateParams{
		AmountPaisa:       int64(order.TotalPrice * 100),
		PurchaseOrderID:   pending.ID.Hex(),
		PurchaseOrderName: purchaseName,
		ReturnURL:         params.ReturnURL,
		WebsiteURL:        params.WebsiteURL,
	})
	if err != nil {
		return nil, err
	}

	if _, err := u.paymentRepo.UpdatePayment(ctx, pending.ID.Hex(), repository.UpdatePaymentParams{
		PIDX: &initiated.PIDX,
	}); err != nil {
		return nil, err
	}

	return &InitializePaymentResult{
		PaymentID:  pending.ID.Hex(),
		PIDX:       initiated.PIDX,
		PaymentURL: initiated.PaymentURL,
	}, nil
}

// CompletePayment verifies the gateway callback. The payment is marked
// successful only when the gateway reports the transaction completed with the
// amount the payment was created for; anything else marks it failed.
func (u *paymentUsecase) CompletePayment(ctx context.Context, pidx string) (*model.Payment, error) {
	stored, err := u.paymentRepo.GetPaymentByPIDX(ctx, pidx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPaymentNotFound
		}

		return nil, err
	}

	lookup, err := u.gateway.Lookup(ctx, pidx)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(lookup.Status, "Completed") || lookup.TotalAmount != int64(stored.Amount*100) {
		failed := model.PaymentStatusFailed
		if _, err := u.paymentRepo.UpdatePayment(ctx, stored.ID.Hex(), repository.UpdatePaymentParams{
			Status: &failed,
		}); err != nil {
			return nil, err
		}

		return nil, ErrPaymentMismatch
	}

	success := model.PaymentStatusSuccess
	updated, err := u.paymentRepo.UpdatePayment(ctx, stored.ID.Hex(), repository.UpdatePaymentParams{
		TransactionID: &lookup.TransactionID,
		Status:        &success,
	})
	if err != nil {
		return nil, err
	}

	if err := u.orderRepo.MarkPaid(ctx, stored.OrderID.Hex()); err != nil {
		return nil, err
	}

	return updated, nil
}

func (u *paymentUsecase) purchaseName(ctx context.Context, order *model.Order) (string, error) {
	items, err := u.cartRepo.GetItemsByIDs(ctx, order.CartItemIDs)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		product, err := u.productRepo.GetProduct(ctx, item.ProductID.Hex())
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}

			return "", err
		}
		names = append(names, product.Name)
	}

	if len(names) == 0 {
		return "Order " + order.ID.Hex(), nil
	}

	return strings.Join(names, ", "), nil
}
