package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/glowcart/glowcart-api/internal/model"
)

// PaymentRepository defines the interface for payment-related database
// operations.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetPayment(ctx context.Context, id string) (*model.Payment, error)
	GetPaymentByPIDX(ctx context.Context, pidx string) (*model.Payment, error)
	UpdatePayment(ctx context.Context, id string, params UpdatePaymentParams) (*model.Payment, error)
}

// UpdatePaymentParams defines the optional parameters for updating a payment.
// Only the fields that are not nil will be updated.
type UpdatePaymentParams struct {
	PIDX          *string
	TransactionID *string
	Status        *string
}

const paymentCollection = "payments"

type paymentMongoRepository struct {
	db *mongo.Database
}

func NewPaymentMongoRepository(db *mongo.Database) PaymentRepository {
	return &paymentMongoRepository{db: db}
}

func (r *paymentMongoRepository) CreatePayment(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	result, err := r.db.Collection(paymentCollection).InsertOne(ctx, payment)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		payment.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return payment, nil
}

func (r *paymentMongoRepository) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *paymentMongoRepository) GetPaymentByPIDX(ctx context.Context, pidx string) (*model.Payment, error) {
	return r.findOne(ctx, bson.M{"pidx": pidx})
}

func (r *paymentMongoRepository) UpdatePayment(
	ctx context.Context,
	id string,
	params UpdatePaymentParams,
) (*model.Payment, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.PIDX != nil {
		updateMap["pidx"] = *params.PIDX
	}
	if params.TransactionID != nil {
		updateMap["transaction_id"] = *params.TransactionID
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no payment fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(paymentCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var payment model.Payment
	if err := result.Decode(&payment); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Payment, error) {
	result := r.db.Collection(paymentCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var payment model.Payment
	if err := result.Decode(&payment); err != nil {
		return nil, err
	}

	return &payment, nil
}
