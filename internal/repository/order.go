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

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context) ([]*model.Order, error)
	ListOrdersByUser(ctx context.Context, userID bson.ObjectID) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	MarkPaid(ctx context.Context, id string) error
	DeleteOrder(ctx context.Context, id string) error
}

const orderCollection = "orders"

type orderMongoRepository struct {
	db *mongo.Database
}

func NewOrderMongoRepository(db *mongo.Database) OrderRepository {
	return &orderMongoRepository{db: db}
}

func (r *orderMongoRepository) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	now := time.Now()
	order.Status = model.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now

	result, err := r.db.Collection(orderCollection).InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		order.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return order, nil
}

func (r *orderMongoRepository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(orderCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var order model.Order
	if err := result.Decode(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderMongoRepository) ListOrders(ctx context.Context) ([]*model.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderMongoRepository) ListOrdersByUser(
	ctx context.Context,
	userID bson.ObjectID,
) ([]*model.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *orderMongoRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(orderCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var order model.Order
	if err := result.Decode(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderMongoRepository) MarkPaid(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(orderCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"paid": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *orderMongoRepository) DeleteOrder(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(orderCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *orderMongoRepository) find(ctx context.Context, filter bson.M) ([]*model.Order, error) {
	cursor, err := r.db.Collection(orderCollection).Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var orders []*model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
