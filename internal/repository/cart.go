package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
)

// CartRepository defines the interface for cart-related database operations.
type CartRepository interface {
	AddItem(ctx context.Context, item *model.CartItem) (*model.CartItem, error)
	GetItem(ctx context.Context, id string) (*model.CartItem, error)
	GetActiveItem(ctx context.Context, userID, productID bson.ObjectID) (*model.CartItem, error)
	ListActiveItems(ctx context.Context, userID bson.ObjectID) ([]*model.CartItem, error)
	GetItemsByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID bson.ObjectID, quantity int) error
	UpdateStatusForUser(ctx context.Context, userID bson.ObjectID, status string) error
	DeleteItem(ctx context.Context, id string) error
}

const cartCollection = "cart_items"

type cartMongoRepository struct {
	db *mongo.Database
}

func NewCartMongoRepository(db *mongo.Database) CartRepository {
	return &cartMongoRepository{db: db}
}

func (r *cartMongoRepository) AddItem(ctx context.Context, item *model.CartItem) (*model.CartItem, error) {
	now := time.Now()
	item.Status = model.CartStatusActive
	item.CreatedAt = now
	item.UpdatedAt = now

	result, err := r.db.Collection(cartCollection).InsertOne(ctx, item)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		item.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return item, nil
}

func (r *cartMongoRepository) GetItem(ctx context.Context, id string) (*model.CartItem, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(cartCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.CartItem
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartMongoRepository) GetActiveItem(
	ctx context.Context,
	userID, productID bson.ObjectID,
) (*model.CartItem, error) {
	result := r.db.Collection(cartCollection).FindOne(ctx, bson.M{
		"user_id":    userID,
		"product_id": productID,
		"status":     model.CartStatusActive,
	})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var item model.CartItem
	if err := result.Decode(&item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartMongoRepository) ListActiveItems(
	ctx context.Context,
	userID bson.ObjectID,
) ([]*model.CartItem, error) {
	cursor, err := r.db.Collection(cartCollection).Find(ctx, bson.M{
		"user_id": userID,
		"status":  model.CartStatusActive,
	})
	if err != nil {
		return nil, err
	}

	var items []*model.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartMongoRepository) GetItemsByIDs(
	ctx context.Context,
	ids []bson.ObjectID,
) ([]*model.CartItem, error) {
	cursor, err := r.db.Collection(cartCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var items []*model.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartMongoRepository) UpdateQuantity(
	ctx context.Context,
	userID, productID bson.ObjectID,
	quantity int,
) error {
	result, err := r.db.Collection(cartCollection).UpdateOne(
		ctx,
		bson.M{"user_id": userID, "product_id": productID, "status": model.CartStatusActive},
		bson.M{"$set": bson.M{"quantity": quantity, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *cartMongoRepository) UpdateStatusForUser(
	ctx context.Context,
	userID bson.ObjectID,
	status string,
) error {
	_, err := r.db.Collection(cartCollection).UpdateMany(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	return err
}

func (r *cartMongoRepository) DeleteItem(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(cartCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
