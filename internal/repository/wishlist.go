package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/glowcart/glowcart-api/internal/model"
)

// WishlistRepository defines the interface for wishlist-related database
// operations.
type WishlistRepository interface {
	GetByUser(ctx context.Context, userID bson.ObjectID) (*model.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID bson.ObjectID) error
	RemoveProduct(ctx context.Context, userID, productID bson.ObjectID) error
}

const wishlistCollection = "wishlists"

type wishlistMongoRepository struct {
	db *mongo.Database
}

func NewWishlistMongoRepository(db *mongo.Database) WishlistRepository {
	return &wishlistMongoRepository{db: db}
}

func (r *wishlistMongoRepository) GetByUser(ctx context.Context, userID bson.ObjectID) (*model.Wishlist, error) {
	result := r.db.Collection(wishlistCollection).FindOne(ctx, bson.M{"user_id": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var wishlist model.Wishlist
	if err := result.Decode(&wishlist); err != nil {
		return nil, err
	}

	return &wishlist, nil
}

func (r *wishlistMongoRepository) AddProduct(ctx context.Context, userID, productID bson.ObjectID) error {
	now := time.Now()

	_, err := r.db.Collection(wishlistCollection).UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$addToSet":    bson.M{"product_ids": productID},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *wishlistMongoRepository) RemoveProduct(ctx context.Context, userID, productID bson.ObjectID) error {
	result, err := r.db.Collection(wishlistCollection).UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"product_ids": productID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
