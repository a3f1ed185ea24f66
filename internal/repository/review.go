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

// ReviewRepository defines the interface for review-related database
// operations.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) (*model.Review, error)
	GetByUserAndProduct(ctx context.Context, userID, productID bson.ObjectID) (*model.Review, error)
	ListByProduct(ctx context.Context, productID bson.ObjectID) ([]*model.Review, error)
	UpdateReview(ctx context.Context, userID, productID bson.ObjectID, rating int, comment string) (*model.Review, error)
	AverageRating(ctx context.Context, productID bson.ObjectID) (float64, int64, error)
}

const reviewCollection = "reviews"

type reviewMongoRepository struct {
	db *mongo.Database
}

func NewReviewMongoRepository(db *mongo.Database) ReviewRepository {
	return &reviewMongoRepository{db: db}
}

func (r *reviewMongoRepository) CreateReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.db.Collection(reviewCollection).InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		review.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return review, nil
}

func (r *reviewMongoRepository) GetByUserAndProduct(
	ctx context.Context,
	userID, productID bson.ObjectID,
) (*model.Review, error) {
	result := r.db.Collection(reviewCollection).FindOne(ctx, bson.M{
		"user_id":    userID,
		"product_id": productID,
	})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var review model.Review
	if err := result.Decode(&review); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewMongoRepository) ListByProduct(
	ctx context.Context,
	productID bson.ObjectID,
) ([]*model.Review, error) {
	cursor, err := r.db.Collection(reviewCollection).Find(
		ctx,
		bson.M{"product_id": productID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewMongoRepository) UpdateReview(
	ctx context.Context,
	userID, productID bson.ObjectID,
	rating int,
	comment string,
) (*model.Review, error) {
	result := r.db.Collection(reviewCollection).FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, "product_id": productID},
		bson.M{"$set": bson.M{
			"rating":     rating,
			"comment":    comment,
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var review model.Review
	if err := result.Decode(&review); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewMongoRepository) AverageRating(
	ctx context.Context,
	productID bson.ObjectID,
) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.db.Collection(reviewCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}

	if len(results) == 0 {
		return 0, 0, nil
	}

	return results[0].Average, results[0].Count, nil
}
