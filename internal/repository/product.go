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

// ProductRepository defines the interface for product-related database
// operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProductsByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Product, error)
	ListProducts(ctx context.Context, params FilterProductsParams) ([]*model.Product, error)
	CountProducts(ctx context.Context, params FilterProductsParams) (int64, error)
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
}

// FilterProductsParams defines the parameters for filtering and paginating
// products. Name and Category are matched as case-insensitive substrings.
type FilterProductsParams struct {
	Name     *string
	Category *string
	Limit    int64
	Offset   int64
}

// UpdateProductParams defines the optional parameters for updating a product.
// Only the fields that are not nil will be updated.
type UpdateProductParams struct {
	Name        *string
	Price       *float64
	Category    *string
	SkinType    *string
	Description *string
	Image       *string
	Quantity    *int
}

const productCollection = "products"

type productMongoRepository struct {
	db *mongo.Database
}

func NewProductMongoRepository(db *mongo.Database) ProductRepository {
	return &productMongoRepository{db: db}
}

func (r *productMongoRepository) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.db.Collection(productCollection).InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		product.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return product, nil
}

func (r *productMongoRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(productCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) GetProductsByIDs(
	ctx context.Context,
	ids []bson.ObjectID,
) ([]*model.Product, error) {
	cursor, err := r.db.Collection(productCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productMongoRepository) ListProducts(
	ctx context.Context,
	params FilterProductsParams,
) ([]*model.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}
	if params.Offset > 0 {
		findOptions.SetSkip(params.Offset)
	}

	cursor, err := r.db.Collection(productCollection).Find(ctx, filterQuery(params), findOptions)
	if err != nil {
		return nil, err
	}

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productMongoRepository) CountProducts(ctx context.Context, params FilterProductsParams) (int64, error) {
	return r.db.Collection(productCollection).CountDocuments(ctx, filterQuery(params))
}

func (r *productMongoRepository) UpdateProduct(
	ctx context.Context,
	id string,
	params UpdateProductParams,
) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Price != nil {
		updateMap["price"] = *params.Price
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.SkinType != nil {
		updateMap["skin_type"] = *params.SkinType
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Image != nil {
		updateMap["image"] = *params.Image
	}
	if params.Quantity != nil {
		updateMap["quantity"] = *params.Quantity
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no product fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(productCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(productCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func filterQuery(params FilterProductsParams) bson.M {
	filter := bson.M{}
	if params.Name != nil {
		filter["name"] = bson.M{"$regex": *params.Name, "$options": "i"}
	}
	if params.Category != nil {
		filter["category"] = bson.M{"$regex": *params.Category, "$options": "i"}
	}

	return filter
}
