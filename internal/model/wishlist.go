package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Wishlist holds the set of products a user has saved. One document per user.
type Wishlist struct {
	ID         bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     bson.ObjectID   `bson:"user_id"       json:"userId"`
	ProductIDs []bson.ObjectID `bson:"product_ids"   json:"productIds"`
	CreatedAt  time.Time       `bson:"created_at"    json:"createdAt"`
	UpdatedAt  time.Time       `bson:"updated_at"    json:"updatedAt"`
}
