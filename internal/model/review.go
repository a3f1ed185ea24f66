package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review represents a product rating with an optional comment. A user may
// review each product at most once.
type Review struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id"       json:"userId"`
	ProductID bson.ObjectID `bson:"product_id"    json:"productId"`
	Rating    int           `bson:"rating"        json:"rating"`
	Comment   string        `bson:"comment"       json:"review"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at"    json:"updatedAt"`
}
