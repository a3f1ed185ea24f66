package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cart item statuses. Items move from active to inactive at checkout.
const (
	CartStatusActive   = "active"
	CartStatusInactive = "inactive"
)

// CartItem represents one product in a user's cart.
type CartItem struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id"       json:"userId"`
	ProductID bson.ObjectID `bson:"product_id"    json:"productId"`
	Quantity  int           `bson:"quantity"      json:"quantity"`
	Status    string        `bson:"status"        json:"status"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at"    json:"updatedAt"`
}

// CartItemWithProduct joins a cart item with its product for cart listings.
type CartItemWithProduct struct {
	CartItem `bson:",inline"`
	Product  *Product `bson:"product" json:"product"`
}
