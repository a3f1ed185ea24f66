package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// Order represents a placed order referencing the cart items it was built
// from, together with delivery contact details.
type Order struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"  json:"id"`
	UserID      bson.ObjectID   `bson:"user_id"        json:"userId"`
	CartItemIDs []bson.ObjectID `bson:"cart_item_ids"  json:"carts"`
	TotalPrice  float64         `bson:"total_price"    json:"totalPrice"`
	Name        string          `bson:"name"           json:"name"`
	Email       string          `bson:"email"          json:"email"`
	Street      string          `bson:"street"         json:"street"`
	City        string          `bson:"city"           json:"city"`
	Phone       string          `bson:"phone"          json:"phone"`
	Status      string          `bson:"status"         json:"status"`
	Paid        bool            `bson:"paid"           json:"payment"`
	CreatedAt   time.Time       `bson:"created_at"     json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at"     json:"updatedAt"`
}
