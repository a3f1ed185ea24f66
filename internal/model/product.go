package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product represents a catalog item.
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty"      json:"id"`
	Name        string        `bson:"name"               json:"productName"`
	Price       float64       `bson:"price"              json:"productPrice"`
	Category    string        `bson:"category"           json:"productCategory"`
	SkinType    string        `bson:"skin_type"          json:"productSkinType"`
	Description string        `bson:"description"        json:"productDescription"`
	Image       string        `bson:"image"              json:"productImage"`
	Quantity    int           `bson:"quantity"           json:"productQuantity"`
	CreatedAt   time.Time     `bson:"created_at"         json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at"         json:"updatedAt"`
}
