package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment tracks a payment attempt at the gateway for an order.
type Payment struct {
	ID            bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	OrderID       bson.ObjectID `bson:"order_id"       json:"orderId"`
	Gateway       string        `bson:"gateway"        json:"paymentGateway"`
	Amount        float64       `bson:"amount"         json:"amount"`
	PIDX          string        `bson:"pidx,omitempty"           json:"pidx,omitempty"`
	TransactionID string        `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Status        string        `bson:"status"         json:"status"`
	CreatedAt     time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at"     json:"updatedAt"`
}
