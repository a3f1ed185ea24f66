package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ActivityLog records one handled HTTP request for auditing.
type ActivityLog struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Username  string        `bson:"username"`
	URL       string        `bson:"url"`
	Method    string        `bson:"method"`
	Status    int           `bson:"status"`
	Device    string        `bson:"device"`
	IPAddress string        `bson:"ip_address"`
	Time      time.Time     `bson:"time"`
}
