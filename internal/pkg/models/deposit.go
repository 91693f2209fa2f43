package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Deposit struct {
	ID           primitive.ObjectID `bson:"_id"`
	Member       primitive.ObjectID `bson:"member"`
	Amount       float64            `bson:"amount"`
	Type         string             `bson:"type"`
	Source       string             `bson:"source"`
	Date         time.Time          `bson:"date"`
	CashLocation primitive.ObjectID `bson:"cashLocation"`
	RecordedBy   primitive.ObjectID `bson:"recordedBy"`
	RefID        string             `bson:"refId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type CashLocation struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Balance   float64            `bson:"balance"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}
