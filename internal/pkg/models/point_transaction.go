package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointTransaction is an append-only ledger row. Updates and deletes are
// only used to reverse a row when its originating deposit or loan event
// is edited; RefID links back to that event.
type PointTransaction struct {
	ID         primitive.ObjectID `bson:"_id"`
	Type       string             `bson:"type"`
	Points     float64            `bson:"points"`
	Recipient  primitive.ObjectID `bson:"recipient,omitempty"`
	Sender     primitive.ObjectID `bson:"sender,omitempty"`
	RedeemedBy primitive.ObjectID `bson:"redeemedBy,omitempty"`
	Reason     string             `bson:"reason"`
	RefID      string             `bson:"refId,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}
