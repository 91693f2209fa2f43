package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Investment is a day-weighted balance. Units are only valid as of
// UnitsDate; valuing the balance at another date requires projecting
// with the unit ledger.
type Investment struct {
	Amount    float64   `bson:"amount"`
	Units     float64   `bson:"units"`
	UnitsDate time.Time `bson:"unitsDate"`
}

type Member struct {
	ID                  primitive.ObjectID `bson:"_id"`
	Name                string             `bson:"name"`
	Points              float64            `bson:"points"`
	PermanentInvestment Investment         `bson:"permanentInvestment"`
	TemporaryInvestment Investment         `bson:"temporaryInvestment"`
	Deleted             bool               `bson:"deleted"`
	CreatedAt           time.Time          `bson:"createdAt"`
	Version             int32              `bson:"version"`
}
