package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoanPayment struct {
	Date      time.Time          `bson:"date"`
	Amount    float64            `bson:"amount"`
	Location  primitive.ObjectID `bson:"location"`
	UpdatedBy primitive.ObjectID `bson:"updatedBy"`
}

// LoanSource records how much of the disbursement was drawn from a
// given cash location.
type LoanSource struct {
	Location primitive.ObjectID `bson:"location"`
	Amount   float64            `bson:"amount"`
}

type Loan struct {
	ID                primitive.ObjectID `bson:"_id"`
	GUID              string             `bson:"GUID"`
	Type              string             `bson:"type"`
	Status            string             `bson:"status"`
	Borrower          primitive.ObjectID `bson:"borrower"`
	Amount            float64            `bson:"amount"`
	Duration          int                `bson:"duration"`
	Rate              float64            `bson:"rate"`
	PrincipalLeft     float64            `bson:"principalLeft"`
	InterestAmount    float64            `bson:"interestAmount"`
	InstallmentAmount float64            `bson:"installmentAmount"`
	PointsSpent       float64            `bson:"pointsSpent"`
	Units             float64            `bson:"units"`
	Date              time.Time          `bson:"date"`
	LastPaymentDate   time.Time          `bson:"lastPaymentDate,omitempty"`
	Payments          []LoanPayment      `bson:"payments"`
	Sources           []LoanSource       `bson:"sources"`
	InitiatedBy       primitive.ObjectID `bson:"initiatedBy"`
	ApprovedBy        primitive.ObjectID `bson:"approvedBy,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	Version           int32              `bson:"version"`
}
