package models

import "time"

// LoanEventMessage is the payload published to the transaction stream
// for every loan lifecycle change.
type LoanEventMessage struct {
	GUID           string    `json:"guid"`
	Event          string    `json:"event"`
	LoanId         string    `json:"loanId"`
	MemberId       string    `json:"memberId"`
	LoanType       string    `json:"loanType"`
	Amount         float64   `json:"amount"`
	PrincipalLeft  float64   `json:"principalLeft"`
	InterestAmount float64   `json:"interestAmount"`
	PointsSpent    float64   `json:"pointsSpent"`
	Timestamp      time.Time `json:"timestamp"`
}

// LedgerEventMessage is published for deposits, withdrawals and point
// movements so downstream bookkeeping can mirror the ledger.
type LedgerEventMessage struct {
	GUID      string    `json:"guid"`
	Event     string    `json:"event"`
	MemberId  string    `json:"memberId"`
	Amount    float64   `json:"amount"`
	Points    float64   `json:"points"`
	RefId     string    `json:"refId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationPayload is the message handed to the notification
// publisher for member-facing messages.
type NotificationPayload struct {
	MemberId   string            `json:"memberId"`
	Event      string            `json:"event"`
	Parameters map[string]string `json:"parameters"`
}

// TransactionLog is the structured line written at the end of every
// lending operation.
type TransactionLog struct {
	TypeOfTransaction string    `json:"type_of_transaction"`
	Status            string    `json:"status"`
	TAT               float64   `json:"tat_seconds"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	TransactionID     string    `json:"transaction_id"`
	MemberId          string    `json:"member_id"`
	ErrorCode         string    `json:"error_code,omitempty"`
}
