package models

type InitiateLoanRequest struct {
	MemberId    string  `json:"memberId" binding:"required,objectid"`
	Type        string  `json:"type" binding:"required,oneof=Standard Interest-Free"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	InitiatedBy string  `json:"initiatedBy" binding:"required,objectid"`
}

type ApproveLoanRequest struct {
	ApprovedBy string            `json:"approvedBy" binding:"required,objectid"`
	Sources    []LoanSourceInput `json:"sources" binding:"required,min=1,dive"`
}

type LoanSourceInput struct {
	Location string  `json:"location" binding:"required,objectid"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

type CancelLoanRequest struct {
	CancelledBy string `json:"cancelledBy" binding:"required,objectid"`
	Reason      string `json:"reason"`
}

type LoanPaymentRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Location  string  `json:"location" binding:"required,objectid"`
	UpdatedBy string  `json:"updatedBy" binding:"required,objectid"`
}

type EligibilityCheckRequest struct {
	MemberId string  `json:"memberId" binding:"required,objectid"`
	Type     string  `json:"type" binding:"required,oneof=Standard Interest-Free"`
	Amount   float64 `json:"amount" binding:"omitempty,gt=0"`
	Duration int     `json:"duration" binding:"omitempty,gt=0"`
}

type AwardPointsRequest struct {
	Recipient string  `json:"recipient" binding:"required,objectid"`
	Points    float64 `json:"points" binding:"required,gt=0"`
	Reason    string  `json:"reason" binding:"required"`
	RefId     string  `json:"refId"`
}

type RedeemPointsRequest struct {
	RedeemedBy string  `json:"redeemedBy" binding:"required,objectid"`
	Points     float64 `json:"points" binding:"required,gt=0"`
	Reason     string  `json:"reason" binding:"required"`
	RefId      string  `json:"refId"`
}

type TransferPointsRequest struct {
	Sender    string  `json:"sender" binding:"required,objectid"`
	Recipient string  `json:"recipient" binding:"required,objectid"`
	Points    float64 `json:"points" binding:"required,gt=0"`
	Reason    string  `json:"reason" binding:"required"`
}

type UpdatePointTransactionRequest struct {
	Points float64 `json:"points" binding:"required,gt=0"`
	Reason string  `json:"reason"`
}

type DepositRequest struct {
	MemberId     string  `json:"memberId" binding:"required,objectid"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Type         string  `json:"type" binding:"required,oneof=Permanent Temporary"`
	CashLocation string  `json:"cashLocation" binding:"required,objectid"`
	RecordedBy   string  `json:"recordedBy" binding:"required,objectid"`
}

type WithdrawalRequest struct {
	MemberId     string  `json:"memberId" binding:"required,objectid"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Type         string  `json:"type" binding:"required,oneof=Permanent Temporary"`
	CashLocation string  `json:"cashLocation" binding:"required,objectid"`
	RecordedBy   string  `json:"recordedBy" binding:"required,objectid"`
}
