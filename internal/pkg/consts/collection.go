package consts

const (
	MembersCollection           = "Members"
	LoansCollection             = "Loans"
	PointTransactionsCollection = "PointTransactions"
	DepositsCollection          = "Deposits"
	CashLocationsCollection     = "CashLocations"
)
