package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/utils/worker"
)

type MemberRepo interface {
	GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	UpdateMemberSnapshot(ctx context.Context, member *models.Member) error
	AdjustPoints(ctx context.Context, id primitive.ObjectID, delta float64) error
}

type LoanRepo interface {
	GetLoanByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error)
	CreateLoanEntry(ctx context.Context, ln models.Loan) (bool, error)
	UpdateLoanSnapshot(ctx context.Context, ln *models.Loan) error
	OngoingLoansByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]models.Loan, error)
	LoansByBorrowerSince(ctx context.Context, borrower primitive.ObjectID, types []string, since time.Time) ([]models.Loan, error)
}

type DepositRepo interface {
	CreateDepositEntry(ctx context.Context, deposit models.Deposit) (bool, error)
}

type PointTransactionRepo interface {
	GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.PointTransaction, error)
	CreateTransactionEntry(ctx context.Context, txn models.PointTransaction) (bool, error)
	UpdateTransactionPoints(ctx context.Context, id primitive.ObjectID, points float64, reason string) error
	DeleteTransactionEntry(ctx context.Context, id primitive.ObjectID) error
}

type CashLocationRepo interface {
	GetCashLocationByID(ctx context.Context, id primitive.ObjectID) (*models.CashLocation, error)
	Debit(ctx context.Context, id primitive.ObjectID, amount float64) error
	Credit(ctx context.Context, id primitive.ObjectID, amount float64) error
}

type KafkaServiceInterface interface {
	PublishLoanEventToKafka(ctx context.Context, event string, ln models.Loan) error
	PublishLoanEventsToKafka(ctx context.Context, events []string, ln models.Loan) error
	PublishLedgerEventToKafka(ctx context.Context, event string, member primitive.ObjectID, amount float64, points float64, refID string) error
}

type NotificationServiceInterface interface {
	NotifyMember(ctx context.Context, memberID primitive.ObjectID, event string, parameters map[string]string) error
	NotifyLoanEvent(ctx context.Context, event string, ln models.Loan) error
}

type WorkerPoolInterface interface {
	Submit(task worker.Task)
}

type LoanServiceInterface interface {
	InitiateLoan(ctx context.Context, req models.InitiateLoanRequest) (*models.Loan, *models.LoanQuoteResponse, error)
	ApproveLoan(ctx context.Context, loanID string, req models.ApproveLoanRequest) (*models.Loan, error)
	CancelLoan(ctx context.Context, loanID string, req models.CancelLoanRequest) (*models.Loan, error)
	ProcessPayment(ctx context.Context, loanID string, req models.LoanPaymentRequest) (*models.PaymentResponse, error)
}

type EligibilityServiceInterface interface {
	EligibilityCheck(ctx context.Context, req models.EligibilityCheckRequest) (*models.EligibilityCheckResponse, error)
}

type PointsServiceInterface interface {
	AwardPoints(ctx context.Context, req models.AwardPointsRequest) (*models.PointTransaction, error)
	RedeemPoints(ctx context.Context, req models.RedeemPointsRequest) (*models.PointTransaction, error)
	TransferPoints(ctx context.Context, req models.TransferPointsRequest) (*models.PointTransaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req models.UpdatePointTransactionRequest) (*models.PointTransaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}

type DepositServiceInterface interface {
	RecordDeposit(ctx context.Context, req models.DepositRequest) (*models.Deposit, error)
	RecordWithdrawal(ctx context.Context, req models.WithdrawalRequest) (*models.Deposit, error)
}

type RedisStoreOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Get(ctx context.Context, key string) (interface{}, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Time-based operations
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}
