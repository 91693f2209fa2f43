package common

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/models"
)

func SerializeLoan(borrower primitive.ObjectID, loanType string, amount float64, duration int, rate float64, initiatedBy primitive.ObjectID, quote models.LoanQuoteResponse) models.Loan {

	now := time.Now().UTC()

	return models.Loan{
		ID:                primitive.NewObjectID(),
		GUID:              uuid.NewString(),
		Type:              loanType,
		Status:            consts.LoanStatusPendingApproval,
		Borrower:          borrower,
		Amount:            amount,
		Duration:          duration,
		Rate:              rate,
		PrincipalLeft:     amount,
		InterestAmount:    0,
		InstallmentAmount: quote.InstallmentAmount,
		PointsSpent:       quote.PointsSpent,
		Units:             0,
		Date:              now,
		Payments:          []models.LoanPayment{},
		Sources:           []models.LoanSource{},
		InitiatedBy:       initiatedBy,
		CreatedAt:         now,
		Version:           1,
	}

}

func SerializeDeposit(member primitive.ObjectID, amount float64, depositType string, source string, cashLocation primitive.ObjectID, recordedBy primitive.ObjectID, refID string) models.Deposit {

	return models.Deposit{
		ID:           primitive.NewObjectID(),
		Member:       member,
		Amount:       amount,
		Type:         depositType,
		Source:       source,
		Date:         time.Now().UTC(),
		CashLocation: cashLocation,
		RecordedBy:   recordedBy,
		RefID:        refID,
		CreatedAt:    time.Now().UTC(),
	}

}

func SerializePointTransaction(kind string, points float64, recipient, sender, redeemedBy primitive.ObjectID, reason string, refID string) models.PointTransaction {

	return models.PointTransaction{
		ID:         primitive.NewObjectID(),
		Type:       kind,
		Points:     points,
		Recipient:  recipient,
		Sender:     sender,
		RedeemedBy: redeemedBy,
		Reason:     reason,
		RefID:      refID,
		CreatedAt:  time.Now().UTC(),
	}

}

func SerializeLoanEventMessage(event string, ln models.Loan) models.LoanEventMessage {

	return models.LoanEventMessage{
		GUID:           ln.GUID,
		Event:          event,
		LoanId:         ln.ID.Hex(),
		MemberId:       ln.Borrower.Hex(),
		LoanType:       ln.Type,
		Amount:         ln.Amount,
		PrincipalLeft:  ln.PrincipalLeft,
		InterestAmount: ln.InterestAmount,
		PointsSpent:    ln.PointsSpent,
		Timestamp:      time.Now().UTC(),
	}

}

func SerializeLedgerEventMessage(event string, member primitive.ObjectID, amount float64, points float64, refID string) models.LedgerEventMessage {

	return models.LedgerEventMessage{
		GUID:      uuid.NewString(),
		Event:     event,
		MemberId:  member.Hex(),
		Amount:    amount,
		Points:    points,
		RefId:     refID,
		Timestamp: time.Now().UTC(),
	}

}

func SerializeTransactionLog(operation string, status string, startTime time.Time, transactionID string, memberID string, errorCode string) models.TransactionLog {

	endTime := time.Now().UTC()
	tat := endTime.Sub(startTime).Seconds()

	return models.TransactionLog{
		TypeOfTransaction: operation,
		Status:            status,
		TAT:               tat,
		StartTime:         startTime,
		EndTime:           endTime,
		TransactionID:     transactionID,
		MemberId:          memberID,
		ErrorCode:         errorCode,
	}

}

func SerializeEligibilityCheckResponse(memberID string, loanType string, eligible *bool, loanLimit *float64, loanPeriodLimit *int, currentSavings *float64, loanMultiplier *float64, result string, statusCode string) models.EligibilityCheckResponse {

	return models.EligibilityCheckResponse{
		MemberId:        memberID,
		Type:            loanType,
		Eligible:        eligible,
		LoanLimit:       loanLimit,
		LoanPeriodLimit: loanPeriodLimit,
		CurrentSavings:  currentSavings,
		LoanMultiplier:  loanMultiplier,
		Result:          result,
		StatusCode:      statusCode,
	}

}
