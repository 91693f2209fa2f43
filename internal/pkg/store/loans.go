package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/db"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
)

type LoanRepository struct {
	repo *MongoRepository[models.Loan]
}

func NewLoanRepository() *LoanRepository {
	collection := db.MDB.Database.Collection(consts.LoansCollection)
	mrepo := NewMongoRepository[models.Loan](collection)
	return &LoanRepository{repo: mrepo}
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error) {

	filter := bson.M{"_id": id}

	ln, err := r.repo.Read(filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorLoanNotFound
		}
		logger.Error(ctx, "Loans : Error while reading %v", err)
		return nil, err
	}

	return &ln, nil
}

func (r *LoanRepository) CreateLoanEntry(ctx context.Context, ln models.Loan) (bool, error) {

	_, err := r.repo.Create(ln)
	if err != nil {
		logger.Error(ctx, "Loans : Error while inserting %v", err)
		return false, fmt.Errorf("Loans : error while inserting %v", err.Error())
	}

	return true, nil
}

// loanSnapshotUpdate lists every field a payment or approval can touch.
// The disbursement date is included because approval stamps it.
func loanSnapshotUpdate(ln *models.Loan) bson.M {
	return bson.M{
		"$set": bson.M{
			"status":            ln.Status,
			"date":              ln.Date,
			"duration":          ln.Duration,
			"principalLeft":     ln.PrincipalLeft,
			"interestAmount":    ln.InterestAmount,
			"installmentAmount": ln.InstallmentAmount,
			"pointsSpent":       ln.PointsSpent,
			"units":             ln.Units,
			"lastPaymentDate":   ln.LastPaymentDate,
			"payments":          ln.Payments,
			"sources":           ln.Sources,
			"approvedBy":        ln.ApprovedBy,
		},
		"$inc": bson.M{"version": 1},
	}
}

// UpdateLoanSnapshot writes back a loan computed from a versioned read.
// A zero match means the loan moved underneath the computation.
func (r *LoanRepository) UpdateLoanSnapshot(ctx context.Context, ln *models.Loan) error {

	filter := bson.M{"_id": ln.ID, "version": ln.Version}

	matched, err := r.repo.UpdateMatched(filter, loanSnapshotUpdate(ln))
	if err != nil {
		logger.Error(ctx, "Loans : Error while updating %v", err)
		return err
	}
	if matched == 0 {
		return consts.ErrorStaleSnapshot
	}

	ln.Version++
	return nil
}

// OngoingLoansByBorrower returns the borrower's loans still accruing,
// oldest first so outstanding-interest checks scan them in order.
func (r *LoanRepository) OngoingLoansByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]models.Loan, error) {

	filter := bson.M{"borrower": borrower, "status": consts.LoanStatusOngoing}

	loans, err := r.repo.FindAll(filter)
	if err != nil {
		logger.Error(ctx, "Loans : Error while listing ongoing %v", err)
		return nil, err
	}

	return loans, nil
}

// LoansByBorrowerSince returns the borrower's loans whose accrual can
// overlap the window starting at since: everything still ongoing, plus
// ended loans whose last payment falls inside the window.
func (r *LoanRepository) LoansByBorrowerSince(ctx context.Context, borrower primitive.ObjectID, types []string, since time.Time) ([]models.Loan, error) {

	filter := bson.M{
		"borrower": borrower,
		"type":     bson.M{"$in": types},
		"$or": bson.A{
			bson.M{"status": consts.LoanStatusOngoing},
			bson.M{"status": consts.LoanStatusEnded, "lastPaymentDate": bson.M{"$gte": since}},
		},
	}

	loans, err := r.repo.FindAll(filter)
	if err != nil {
		logger.Error(ctx, "Loans : Error while listing history %v", err)
		return nil, err
	}

	return loans, nil
}

func (r *LoanRepository) CountOngoingLoans(ctx context.Context, borrower primitive.ObjectID, loanType string) (int64, error) {

	filter := bson.M{"borrower": borrower, "type": loanType, "status": consts.LoanStatusOngoing}

	count, err := r.repo.CountDocuments(filter)
	if err != nil {
		logger.Error(ctx, "Loans : Error while counting %v", err)
		return 0, err
	}

	return count, nil
}
