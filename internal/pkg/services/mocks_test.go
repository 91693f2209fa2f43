package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/loan"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/utils/worker"
)

func testLoanConfig() loan.Config {
	return loan.Config{
		MonthlyLendingRate:        0.02,
		GracePeriodDays:           5,
		OneYearMonthThreshold:     12,
		PointsValuePerUnit:        1000,
		LoanMultiple:              3,
		MinExcessDepositThreshold: 10_000,
		Multiplier: loan.MultiplierRules{
			MinMultiplier:    1,
			MaxMultiplier:    2,
			MinInterestRatio: 0.02,
			MaxInterestRatio: 0.2,
		},
	}
}

type stubMemberRepo struct {
	members          map[primitive.ObjectID]*models.Member
	getErr           error
	updateErr        error
	adjustErr        error
	snapshotUpdates  int
	pointAdjustments map[primitive.ObjectID]float64
}

func newStubMemberRepo(members ...*models.Member) *stubMemberRepo {
	repo := &stubMemberRepo{
		members:          make(map[primitive.ObjectID]*models.Member),
		pointAdjustments: make(map[primitive.ObjectID]float64),
	}
	for _, m := range members {
		repo.members[m.ID] = m
	}
	return repo
}

func (r *stubMemberRepo) GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	member, ok := r.members[id]
	if !ok {
		return nil, consts.ErrorMemberNotFound
	}
	return member, nil
}

func (r *stubMemberRepo) UpdateMemberSnapshot(ctx context.Context, member *models.Member) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.snapshotUpdates++
	r.members[member.ID] = member
	return nil
}

func (r *stubMemberRepo) AdjustPoints(ctx context.Context, id primitive.ObjectID, delta float64) error {
	if r.adjustErr != nil {
		return r.adjustErr
	}
	member, ok := r.members[id]
	if !ok {
		return consts.ErrorMemberNotFound
	}
	member.Points += delta
	r.pointAdjustments[id] += delta
	return nil
}

type stubLoanRepo struct {
	loans        map[primitive.ObjectID]*models.Loan
	ongoing      []models.Loan
	history      []models.Loan
	historySince []time.Time
	created      []models.Loan
	updated      []models.Loan
	createErr    error
	updateErr    error
}

func newStubLoanRepo(loans ...*models.Loan) *stubLoanRepo {
	repo := &stubLoanRepo{loans: make(map[primitive.ObjectID]*models.Loan)}
	for _, ln := range loans {
		repo.loans[ln.ID] = ln
	}
	return repo
}

func (r *stubLoanRepo) GetLoanByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error) {
	ln, ok := r.loans[id]
	if !ok {
		return nil, consts.ErrorLoanNotFound
	}
	return ln, nil
}

func (r *stubLoanRepo) CreateLoanEntry(ctx context.Context, ln models.Loan) (bool, error) {
	if r.createErr != nil {
		return false, r.createErr
	}
	r.created = append(r.created, ln)
	return true, nil
}

func (r *stubLoanRepo) UpdateLoanSnapshot(ctx context.Context, ln *models.Loan) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, *ln)
	r.loans[ln.ID] = ln
	return nil
}

func (r *stubLoanRepo) OngoingLoansByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]models.Loan, error) {
	return r.ongoing, nil
}

func (r *stubLoanRepo) LoansByBorrowerSince(ctx context.Context, borrower primitive.ObjectID, types []string, since time.Time) ([]models.Loan, error) {
	r.historySince = append(r.historySince, since)
	return r.history, nil
}

type stubDepositRepo struct {
	created   []models.Deposit
	createErr error
}

func (r *stubDepositRepo) CreateDepositEntry(ctx context.Context, deposit models.Deposit) (bool, error) {
	if r.createErr != nil {
		return false, r.createErr
	}
	r.created = append(r.created, deposit)
	return true, nil
}

type stubPointTxnRepo struct {
	txns      map[primitive.ObjectID]*models.PointTransaction
	created   []models.PointTransaction
	updates   []float64
	deleted   []primitive.ObjectID
	createErr error
}

func newStubPointTxnRepo(txns ...*models.PointTransaction) *stubPointTxnRepo {
	repo := &stubPointTxnRepo{txns: make(map[primitive.ObjectID]*models.PointTransaction)}
	for _, txn := range txns {
		repo.txns[txn.ID] = txn
	}
	return repo
}

func (r *stubPointTxnRepo) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.PointTransaction, error) {
	txn, ok := r.txns[id]
	if !ok {
		return nil, consts.ErrorPointTransactionNotFound
	}
	return txn, nil
}

func (r *stubPointTxnRepo) CreateTransactionEntry(ctx context.Context, txn models.PointTransaction) (bool, error) {
	if r.createErr != nil {
		return false, r.createErr
	}
	r.created = append(r.created, txn)
	r.txns[txn.ID] = &txn
	return true, nil
}

func (r *stubPointTxnRepo) UpdateTransactionPoints(ctx context.Context, id primitive.ObjectID, points float64, reason string) error {
	txn, ok := r.txns[id]
	if !ok {
		return consts.ErrorPointTransactionNotFound
	}
	txn.Points = points
	txn.Reason = reason
	r.updates = append(r.updates, points)
	return nil
}

func (r *stubPointTxnRepo) DeleteTransactionEntry(ctx context.Context, id primitive.ObjectID) error {
	delete(r.txns, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubCashLocationRepo struct {
	balances map[primitive.ObjectID]float64
	debits   []float64
	credits  []float64
	debitErr error
}

func newStubCashLocationRepo() *stubCashLocationRepo {
	return &stubCashLocationRepo{balances: make(map[primitive.ObjectID]float64)}
}

func (r *stubCashLocationRepo) GetCashLocationByID(ctx context.Context, id primitive.ObjectID) (*models.CashLocation, error) {
	balance, ok := r.balances[id]
	if !ok {
		return nil, consts.ErrorInsufficientCashLocationFunds
	}
	return &models.CashLocation{ID: id, Balance: balance}, nil
}

func (r *stubCashLocationRepo) Debit(ctx context.Context, id primitive.ObjectID, amount float64) error {
	if r.debitErr != nil {
		return r.debitErr
	}
	if r.balances[id] < amount {
		return consts.ErrorInsufficientCashLocationFunds
	}
	r.balances[id] -= amount
	r.debits = append(r.debits, amount)
	return nil
}

func (r *stubCashLocationRepo) Credit(ctx context.Context, id primitive.ObjectID, amount float64) error {
	r.balances[id] += amount
	r.credits = append(r.credits, amount)
	return nil
}

type stubRedisStore struct {
	entries map[string]interface{}
	setErr  error
}

func newStubRedisStore() *stubRedisStore {
	return &stubRedisStore{entries: make(map[string]interface{})}
}

func (s *stubRedisStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s.entries[key] = value
	return nil
}

func (s *stubRedisStore) SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if _, held := s.entries[key]; held {
		return false, nil
	}
	s.entries[key] = value
	return true, nil
}

func (s *stubRedisStore) Get(ctx context.Context, key string) (interface{}, error) {
	return s.entries[key], nil
}

func (s *stubRedisStore) Delete(ctx context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

func (s *stubRedisStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.entries[key]
	return ok, nil
}

func (s *stubRedisStore) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

func (s *stubRedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

type stubKafkaService struct {
	loanEvents   []string
	ledgerEvents []string
	publishErr   error
}

func (s *stubKafkaService) PublishLoanEventToKafka(ctx context.Context, event string, ln models.Loan) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.loanEvents = append(s.loanEvents, event)
	return nil
}

func (s *stubKafkaService) PublishLoanEventsToKafka(ctx context.Context, events []string, ln models.Loan) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.loanEvents = append(s.loanEvents, events...)
	return nil
}

func (s *stubKafkaService) PublishLedgerEventToKafka(ctx context.Context, event string, member primitive.ObjectID, amount float64, points float64, refID string) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.ledgerEvents = append(s.ledgerEvents, event)
	return nil
}

type stubNotificationService struct {
	events []string
}

func (s *stubNotificationService) NotifyMember(ctx context.Context, memberID primitive.ObjectID, event string, parameters map[string]string) error {
	s.events = append(s.events, event)
	return nil
}

func (s *stubNotificationService) NotifyLoanEvent(ctx context.Context, event string, ln models.Loan) error {
	s.events = append(s.events, event)
	return nil
}

// inlinePool runs submitted tasks synchronously so tests can observe
// the fan-out without waiting on goroutines.
type inlinePool struct{}

func (inlinePool) Submit(task worker.Task) { task() }
