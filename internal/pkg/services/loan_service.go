package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/common"
	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/loan"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/otel"
	"growthspring/club_lending/internal/pkg/points"
	"growthspring/club_lending/internal/pkg/unitledger"
	"growthspring/club_lending/internal/pkg/utils"
)

const paymentGuardPrefix = "lending:payment:"

type LoanService struct {
	cfg                 loan.Config
	memberRepo          MemberRepo
	loanRepo            LoanRepo
	depositRepo         DepositRepo
	pointTxnRepo        PointTransactionRepo
	cashLocationRepo    CashLocationRepo
	redisStore          RedisStoreOperations
	kafkaService        KafkaServiceInterface
	notificationService NotificationServiceInterface
	pool                WorkerPoolInterface
	guardTTL            time.Duration
}

func NewLoanService(cfg loan.Config, memberRepo MemberRepo, loanRepo LoanRepo, depositRepo DepositRepo, pointTxnRepo PointTransactionRepo, cashLocationRepo CashLocationRepo, redisStore RedisStoreOperations, kafkaService KafkaServiceInterface, notificationService NotificationServiceInterface, pool WorkerPoolInterface, guardTTL time.Duration) *LoanService {
	return &LoanService{
		cfg:                 cfg,
		memberRepo:          memberRepo,
		loanRepo:            loanRepo,
		depositRepo:         depositRepo,
		pointTxnRepo:        pointTxnRepo,
		cashLocationRepo:    cashLocationRepo,
		redisStore:          redisStore,
		kafkaService:        kafkaService,
		notificationService: notificationService,
		pool:                pool,
		guardTTL:            guardTTL,
	}
}

func permanentBalance(member *models.Member) unitledger.Balance {
	return unitledger.Balance{
		Amount:    member.PermanentInvestment.Amount,
		Units:     member.PermanentInvestment.Units,
		UnitsDate: member.PermanentInvestment.UnitsDate,
	}
}

func temporaryBalance(member *models.Member) unitledger.Balance {
	return unitledger.Balance{
		Amount:    member.TemporaryInvestment.Amount,
		Units:     member.TemporaryInvestment.Units,
		UnitsDate: member.TemporaryInvestment.UnitsDate,
	}
}

func memberSavings(member *models.Member) float64 {
	return member.PermanentInvestment.Amount + member.TemporaryInvestment.Amount
}

// interestPaidLast12 totals the interest the member's standard loans
// accrued over the trailing twelve months. Ended loans stop accruing at
// their last payment.
func interestPaidLast12(ctx context.Context, cfg loan.Config, loanRepo LoanRepo, borrower primitive.ObjectID, asOf time.Time) (float64, error) {
	windowStart := asOf.AddDate(-1, 0, 0)
	loans, err := loanRepo.LoansByBorrowerSince(ctx, borrower, []string{consts.StandardLoanType}, windowStart)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, ln := range loans {
		var loanEnd time.Time
		if ln.Status == consts.LoanStatusEnded {
			loanEnd = ln.LastPaymentDate
		}
		total += loan.InterestAccruedInWindow(cfg, ln.Amount, ln.Date, loanEnd, windowStart, asOf)
	}
	return total, nil
}

// standardLoanLimit computes how much the member may still borrow on a
// standard loan at asOf. LOAN_MULTIPLE is a hard ceiling on the savings
// multiplier regardless of interest history.
func standardLoanLimit(ctx context.Context, cfg loan.Config, loanRepo LoanRepo, member *models.Member, asOf time.Time) (float64, error) {
	savings := memberSavings(member)

	interest12, err := interestPaidLast12(ctx, cfg, loanRepo, member.ID, asOf)
	if err != nil {
		return 0, err
	}

	ongoing, err := loanRepo.OngoingLoansByBorrower(ctx, member.ID)
	if err != nil {
		return 0, err
	}
	ongoingPrincipal := 0.0
	for _, ln := range ongoing {
		if ln.Type == consts.StandardLoanType {
			ongoingPrincipal += ln.PrincipalLeft
		}
	}

	limit := loan.StandardLoanLimit(cfg, savings, interest12, ongoingPrincipal)
	if cfg.LoanMultiple > 0 {
		if ceiling := savings*cfg.LoanMultiple - ongoingPrincipal; limit > ceiling {
			limit = ceiling
		}
	}
	if limit < 0 {
		limit = 0
	}
	return limit, nil
}

func (h *LoanService) InitiateLoan(ctx context.Context, req models.InitiateLoanRequest) (*models.Loan, *models.LoanQuoteResponse, error) {

	borrowerID, err := utils.ToObjectID(req.MemberId)
	if err != nil {
		return nil, nil, err
	}
	initiatedByID, err := utils.ToObjectID(req.InitiatedBy)
	if err != nil {
		return nil, nil, err
	}

	if _, err := utils.IsValidAmount(req.Amount); err != nil {
		return nil, nil, err
	}
	if _, err := utils.IsValidDuration(req.Duration); err != nil {
		return nil, nil, err
	}
	if _, err := utils.IsValidLoanType(req.Type); err != nil {
		return nil, nil, err
	}

	member, err := h.memberRepo.GetMemberByID(ctx, borrowerID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	var quote loan.Quote

	switch req.Type {
	case consts.StandardLoanType:
		limit, err := standardLoanLimit(ctx, h.cfg, h.loanRepo, member, now)
		if err != nil {
			return nil, nil, err
		}
		if req.Amount > limit {
			logger.Warn(ctx, "LoanService standard limit exceeded - member: %v amount: %v limit: %v", member.ID.Hex(), req.Amount, limit)
			return nil, nil, models.NewLimitError(consts.ErrorStandardLoanLimitExceeded, limit)
		}
		quote = loan.StandardQuote(h.cfg, req.Amount, req.Duration, member.Points)

	case consts.InterestFreeLoanType:
		elig := loan.FreeLoanEligibility(temporaryBalance(member), req.Amount, req.Duration, now)
		if req.Amount > elig.LoanLimit {
			logger.Warn(ctx, "LoanService free loan amount exceeded - member: %v amount: %v limit: %v", member.ID.Hex(), req.Amount, elig.LoanLimit)
			return nil, nil, models.NewLimitError(consts.ErrorFreeLoanAmountLimitExceeded, elig.LoanLimit)
		}
		if req.Duration > elig.LoanPeriodLimit {
			logger.Warn(ctx, "LoanService free loan period exceeded - member: %v duration: %v limit: %v", member.ID.Hex(), req.Duration, elig.LoanPeriodLimit)
			return nil, nil, models.NewLimitError(consts.ErrorFreeLoanPeriodLimitExceeded, float64(elig.LoanPeriodLimit))
		}
	}

	quoteResponse := models.LoanQuoteResponse{
		TotalRate:         quote.TotalRate,
		PointsNeeded:      quote.PointsNeeded,
		PointsSpent:       quote.PointsSpent,
		ActualInterest:    quote.ActualInterest,
		InstallmentAmount: quote.InstallmentAmount,
	}

	ln := common.SerializeLoan(borrowerID, req.Type, req.Amount, req.Duration, h.cfg.MonthlyLendingRate, initiatedByID, quoteResponse)

	if _, err := h.loanRepo.CreateLoanEntry(ctx, ln); err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "LoanService initiated - loan: %v member: %v type: %v amount: %v", ln.ID.Hex(), member.ID.Hex(), ln.Type, ln.Amount)

	h.fanOutLoanEvent(consts.LoanInitiatedEvent, ln)

	return &ln, &quoteResponse, nil
}

func (h *LoanService) ApproveLoan(ctx context.Context, loanID string, req models.ApproveLoanRequest) (*models.Loan, error) {

	id, err := utils.ToObjectID(loanID)
	if err != nil {
		return nil, consts.ErrorLoanNotFound
	}
	approvedByID, err := utils.ToObjectID(req.ApprovedBy)
	if err != nil {
		return nil, err
	}

	ln, err := h.loanRepo.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ln.Status != consts.LoanStatusPendingApproval {
		return nil, consts.ErrorLoanNotPendingApproval
	}

	sources, err := h.parseSources(ln.Amount, req.Sources)
	if err != nil {
		return nil, err
	}

	member, err := h.memberRepo.GetMemberByID(ctx, ln.Borrower)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	switch ln.Type {
	case consts.StandardLoanType:
		if ln.PointsSpent > 0 {
			if member.Points < ln.PointsSpent {
				return nil, consts.ErrorInsufficientPoints
			}
			if err := h.redeemLoanPoints(ctx, member.ID, ln.PointsSpent, consts.PointsReasonLoanApproval, ln.ID.Hex()); err != nil {
				return nil, err
			}
		}

	case consts.InterestFreeLoanType:
		collateral := loan.FreeCollateralUnits(ln.Amount, ln.Duration)
		tempUnits := unitledger.ProjectUnits(temporaryBalance(member), now)
		if tempUnits < collateral {
			return nil, models.NewLimitError(consts.ErrorFreeLoanAmountLimitExceeded, tempUnits)
		}
		member.TemporaryInvestment.Units = tempUnits - collateral
		member.TemporaryInvestment.UnitsDate = now
		if err := h.memberRepo.UpdateMemberSnapshot(ctx, member); err != nil {
			return nil, err
		}
	}

	debited, err := h.debitSources(ctx, sources)
	if err != nil {
		h.rollbackDebits(ctx, debited)
		return nil, err
	}

	ln.Status = consts.LoanStatusOngoing
	ln.Date = now
	ln.ApprovedBy = approvedByID
	ln.Sources = sources

	if err := h.loanRepo.UpdateLoanSnapshot(ctx, ln); err != nil {
		h.rollbackDebits(ctx, debited)
		return nil, err
	}

	logger.Info(ctx, "LoanService approved - loan: %v member: %v amount: %v", ln.ID.Hex(), ln.Borrower.Hex(), ln.Amount)

	h.fanOutLoanEvent(consts.LoanApprovedEvent, *ln)

	return ln, nil
}

func (h *LoanService) CancelLoan(ctx context.Context, loanID string, req models.CancelLoanRequest) (*models.Loan, error) {

	id, err := utils.ToObjectID(loanID)
	if err != nil {
		return nil, consts.ErrorLoanNotFound
	}

	ln, err := h.loanRepo.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ln.Status != consts.LoanStatusPendingApproval {
		return nil, consts.ErrorLoanNotPendingApproval
	}

	ln.Status = consts.LoanStatusCancelled

	if err := h.loanRepo.UpdateLoanSnapshot(ctx, ln); err != nil {
		return nil, err
	}

	logger.Info(ctx, "LoanService cancelled - loan: %v member: %v reason: %v", ln.ID.Hex(), ln.Borrower.Hex(), req.Reason)

	h.fanOutLoanEvent(consts.LoanCancelledEvent, *ln)

	return ln, nil
}

func (h *LoanService) ProcessPayment(ctx context.Context, loanID string, req models.LoanPaymentRequest) (*models.PaymentResponse, error) {

	ctx, span := otel.StartSpan(ctx, "LoanService.ProcessPayment")
	defer span.End()

	id, err := utils.ToObjectID(loanID)
	if err != nil {
		return nil, consts.ErrorLoanNotFound
	}
	locationID, err := utils.ToObjectID(req.Location)
	if err != nil {
		return nil, err
	}
	updatedByID, err := utils.ToObjectID(req.UpdatedBy)
	if err != nil {
		return nil, err
	}
	if _, err := utils.IsValidAmount(req.Amount); err != nil {
		return nil, err
	}

	// One payment per loan at a time. The guard expires on its own if
	// the process dies mid-payment.
	guardKey := paymentGuardPrefix + loanID
	acquired, err := h.redisStore.SetIfAbsent(ctx, guardKey, updatedByID.Hex(), h.guardTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, consts.ErrorPaymentInProgress
	}
	defer func() {
		if err := h.redisStore.Delete(ctx, guardKey); err != nil {
			logger.Warn(ctx, "LoanService failed releasing payment guard %v: %v", guardKey, err)
		}
	}()

	ln, err := h.loanRepo.GetLoanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member, err := h.memberRepo.GetMemberByID(ctx, ln.Borrower)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := models.LoanPayment{
		Date:      now,
		Amount:    req.Amount,
		Location:  locationID,
		UpdatedBy: updatedByID,
	}

	switch ln.Type {
	case consts.StandardLoanType:
		return h.processStandardPayment(ctx, ln, member, payment)
	case consts.InterestFreeLoanType:
		return h.processFreeLoanPayment(ctx, ln, member, payment)
	}
	return nil, consts.ErrorUnknownLoanType
}

func (h *LoanService) processStandardPayment(ctx context.Context, ln *models.Loan, member *models.Member, payment models.LoanPayment) (*models.PaymentResponse, error) {

	result, err := loan.ApplyStandardPayment(h.cfg, *ln, payment, member.Points)
	if err != nil {
		return nil, err
	}

	if result.PointsConsumed > 0 {
		if err := h.redeemLoanPoints(ctx, member.ID, result.PointsConsumed, consts.PointsReasonLoanInterest, ln.ID.Hex()); err != nil {
			return nil, err
		}
	}

	if err := h.cashLocationRepo.Credit(ctx, payment.Location, payment.Amount); err != nil {
		return nil, err
	}

	if err := h.loanRepo.UpdateLoanSnapshot(ctx, &result.Loan); err != nil {
		return nil, err
	}

	if err := h.settleExcess(ctx, member, result.ExcessAmount, payment); err != nil {
		return nil, err
	}

	logger.Info(ctx, "LoanService standard payment - loan: %v amount: %v monthsDue: %v pointMonths: %v closes: %v",
		ln.ID.Hex(), payment.Amount, result.MonthsDue, result.PointMonthsDue, result.Closes)

	events := []string{consts.LoanPaymentEvent}
	if result.Closes {
		events = append(events, consts.LoanEndedEvent)
	}
	h.fanOutLoanEvents(events, result.Loan)

	principalPaid := result.Split.PrincipalPaid
	if principalPaid < 0 {
		principalPaid = 0
	}

	return &models.PaymentResponse{
		LoanId:         ln.ID.Hex(),
		Status:         result.Loan.Status,
		InterestPaid:   payment.Amount - principalPaid - result.ExcessAmount,
		PrincipalPaid:  principalPaid,
		ExcessAmount:   result.ExcessAmount,
		PointsConsumed: result.PointsConsumed,
		PrincipalLeft:  result.Loan.PrincipalLeft,
		InterestLeft:   result.Loan.InterestAmount,
	}, nil
}

func (h *LoanService) processFreeLoanPayment(ctx context.Context, ln *models.Loan, member *models.Member, payment models.LoanPayment) (*models.PaymentResponse, error) {

	tempUnits := unitledger.ProjectUnits(temporaryBalance(member), payment.Date)

	result, err := loan.ApplyFreeLoanPayment(h.cfg, *ln, payment, tempUnits)
	if err != nil {
		return nil, err
	}

	if result.UnitsConsumed > 0 {
		member.TemporaryInvestment.Units = tempUnits - result.UnitsConsumed
		member.TemporaryInvestment.UnitsDate = payment.Date
		if err := h.memberRepo.UpdateMemberSnapshot(ctx, member); err != nil {
			return nil, err
		}
	}

	if err := h.cashLocationRepo.Credit(ctx, payment.Location, payment.Amount); err != nil {
		return nil, err
	}

	if err := h.loanRepo.UpdateLoanSnapshot(ctx, &result.Loan); err != nil {
		return nil, err
	}

	if err := h.settleExcess(ctx, member, result.ExcessAmount, payment); err != nil {
		return nil, err
	}

	logger.Info(ctx, "LoanService free loan payment - loan: %v amount: %v unitsConsumed: %v cashInterest: %v closes: %v",
		ln.ID.Hex(), payment.Amount, result.UnitsConsumed, result.CashInterest, result.Closes)

	events := []string{consts.LoanPaymentEvent}
	if result.Closes {
		events = append(events, consts.LoanEndedEvent)
	}
	h.fanOutLoanEvents(events, result.Loan)

	interestPaid := 0.0
	if result.CashInterest > 0 {
		interestPaid = result.CashInterest - result.Loan.InterestAmount
		if interestPaid < 0 {
			interestPaid = 0
		}
	}

	return &models.PaymentResponse{
		LoanId:        ln.ID.Hex(),
		Status:        result.Loan.Status,
		InterestPaid:  interestPaid,
		PrincipalPaid: payment.Amount - interestPaid - result.ExcessAmount,
		ExcessAmount:  result.ExcessAmount,
		PrincipalLeft: result.Loan.PrincipalLeft,
		InterestLeft:  result.Loan.InterestAmount,
	}, nil
}

// settleExcess converts an overpayment at or above the configured
// threshold into a permanent deposit for the member; smaller amounts
// are handed back to the payer as change.
func (h *LoanService) settleExcess(ctx context.Context, member *models.Member, excess float64, payment models.LoanPayment) error {
	if excess <= 0 {
		return nil
	}
	if excess < h.cfg.MinExcessDepositThreshold {
		logger.Info(ctx, "LoanService excess %v below deposit threshold, returned as change - member: %v", excess, member.ID.Hex())
		if err := h.cashLocationRepo.Debit(ctx, payment.Location, excess); err != nil {
			return err
		}
		return nil
	}

	deposit := common.SerializeDeposit(member.ID, excess, consts.PermanentDepositType, consts.DepositSourceExcessPayment, payment.Location, payment.UpdatedBy, "")
	if _, err := h.depositRepo.CreateDepositEntry(ctx, deposit); err != nil {
		return err
	}

	updated := unitledger.ApplyDelta(permanentBalance(member), excess, payment.Date, payment.Date)
	member.PermanentInvestment.Amount = updated.Amount
	member.PermanentInvestment.Units = updated.Units
	member.PermanentInvestment.UnitsDate = updated.UnitsDate
	if err := h.memberRepo.UpdateMemberSnapshot(ctx, member); err != nil {
		return err
	}

	h.fanOutLedgerEvent(consts.DepositRecordedEvent, member.ID, excess, 0, deposit.ID.Hex())
	return nil
}

// redeemLoanPoints debits the points and appends the matching redeem
// row, so the ledger stays the full history of every balance change.
func (h *LoanService) redeemLoanPoints(ctx context.Context, memberID primitive.ObjectID, pts float64, reason, refID string) error {
	txn := common.SerializePointTransaction(string(points.KindRedeem), pts, primitive.NilObjectID, primitive.NilObjectID, memberID, reason, refID)
	if _, err := h.pointTxnRepo.CreateTransactionEntry(ctx, txn); err != nil {
		return err
	}
	if err := h.memberRepo.AdjustPoints(ctx, memberID, -pts); err != nil {
		return err
	}
	return nil
}

func (h *LoanService) parseSources(loanAmount float64, inputs []models.LoanSourceInput) ([]models.LoanSource, error) {
	sources := make([]models.LoanSource, 0, len(inputs))
	total := 0.0
	for _, input := range inputs {
		locationID, err := utils.ToObjectID(input.Location)
		if err != nil {
			return nil, consts.ErrorInsufficientCashLocationFunds
		}
		sources = append(sources, models.LoanSource{Location: locationID, Amount: input.Amount})
		total += input.Amount
	}
	if total != loanAmount {
		return nil, consts.ErrorAmountFormatValidationFailed
	}
	return sources, nil
}

func (h *LoanService) debitSources(ctx context.Context, sources []models.LoanSource) ([]models.LoanSource, error) {
	var debited []models.LoanSource
	for _, source := range sources {
		if err := h.cashLocationRepo.Debit(ctx, source.Location, source.Amount); err != nil {
			return debited, err
		}
		debited = append(debited, source)
	}
	return debited, nil
}

func (h *LoanService) rollbackDebits(ctx context.Context, debited []models.LoanSource) {
	for _, source := range debited {
		if err := h.cashLocationRepo.Credit(ctx, source.Location, source.Amount); err != nil {
			logger.Error(ctx, "LoanService failed rolling back debit of %v from %v: %v", source.Amount, source.Location.Hex(), err)
		}
	}
}

// fanOutLoanEvent pushes the stream publish and the member notification
// onto the worker pool so the caller's response does not wait on them.
func (h *LoanService) fanOutLoanEvent(event string, ln models.Loan) {
	h.pool.Submit(func() {
		taskCtx := context.Background()
		if err := h.kafkaService.PublishLoanEventToKafka(taskCtx, event, ln); err != nil {
			logger.Error(taskCtx, "Failed publishing %v for loan %v: %v", event, ln.ID.Hex(), err)
		}
		if err := h.notificationService.NotifyLoanEvent(taskCtx, event, ln); err != nil {
			logger.Error(taskCtx, "Failed notifying %v for loan %v: %v", event, ln.ID.Hex(), err)
		}
	})
}

// fanOutLoanEvents publishes several events for one loan as a single
// batch, then notifies the member once per event.
func (h *LoanService) fanOutLoanEvents(events []string, ln models.Loan) {
	h.pool.Submit(func() {
		taskCtx := context.Background()
		if err := h.kafkaService.PublishLoanEventsToKafka(taskCtx, events, ln); err != nil {
			logger.Error(taskCtx, "Failed publishing %v for loan %v: %v", events, ln.ID.Hex(), err)
		}
		for _, event := range events {
			if err := h.notificationService.NotifyLoanEvent(taskCtx, event, ln); err != nil {
				logger.Error(taskCtx, "Failed notifying %v for loan %v: %v", event, ln.ID.Hex(), err)
			}
		}
	})
}

func (h *LoanService) fanOutLedgerEvent(event string, member primitive.ObjectID, amount float64, pts float64, refID string) {
	h.pool.Submit(func() {
		taskCtx := context.Background()
		if err := h.kafkaService.PublishLedgerEventToKafka(taskCtx, event, member, amount, pts, refID); err != nil {
			logger.Error(taskCtx, "Failed publishing %v for member %v: %v", event, member.Hex(), err)
		}
	})
}
