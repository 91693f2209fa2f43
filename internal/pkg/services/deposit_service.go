package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/common"
	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/unitledger"
	"growthspring/club_lending/internal/pkg/utils"
)

type DepositService struct {
	memberRepo       MemberRepo
	depositRepo      DepositRepo
	cashLocationRepo CashLocationRepo
	kafkaService     KafkaServiceInterface
	pool             WorkerPoolInterface
}

func NewDepositService(memberRepo MemberRepo, depositRepo DepositRepo, cashLocationRepo CashLocationRepo, kafkaService KafkaServiceInterface, pool WorkerPoolInterface) *DepositService {
	return &DepositService{
		memberRepo:       memberRepo,
		depositRepo:      depositRepo,
		cashLocationRepo: cashLocationRepo,
		kafkaService:     kafkaService,
		pool:             pool,
	}
}

func (h *DepositService) RecordDeposit(ctx context.Context, req models.DepositRequest) (*models.Deposit, error) {

	memberID, err := utils.ToObjectID(req.MemberId)
	if err != nil {
		return nil, err
	}
	locationID, err := utils.ToObjectID(req.CashLocation)
	if err != nil {
		return nil, consts.ErrorInsufficientCashLocationFunds
	}
	recordedByID, err := utils.ToObjectID(req.RecordedBy)
	if err != nil {
		return nil, err
	}
	if _, err := utils.IsValidAmount(req.Amount); err != nil {
		return nil, err
	}
	if _, err := utils.IsValidDepositType(req.Type); err != nil {
		return nil, err
	}

	member, err := h.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if err := h.cashLocationRepo.Credit(ctx, locationID, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	h.applyInvestmentDelta(member, req.Type, req.Amount, now)
	if err := h.memberRepo.UpdateMemberSnapshot(ctx, member); err != nil {
		return nil, err
	}

	deposit := common.SerializeDeposit(memberID, req.Amount, req.Type, consts.DepositSourceCash, locationID, recordedByID, "")
	if _, err := h.depositRepo.CreateDepositEntry(ctx, deposit); err != nil {
		return nil, err
	}

	logger.Info(ctx, "DepositService deposit recorded - member: %v amount: %v type: %v", memberID.Hex(), req.Amount, req.Type)

	h.fanOut(consts.DepositRecordedEvent, memberID, req.Amount, deposit.ID.Hex())

	return &deposit, nil
}

func (h *DepositService) RecordWithdrawal(ctx context.Context, req models.WithdrawalRequest) (*models.Deposit, error) {

	memberID, err := utils.ToObjectID(req.MemberId)
	if err != nil {
		return nil, err
	}
	locationID, err := utils.ToObjectID(req.CashLocation)
	if err != nil {
		return nil, consts.ErrorInsufficientCashLocationFunds
	}
	recordedByID, err := utils.ToObjectID(req.RecordedBy)
	if err != nil {
		return nil, err
	}
	if _, err := utils.IsValidAmount(req.Amount); err != nil {
		return nil, err
	}
	if _, err := utils.IsValidDepositType(req.Type); err != nil {
		return nil, err
	}

	member, err := h.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	available := member.TemporaryInvestment.Amount
	if req.Type == consts.PermanentDepositType {
		available = member.PermanentInvestment.Amount
	}
	if req.Amount > available {
		return nil, consts.ErrorInsufficientWithdrawable
	}

	if err := h.cashLocationRepo.Debit(ctx, locationID, req.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	h.applyInvestmentDelta(member, req.Type, -req.Amount, now)
	if err := h.memberRepo.UpdateMemberSnapshot(ctx, member); err != nil {
		return nil, err
	}

	withdrawal := common.SerializeDeposit(memberID, -req.Amount, req.Type, consts.DepositSourceCash, locationID, recordedByID, "")
	if _, err := h.depositRepo.CreateDepositEntry(ctx, withdrawal); err != nil {
		return nil, err
	}

	logger.Info(ctx, "DepositService withdrawal recorded - member: %v amount: %v type: %v", memberID.Hex(), req.Amount, req.Type)

	h.fanOut(consts.WithdrawalRecordedEvent, memberID, req.Amount, withdrawal.ID.Hex())

	return &withdrawal, nil
}

func (h *DepositService) applyInvestmentDelta(member *models.Member, depositType string, delta float64, asOf time.Time) {
	if depositType == consts.PermanentDepositType {
		updated := unitledger.ApplyDelta(permanentBalance(member), delta, asOf, asOf)
		member.PermanentInvestment.Amount = updated.Amount
		member.PermanentInvestment.Units = updated.Units
		member.PermanentInvestment.UnitsDate = updated.UnitsDate
		return
	}
	updated := unitledger.ApplyDelta(temporaryBalance(member), delta, asOf, asOf)
	member.TemporaryInvestment.Amount = updated.Amount
	member.TemporaryInvestment.Units = updated.Units
	member.TemporaryInvestment.UnitsDate = updated.UnitsDate
}

func (h *DepositService) fanOut(event string, member primitive.ObjectID, amount float64, refID string) {
	h.pool.Submit(func() {
		taskCtx := context.Background()
		if err := h.kafkaService.PublishLedgerEventToKafka(taskCtx, event, member, amount, 0, refID); err != nil {
			logger.Error(taskCtx, "Failed publishing %v for member %v: %v", event, member.Hex(), err)
		}
	})
}
