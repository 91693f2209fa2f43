package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/common"
	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/points"
	"growthspring/club_lending/internal/pkg/utils"
)

type PointsService struct {
	memberRepo   MemberRepo
	pointTxnRepo PointTransactionRepo
	kafkaService KafkaServiceInterface
	pool         WorkerPoolInterface
}

func NewPointsService(memberRepo MemberRepo, pointTxnRepo PointTransactionRepo, kafkaService KafkaServiceInterface, pool WorkerPoolInterface) *PointsService {
	return &PointsService{
		memberRepo:   memberRepo,
		pointTxnRepo: pointTxnRepo,
		kafkaService: kafkaService,
		pool:         pool,
	}
}

func (h *PointsService) AwardPoints(ctx context.Context, req models.AwardPointsRequest) (*models.PointTransaction, error) {

	recipientID, err := utils.ToObjectID(req.Recipient)
	if err != nil {
		return nil, err
	}
	if req.Points <= 0 {
		return nil, consts.ErrorPointsNotPositive
	}

	if _, err := h.memberRepo.GetMemberByID(ctx, recipientID); err != nil {
		return nil, err
	}

	txn := common.SerializePointTransaction(string(points.KindAward), req.Points, recipientID, primitive.NilObjectID, primitive.NilObjectID, req.Reason, req.RefId)

	if _, err := h.pointTxnRepo.CreateTransactionEntry(ctx, txn); err != nil {
		return nil, err
	}
	if err := h.memberRepo.AdjustPoints(ctx, recipientID, req.Points); err != nil {
		return nil, err
	}

	logger.Info(ctx, "PointsService awarded - member: %v points: %v reason: %v", recipientID.Hex(), req.Points, req.Reason)

	h.fanOut(consts.PointsAwardedEvent, recipientID, req.Points, txn.ID.Hex())

	return &txn, nil
}

func (h *PointsService) RedeemPoints(ctx context.Context, req models.RedeemPointsRequest) (*models.PointTransaction, error) {

	redeemedByID, err := utils.ToObjectID(req.RedeemedBy)
	if err != nil {
		return nil, err
	}
	if req.Points <= 0 {
		return nil, consts.ErrorPointsNotPositive
	}

	member, err := h.memberRepo.GetMemberByID(ctx, redeemedByID)
	if err != nil {
		return nil, err
	}
	if member.Points < req.Points {
		return nil, consts.ErrorInsufficientPoints
	}

	txn := common.SerializePointTransaction(string(points.KindRedeem), req.Points, primitive.NilObjectID, primitive.NilObjectID, redeemedByID, req.Reason, req.RefId)

	if _, err := h.pointTxnRepo.CreateTransactionEntry(ctx, txn); err != nil {
		return nil, err
	}
	if err := h.memberRepo.AdjustPoints(ctx, redeemedByID, -req.Points); err != nil {
		return nil, err
	}

	logger.Info(ctx, "PointsService redeemed - member: %v points: %v reason: %v", redeemedByID.Hex(), req.Points, req.Reason)

	h.fanOut(consts.PointsRedeemedEvent, redeemedByID, req.Points, txn.ID.Hex())

	return &txn, nil
}

func (h *PointsService) TransferPoints(ctx context.Context, req models.TransferPointsRequest) (*models.PointTransaction, error) {

	senderID, err := utils.ToObjectID(req.Sender)
	if err != nil {
		return nil, err
	}
	recipientID, err := utils.ToObjectID(req.Recipient)
	if err != nil {
		return nil, err
	}
	if req.Points <= 0 {
		return nil, consts.ErrorPointsNotPositive
	}

	sender, err := h.memberRepo.GetMemberByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Points < req.Points {
		return nil, consts.ErrorInsufficientPoints
	}
	if _, err := h.memberRepo.GetMemberByID(ctx, recipientID); err != nil {
		return nil, err
	}

	txn := common.SerializePointTransaction(string(points.KindTransfer), req.Points, recipientID, senderID, primitive.NilObjectID, req.Reason, "")

	if _, err := h.pointTxnRepo.CreateTransactionEntry(ctx, txn); err != nil {
		return nil, err
	}
	if err := h.memberRepo.AdjustPoints(ctx, senderID, -req.Points); err != nil {
		return nil, err
	}
	if err := h.memberRepo.AdjustPoints(ctx, recipientID, req.Points); err != nil {
		return nil, err
	}

	logger.Info(ctx, "PointsService transferred - sender: %v recipient: %v points: %v", senderID.Hex(), recipientID.Hex(), req.Points)

	h.fanOut(consts.PointsTransferredEvent, senderID, req.Points, txn.ID.Hex())

	return &txn, nil
}

// UpdateTransaction edits a recorded transaction's point value and
// re-applies the difference to the affected balances. Used when the
// deposit or loan event the row links to is corrected.
func (h *PointsService) UpdateTransaction(ctx context.Context, transactionID string, req models.UpdatePointTransactionRequest) (*models.PointTransaction, error) {

	id, err := utils.ToObjectID(transactionID)
	if err != nil {
		return nil, consts.ErrorPointTransactionNotFound
	}
	if req.Points <= 0 {
		return nil, consts.ErrorPointsNotPositive
	}

	txn, err := h.pointTxnRepo.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	senderDelta, recipientDelta := points.ReversalEffect(points.Kind(txn.Type), txn.Points, req.Points)
	if err := h.applyEffect(ctx, txn, senderDelta, recipientDelta); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = txn.Reason
	}
	if err := h.pointTxnRepo.UpdateTransactionPoints(ctx, id, req.Points, reason); err != nil {
		return nil, err
	}

	logger.Info(ctx, "PointsService updated transaction %v: %v -> %v points", id.Hex(), txn.Points, req.Points)

	updated := *txn
	updated.Points = req.Points
	updated.Reason = reason

	h.fanOut(consts.PointsReversedEvent, affectedMember(txn), req.Points-txn.Points, id.Hex())

	return &updated, nil
}

// DeleteTransaction reverses a recorded transaction completely and
// removes the row.
func (h *PointsService) DeleteTransaction(ctx context.Context, transactionID string) error {

	id, err := utils.ToObjectID(transactionID)
	if err != nil {
		return consts.ErrorPointTransactionNotFound
	}

	txn, err := h.pointTxnRepo.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}

	senderDelta, recipientDelta := points.ReversalEffect(points.Kind(txn.Type), txn.Points, 0)
	if err := h.applyEffect(ctx, txn, senderDelta, recipientDelta); err != nil {
		return err
	}

	if err := h.pointTxnRepo.DeleteTransactionEntry(ctx, id); err != nil {
		return err
	}

	logger.Info(ctx, "PointsService deleted transaction %v reversing %v points", id.Hex(), txn.Points)

	h.fanOut(consts.PointsReversedEvent, affectedMember(txn), -txn.Points, id.Hex())

	return nil
}

// applyEffect adjusts the balances a reversal touches. A balance never
// goes negative: shrinking an award below what the recipient has since
// spent is rejected.
func (h *PointsService) applyEffect(ctx context.Context, txn *models.PointTransaction, senderDelta, recipientDelta float64) error {

	senderID := senderMember(txn)
	if senderDelta != 0 && !senderID.IsZero() {
		if senderDelta < 0 {
			sender, err := h.memberRepo.GetMemberByID(ctx, senderID)
			if err != nil {
				return err
			}
			if sender.Points+senderDelta < 0 {
				return consts.ErrorInsufficientPoints
			}
		}
		if err := h.memberRepo.AdjustPoints(ctx, senderID, senderDelta); err != nil {
			return err
		}
	}

	if recipientDelta != 0 && !txn.Recipient.IsZero() {
		if recipientDelta < 0 {
			recipient, err := h.memberRepo.GetMemberByID(ctx, txn.Recipient)
			if err != nil {
				return err
			}
			if recipient.Points+recipientDelta < 0 {
				return consts.ErrorInsufficientPoints
			}
		}
		if err := h.memberRepo.AdjustPoints(ctx, txn.Recipient, recipientDelta); err != nil {
			return err
		}
	}

	return nil
}

func senderMember(txn *models.PointTransaction) primitive.ObjectID {
	switch points.Kind(txn.Type) {
	case points.KindTransfer:
		return txn.Sender
	case points.KindRedeem:
		return txn.RedeemedBy
	}
	return primitive.NilObjectID
}

func affectedMember(txn *models.PointTransaction) primitive.ObjectID {
	if !txn.Recipient.IsZero() {
		return txn.Recipient
	}
	return senderMember(txn)
}

func (h *PointsService) fanOut(event string, member primitive.ObjectID, pts float64, refID string) {
	h.pool.Submit(func() {
		taskCtx := context.Background()
		if err := h.kafkaService.PublishLedgerEventToKafka(taskCtx, event, member, 0, pts, refID); err != nil {
			logger.Error(taskCtx, "Failed publishing %v for member %v: %v", event, member.Hex(), err)
		}
	})
}
