package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/points"
)

func TestAwardPoints(t *testing.T) {
	ctx := context.Background()
	member := testMember(0)
	memberRepo := newStubMemberRepo(member)
	txnRepo := newStubPointTxnRepo()
	kafka := &stubKafkaService{}

	svc := NewPointsService(memberRepo, txnRepo, kafka, inlinePool{})

	txn, err := svc.AwardPoints(ctx, models.AwardPointsRequest{
		Recipient: member.ID.Hex(),
		Points:    150,
		Reason:    "on-time deposit",
	})
	require.NoError(t, err)

	assert.Equal(t, string(points.KindAward), txn.Type)
	assert.Equal(t, 150.0, member.Points)
	require.Len(t, txnRepo.created, 1)
	assert.Contains(t, kafka.ledgerEvents, consts.PointsAwardedEvent)
}

func TestAwardPointsRecipientNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewPointsService(newStubMemberRepo(), newStubPointTxnRepo(), &stubKafkaService{}, inlinePool{})

	_, err := svc.AwardPoints(ctx, models.AwardPointsRequest{
		Recipient: primitive.NewObjectID().Hex(),
		Points:    150,
		Reason:    "on-time deposit",
	})
	assert.ErrorIs(t, err, consts.ErrorMemberNotFound)
}

func TestRedeemPoints(t *testing.T) {
	ctx := context.Background()
	member := testMember(0)
	member.Points = 200
	memberRepo := newStubMemberRepo(member)
	kafka := &stubKafkaService{}

	svc := NewPointsService(memberRepo, newStubPointTxnRepo(), kafka, inlinePool{})

	txn, err := svc.RedeemPoints(ctx, models.RedeemPointsRequest{
		RedeemedBy: member.ID.Hex(),
		Points:     80,
		Reason:     "interest settlement",
	})
	require.NoError(t, err)

	assert.Equal(t, string(points.KindRedeem), txn.Type)
	assert.Equal(t, member.ID, txn.RedeemedBy)
	assert.Equal(t, 120.0, member.Points)
	assert.Contains(t, kafka.ledgerEvents, consts.PointsRedeemedEvent)
}

func TestRedeemPointsInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	member := testMember(0)
	member.Points = 50
	svc := NewPointsService(newStubMemberRepo(member), newStubPointTxnRepo(), &stubKafkaService{}, inlinePool{})

	_, err := svc.RedeemPoints(ctx, models.RedeemPointsRequest{
		RedeemedBy: member.ID.Hex(),
		Points:     80,
		Reason:     "interest settlement",
	})
	assert.ErrorIs(t, err, consts.ErrorInsufficientPoints)
	assert.Equal(t, 50.0, member.Points)
}

func TestTransferPoints(t *testing.T) {
	ctx := context.Background()
	sender := testMember(0)
	sender.Points = 100
	recipient := testMember(0)
	memberRepo := newStubMemberRepo(sender, recipient)
	kafka := &stubKafkaService{}

	svc := NewPointsService(memberRepo, newStubPointTxnRepo(), kafka, inlinePool{})

	txn, err := svc.TransferPoints(ctx, models.TransferPointsRequest{
		Sender:    sender.ID.Hex(),
		Recipient: recipient.ID.Hex(),
		Points:    60,
		Reason:    "gift",
	})
	require.NoError(t, err)

	assert.Equal(t, string(points.KindTransfer), txn.Type)
	assert.Equal(t, 40.0, sender.Points)
	assert.Equal(t, 60.0, recipient.Points)
	assert.Contains(t, kafka.ledgerEvents, consts.PointsTransferredEvent)
}

func TestTransferPointsInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	sender := testMember(0)
	sender.Points = 10
	recipient := testMember(0)
	svc := NewPointsService(newStubMemberRepo(sender, recipient), newStubPointTxnRepo(), &stubKafkaService{}, inlinePool{})

	_, err := svc.TransferPoints(ctx, models.TransferPointsRequest{
		Sender:    sender.ID.Hex(),
		Recipient: recipient.ID.Hex(),
		Points:    60,
		Reason:    "gift",
	})
	assert.ErrorIs(t, err, consts.ErrorInsufficientPoints)
}

func TestUpdateAwardTransactionShrinksRecipientBalance(t *testing.T) {
	ctx := context.Background()
	member := testMember(0)
	member.Points = 100
	txn := &models.PointTransaction{
		ID:        primitive.NewObjectID(),
		Type:      string(points.KindAward),
		Points:    100,
		Recipient: member.ID,
		Reason:    "on-time deposit",
	}
	memberRepo := newStubMemberRepo(member)
	txnRepo := newStubPointTxnRepo(txn)
	kafka := &stubKafkaService{}

	svc := NewPointsService(memberRepo, txnRepo, kafka, inlinePool{})

	updated, err := svc.UpdateTransaction(ctx, txn.ID.Hex(), models.UpdatePointTransactionRequest{Points: 60})
	require.NoError(t, err)

	assert.Equal(t, 60.0, updated.Points)
	assert.Equal(t, 60.0, member.Points)
	assert.Contains(t, kafka.ledgerEvents, consts.PointsReversedEvent)
}

func TestUpdateAwardTransactionRejectsOverdraw(t *testing.T) {
	ctx := context.Background()
	member := testMember(0)
	// The member already spent most of the award.
	member.Points = 20
	txn := &models.PointTransaction{
		ID:        primitive.NewObjectID(),
		Type:      string(points.KindAward),
		Points:    100,
		Recipient: member.ID,
	}

	svc := NewPointsService(newStubMemberRepo(member), newStubPointTxnRepo(txn), &stubKafkaService{}, inlinePool{})

	_, err := svc.UpdateTransaction(ctx, txn.ID.Hex(), models.UpdatePointTransactionRequest{Points: 60})
	assert.ErrorIs(t, err, consts.ErrorInsufficientPoints)
	assert.Equal(t, 20.0, member.Points)
}

func TestUpdateRedeemTransactionRefundsDifference(t *testing.T) {
	ctx := context.Background()
	member := testMember(0)
	member.Points = 10
	txn := &models.PointTransaction{
		ID:         primitive.NewObjectID(),
		Type:       string(points.KindRedeem),
		Points:     80,
		RedeemedBy: member.ID,
	}

	svc := NewPointsService(newStubMemberRepo(member), newStubPointTxnRepo(txn), &stubKafkaService{}, inlinePool{})

	// Shrinking a redemption from 80 to 50 hands 30 points back.
	updated, err := svc.UpdateTransaction(ctx, txn.ID.Hex(), models.UpdatePointTransactionRequest{Points: 50})
	require.NoError(t, err)

	assert.Equal(t, 50.0, updated.Points)
	assert.Equal(t, 40.0, member.Points)
}

func TestDeleteTransferTransactionReversesBothSides(t *testing.T) {
	ctx := context.Background()
	sender := testMember(0)
	sender.Points = 40
	recipient := testMember(0)
	recipient.Points = 60
	txn := &models.PointTransaction{
		ID:        primitive.NewObjectID(),
		Type:      string(points.KindTransfer),
		Points:    60,
		Sender:    sender.ID,
		Recipient: recipient.ID,
	}
	txnRepo := newStubPointTxnRepo(txn)

	svc := NewPointsService(newStubMemberRepo(sender, recipient), txnRepo, &stubKafkaService{}, inlinePool{})

	err := svc.DeleteTransaction(ctx, txn.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 100.0, sender.Points)
	assert.Equal(t, 0.0, recipient.Points)
	require.Len(t, txnRepo.deleted, 1)
	assert.Equal(t, txn.ID, txnRepo.deleted[0])
}

func TestDeleteTransactionNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewPointsService(newStubMemberRepo(), newStubPointTxnRepo(), &stubKafkaService{}, inlinePool{})

	err := svc.DeleteTransaction(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, consts.ErrorPointTransactionNotFound)
}
