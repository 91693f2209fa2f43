package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/pubsub"
)

type MockMembersRepo struct {
	mock.Mock
}

func (m *MockMembersRepo) GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

type MockPubSubPublisher struct {
	mock.Mock
}

func (m *MockPubSubPublisher) Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error) {
	args := m.Called(ctx, topic, data, attributes)
	return args.String(0), args.Error(1)
}

func (m *MockPubSubPublisher) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPubSubPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestNotifyMember_Success(t *testing.T) {
	memberID := primitive.NewObjectID()

	memberRepo := new(MockMembersRepo)
	memberRepo.On("GetMemberByID", mock.Anything, memberID).Return(&models.Member{
		ID:   memberID,
		Name: "Asiimwe",
	}, nil)

	publisher := new(MockPubSubPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("msg-1", nil)

	service := NewNotificationServiceWithRepo(memberRepo, publisher)

	err := service.NotifyMember(context.Background(), memberID, consts.LoanApprovedEvent, map[string]string{
		"loanAmount": "500000.00",
	})

	require.NoError(t, err)

	publishedData := publisher.Calls[0].Arguments.Get(2).([]byte)
	var payload models.NotificationPayload
	require.NoError(t, json.Unmarshal(publishedData, &payload))

	assert.Equal(t, memberID.Hex(), payload.MemberId)
	assert.Equal(t, consts.LoanApprovedEvent, payload.Event)
	assert.Equal(t, "Asiimwe", payload.Parameters["memberName"])
	assert.Equal(t, "500000.00", payload.Parameters["loanAmount"])

	memberRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestNotifyMember_MemberNotFound(t *testing.T) {
	memberID := primitive.NewObjectID()

	memberRepo := new(MockMembersRepo)
	memberRepo.On("GetMemberByID", mock.Anything, memberID).Return(nil, consts.ErrorMemberNotFound)

	publisher := new(MockPubSubPublisher)

	service := NewNotificationServiceWithRepo(memberRepo, publisher)

	err := service.NotifyMember(context.Background(), memberID, consts.LoanApprovedEvent, nil)

	assert.ErrorIs(t, err, consts.ErrorMemberNotFound)
	publisher.AssertNotCalled(t, "Publish")
}

func TestNotifyMember_PublishFailure(t *testing.T) {
	memberID := primitive.NewObjectID()

	memberRepo := new(MockMembersRepo)
	memberRepo.On("GetMemberByID", mock.Anything, memberID).Return(&models.Member{ID: memberID, Name: "Okello"}, nil)

	publisher := new(MockPubSubPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("pubsub unavailable"))

	service := NewNotificationServiceWithRepo(memberRepo, publisher)

	err := service.NotifyMember(context.Background(), memberID, consts.LoanPaymentEvent, nil)

	assert.Error(t, err)
}

func TestNotifyLoanEvent(t *testing.T) {
	memberID := primitive.NewObjectID()

	memberRepo := new(MockMembersRepo)
	memberRepo.On("GetMemberByID", mock.Anything, memberID).Return(&models.Member{ID: memberID, Name: "Nansamba"}, nil)

	publisher := new(MockPubSubPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("msg-2", nil)

	service := NewNotificationServiceWithRepo(memberRepo, publisher)

	ln := models.Loan{
		Borrower:      memberID,
		Type:          consts.StandardLoanType,
		Amount:        1000000,
		PrincipalLeft: 750000,
	}

	err := service.NotifyLoanEvent(context.Background(), consts.LoanPaymentEvent, ln)
	require.NoError(t, err)

	publishedData := publisher.Calls[0].Arguments.Get(2).([]byte)
	var payload models.NotificationPayload
	require.NoError(t, json.Unmarshal(publishedData, &payload))

	assert.Equal(t, "1000000.00", payload.Parameters["loanAmount"])
	assert.Equal(t, "750000.00", payload.Parameters["principalLeft"])
}

func TestNotifyLoanEvent_PubSubDisabled(t *testing.T) {
	memberID := primitive.NewObjectID()

	memberRepo := new(MockMembersRepo)
	memberRepo.On("GetMemberByID", mock.Anything, memberID).Return(&models.Member{ID: memberID, Name: "Kirabo"}, nil)

	// With Pub/Sub turned off the service runs on the no-op publisher
	// and notifications are dropped without failing the caller.
	service := NewNotificationServiceWithRepo(memberRepo, pubsub.NoopPublisher{})

	ln := models.Loan{
		Borrower: memberID,
		Type:     consts.StandardLoanType,
		Amount:   1000000,
	}

	require.NotPanics(t, func() {
		err := service.NotifyLoanEvent(context.Background(), consts.LoanApprovedEvent, ln)
		assert.NoError(t, err)
	})
}
