package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/configs"
	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/pubsub"
	"growthspring/club_lending/internal/pkg/store"
)

type MembersRepo interface {
	GetMemberByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
}

// NotificationService pushes member-facing messages onto the
// notification topic for the messaging gateway to deliver.
type NotificationService struct {
	memberRepo      MembersRepo
	pubsubPublisher pubsub.PubSubPublisherInterface
}

func NewNotificationService(pubsubPublisher pubsub.PubSubPublisherInterface) *NotificationService {
	return &NotificationService{
		memberRepo:      store.NewMemberRepository(),
		pubsubPublisher: pubsubPublisher,
	}
}

func NewNotificationServiceWithRepo(memberRepo MembersRepo, pubsubPublisher pubsub.PubSubPublisherInterface) *NotificationService {
	return &NotificationService{
		memberRepo:      memberRepo,
		pubsubPublisher: pubsubPublisher,
	}
}

// NotifyMember sends an event notification to a member. Parameters are
// merged with the member's name so message templates can address them.
func (h *NotificationService) NotifyMember(ctx context.Context, memberID primitive.ObjectID, event string, parameters map[string]string) error {

	member, err := h.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		logger.Error(ctx, "Failed to resolve member %v for notification: %v", memberID.Hex(), err)
		return err
	}

	params := make(map[string]string, len(parameters)+1)
	for name, value := range parameters {
		params[name] = value
	}
	params["memberName"] = member.Name

	payload := models.NotificationPayload{
		MemberId:   memberID.Hex(),
		Event:      event,
		Parameters: params,
	}

	logger.Info(ctx, "NotifyMember member: %v event: %v", memberID.Hex(), event)

	return h.sendNotificationToPubSub(ctx, payload)
}

// NotifyLoanEvent is a convenience wrapper filling the standard loan
// template parameters.
func (h *NotificationService) NotifyLoanEvent(ctx context.Context, event string, ln models.Loan) error {

	params := map[string]string{
		"loanType":      ln.Type,
		"loanAmount":    fmt.Sprintf(consts.FloatTwoDecimalFormat, ln.Amount),
		"principalLeft": fmt.Sprintf(consts.FloatTwoDecimalFormat, ln.PrincipalLeft),
		"loanDate":      ln.Date.Format(consts.DateFormat),
	}

	return h.NotifyMember(ctx, ln.Borrower, event, params)
}

func (h *NotificationService) sendNotificationToPubSub(ctx context.Context, payload models.NotificationPayload) error {

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error(ctx, "Failed to marshal notification payload: %v", err)
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	topicName := configs.PUBSUB_TOPIC

	// Separate timeout context so request cancellation does not drop
	// an already committed operation's notification.
	pubsubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messageID, err := h.pubsubPublisher.Publish(pubsubCtx, topicName, payloadBytes, nil)
	if err != nil {
		logger.Error(ctx, "Failed to publish notification to PubSub topic %s: %v", topicName, err)
		return fmt.Errorf("failed to publish to pubsub: %w", err)
	}

	logger.Info(ctx, "Successfully published notification to PubSub topic %s with message ID: %s", topicName, messageID)
	return nil
}
