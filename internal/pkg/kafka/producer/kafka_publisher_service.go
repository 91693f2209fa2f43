package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"growthspring/club_lending/configs"
	"growthspring/club_lending/internal/pkg/common"
	"growthspring/club_lending/internal/pkg/models"
)

// KafkaService publishes lending events on the shared producer opened
// at boot.
type KafkaService struct {
	producer *Producer
}

func NewKafkaService() *KafkaService {
	return &KafkaService{producer: KafkaProducer}
}

func (k *KafkaService) publish(ctx context.Context, payload []byte, key string) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer not initialised")
	}
	return k.producer.Send(ctx, payload, key)
}

// PublishLoanEventToKafka publishes a loan lifecycle event to the
// transaction stream.
func (k *KafkaService) PublishLoanEventToKafka(ctx context.Context, event string, ln models.Loan) error {

	message := common.SerializeLoanEventMessage(event, ln)

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal loan event: %w", err)
	}

	return k.publish(ctx, payload, message.LoanId)
}

// PublishLoanEventsToKafka publishes several lifecycle events for one
// loan as a batch, all keyed by the loan id so they stay in order.
func (k *KafkaService) PublishLoanEventsToKafka(ctx context.Context, events []string, ln models.Loan) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer not initialised")
	}

	messages := make([]BatchMessage, 0, len(events))
	for _, event := range events {
		message := common.SerializeLoanEventMessage(event, ln)
		payload, err := json.Marshal(message)
		if err != nil {
			return fmt.Errorf("failed to marshal loan event: %w", err)
		}
		messages = append(messages, BatchMessage{Key: message.LoanId, Payload: payload})
	}

	_, failed, err := SendMessageBatch(ctx, k.producer, messages, configs.KAFKA_RETRY_COUNT)
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to deliver %d of %d loan events", len(failed), len(messages))
	}
	return nil
}

// PublishLedgerEventToKafka publishes a deposit, withdrawal or point
// movement to the transaction stream.
func (k *KafkaService) PublishLedgerEventToKafka(ctx context.Context, event string, member primitive.ObjectID, amount float64, points float64, refID string) error {

	message := common.SerializeLedgerEventMessage(event, member, amount, points, refID)

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	return k.publish(ctx, payload, message.MemberId)
}
