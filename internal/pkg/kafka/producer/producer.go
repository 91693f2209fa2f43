package producer

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"growthspring/club_lending/configs"
	"growthspring/club_lending/internal/pkg/logger"
)

type Producer struct {
	producer *kafka.Producer
	topic    string
}

var KafkaProducer *Producer

func NewKafkaProducer(broker, topic string) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": configs.KAFKA_SERVER,
		"security.protocol":  configs.KAFKA_SECURITY_PROTOCOL,
		"sasl.mechanisms":    configs.KAFKA_SASL_MECHANISM,
		"sasl.username":      configs.KAFKA_SASL_USERNAME,
		"sasl.password":      configs.KAFKA_SASL_PASSWORD,
		"session.timeout.ms": configs.KAFKA_SESSION_TIMEOUT_MS,
		"client.id":          configs.KAFKA_CLIENT_ID,
		"log_level":          0})
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: p,
		topic:    topic,
	}, nil
}

// Send publishes one message on the shared producer and waits for the
// broker's delivery report.
func (p *Producer) Send(ctx context.Context, payload []byte, key string) error {

	deliveryChan := make(chan kafka.Event, 1)
	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Value:          payload,
		Key:            []byte(key),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	event := <-deliveryChan
	msg := event.(*kafka.Message)
	if msg.TopicPartition.Error != nil {
		return fmt.Errorf("delivery failed: %w", msg.TopicPartition.Error)
	}

	logger.Info(ctx, "Message delivered to topic: %s, partition: %d, offset: %v",
		*msg.TopicPartition.Topic, msg.TopicPartition.Partition, msg.TopicPartition.Offset)

	return nil
}

// BatchMessage is one entry of a batch publish. Key picks the
// partition, so all events for a loan share one key and stay ordered.
type BatchMessage struct {
	Key     string
	Payload []byte
}

// SendMessageBatch publishes a batch of serialized events with
// per-message retries. Returns which keys made it and which did not.
func SendMessageBatch(ctx context.Context, kafkaProducer *Producer, messages []BatchMessage, retryCount int) ([]string, []string, error) {

	var successKeys []string
	var failedKeys []string

	for _, message := range messages {
		kafkaMsg := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &kafkaProducer.topic, Partition: kafka.PartitionAny},
			Value:          message.Payload,
			Key:            []byte(message.Key),
		}

		success := false
		for attempt := 0; attempt <= retryCount; attempt++ {
			err := kafkaProducer.producer.Produce(kafkaMsg, nil)
			if err == nil {
				logger.Info(ctx, "kafka message sent successfully")
				success = true
				break
			}
			logger.Error(ctx, "Failed to send Kafka message on attempt %d: %v", attempt+1, err)
			time.Sleep(time.Second * time.Duration(attempt+1))
		}
		if success {
			successKeys = append(successKeys, message.Key)
		} else {
			failedKeys = append(failedKeys, message.Key)
		}
	}

	kafkaProducer.producer.Flush(15 * 1000)
	return successKeys, failedKeys, nil
}

func (p *Producer) Close() {
	p.producer.Close()
}
