package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"
)

// KafkaPublisher publishes outbox envelopes to a single Kafka topic. The event type
// travels in the "event-type" header and the affected product or sale id is the
// partition key, so events of one product stay ordered.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev primitives.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eventType := ev.GetRoutingKey()
	var value []byte
	if env, ok := ev.(*primitives.IntegrationEventEnvelope); ok {
		eventType = env.Type
		value = []byte(env.PayloadJSON)
	} else {
		raw, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		value = raw
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.NewString())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if key := partitionKey(value); key != "" {
		message.Key = sarama.StringEncoder(key)
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("publish %s to kafka: %w", eventType, err)
	}
	p.logger.Debug("event published to Kafka",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("event-type", eventType))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// partitionKey picks productId, then saleId, then orderId from the payload.
func partitionKey(payload []byte) string {
	var ids struct {
		ProductID string `json:"productId"`
		SaleID    string `json:"saleId"`
		OrderID   string `json:"orderId"`
	}
	if err := json.Unmarshal(payload, &ids); err != nil {
		return ""
	}
	switch {
	case ids.ProductID != "":
		return ids.ProductID
	case ids.SaleID != "":
		return ids.SaleID
	default:
		return ids.OrderID
	}
}
