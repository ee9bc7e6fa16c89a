package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// Publisher is the broker side of the outbox. The RabbitMQ event bus satisfies it
// directly; Kafka and log-only publishers live in the messaging package and here.
type Publisher interface {
	Publish(ctx context.Context, ev primitives.Event) error
}

type Dispatcher struct {
	repo      domain.OutboxRepository
	publisher Publisher
	maxRetry  int
	batchSize int
	logger    *zap.Logger
}

func NewDispatcher(
	repo domain.OutboxRepository,
	publisher Publisher,
	maxRetry, batchSize int,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		maxRetry:  maxRetry,
		batchSize: batchSize,
		logger:    logger,
	}
}

// DispatchOnce publishes one batch of pending messages and returns how many were
// published. Failed messages get their retry counter bumped and stay pending until
// they reach maxRetry.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.repo.GetPendingBatch(ctx, d.maxRetry, d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	processed := 0
	for i := range msgs {
		msg := &msgs[i]
		log := d.logger.With(zap.String("message_id", msg.ID.String()), zap.String("type", msg.Type))

		if !json.Valid([]byte(msg.PayloadJSON)) {
			log.Warn("outbox: payload is not valid json")
			msg.RetryCount++
			if err := d.repo.Save(ctx, *msg); err != nil {
				log.Error("outbox: failed to save message", zap.Error(err))
			}
			continue
		}

		envelope := primitives.NewIntegrationEventEnvelope(msg.Type, msg.PayloadJSON)
		envelope.SetRoutingKey(msg.Type)

		if err := d.publisher.Publish(ctx, &envelope); err != nil {
			msg.RetryCount++
			log.Warn("outbox: failed to publish",
				zap.Int("retry_count", msg.RetryCount),
				zap.Error(err))
			if msg.RetryCount >= d.maxRetry {
				log.Error("outbox: message exhausted its retries")
			}
		} else {
			now := time.Now().UTC().Unix()
			msg.ProcessedAtUtc = &now
			processed++
		}

		if err := d.repo.Save(ctx, *msg); err != nil {
			log.Error("outbox: failed to save message", zap.Error(err))
		}
	}

	return processed, nil
}
