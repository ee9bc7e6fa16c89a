package outbox

import (
	"context"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"
)

// LogPublisher marks messages as delivered by logging them. It is used when no broker
// is configured, so the outbox still drains.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ev primitives.Event) error {
	fields := []zap.Field{zap.String("routing_key", ev.GetRoutingKey())}
	if env, ok := ev.(*primitives.IntegrationEventEnvelope); ok {
		fields = append(fields, zap.String("type", env.Type), zap.String("payload", env.PayloadJSON))
	}
	p.logger.Info("outbox event", fields...)
	return nil
}
