package application

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type OutboxWriter interface {
	Enqueue(ctx context.Context, evs ...primitives.Event) error
}

type outboxWriter struct {
	repo domain.OutboxRepository
}

func NewOutboxWriter(repo domain.OutboxRepository) OutboxWriter {
	return &outboxWriter{repo: repo}
}

// Enqueue stores each event as a pending outbox message; it stops at the first failure.
func (w *outboxWriter) Enqueue(ctx context.Context, evs ...primitives.Event) error {
	now := time.Now().UTC().Unix()
	for _, ev := range evs {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typeNameOf(ev), err)
		}

		eventType := ev.GetRoutingKey()
		if eventType == "" {
			eventType = typeNameOf(ev)
		}

		msg := domain.OutboxMessage{
			ID:            uuid.New(),
			Type:          eventType,
			PayloadJSON:   string(payload),
			OccurredAtUtc: now,
		}
		if err := w.repo.Insert(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func typeNameOf(ev primitives.Event) string {
	if ev == nil {
		return ""
	}
	t := reflect.TypeOf(ev)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
