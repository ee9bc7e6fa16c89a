package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type OutboxRepository struct {
	mu       sync.Mutex
	messages map[uuid.UUID]domain.OutboxMessage
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{messages: make(map[uuid.UUID]domain.OutboxMessage)}
}

func (r *OutboxRepository) Insert(_ context.Context, msg domain.OutboxMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.OccurredAtUtc == 0 {
		msg.OccurredAtUtc = time.Now().UTC().Unix()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ID] = msg
	return nil
}

func (r *OutboxRepository) GetPendingBatch(_ context.Context, maxRetry, batchSize int) ([]domain.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []domain.OutboxMessage
	for _, m := range r.messages {
		if m.ProcessedAtUtc == nil && m.RetryCount < maxRetry {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].OccurredAtUtc < pending[j].OccurredAtUtc
	})
	if batchSize > 0 && len(pending) > batchSize {
		pending = pending[:batchSize]
	}
	return pending, nil
}

func (r *OutboxRepository) Save(_ context.Context, msg domain.OutboxMessage) error {
	if msg.ID == uuid.Nil {
		return errors.New("outbox message id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.messages[msg.ID]
	if !ok {
		return nil
	}
	current.RetryCount = msg.RetryCount
	if msg.ProcessedAtUtc != nil {
		current.ProcessedAtUtc = msg.ProcessedAtUtc
	}
	r.messages[msg.ID] = current
	return nil
}

// All returns every stored message, oldest first.
func (r *OutboxRepository) All() []domain.OutboxMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.OutboxMessage, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAtUtc < out[j].OccurredAtUtc })
	return out
}
