package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/memory"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, ev primitives.Event) error {
	return m.Called(ctx, ev).Error(0)
}

func insert(t *testing.T, repo domain.OutboxRepository, eventType, payload string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, repo.Insert(context.Background(), domain.OutboxMessage{
		ID:            id,
		Type:          eventType,
		PayloadJSON:   payload,
		OccurredAtUtc: time.Now().UTC().Unix(),
	}))
	return id
}

func envelopeOfType(eventType string) interface{} {
	return mock.MatchedBy(func(ev primitives.Event) bool {
		env, ok := ev.(*primitives.IntegrationEventEnvelope)
		return ok && env.Type == eventType
	})
}

func TestDispatchOnce_PublishesAndMarksProcessed(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxRepository()
	insert(t, repo, "SaleCommitted", `{"saleId":"x"}`)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, envelopeOfType("SaleCommitted")).Return(nil).Once()

	n, err := NewDispatcher(repo, pub, 3, 10, zap.NewNop()).DispatchOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	pub.AssertExpectations(t)
	pending, _ := repo.GetPendingBatch(ctx, 3, 10)
	assert.Empty(t, pending)
}

func TestDispatchOnce_FailureIsRetriedUntilMaxRetry(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxRepository()
	insert(t, repo, "SaleRemoved", `{}`)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	d := NewDispatcher(repo, pub, 2, 10, zap.NewNop())

	for i := 0; i < 2; i++ {
		n, err := d.DispatchOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	}
	n, err := d.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	pub.AssertNumberOfCalls(t, "Publish", 2)
	all := repo.All()
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].RetryCount)
	assert.Nil(t, all[0].ProcessedAtUtc)
}

func TestDispatchOnce_InvalidPayloadIsNotPublished(t *testing.T) {
	repo := memory.NewOutboxRepository()
	insert(t, repo, "Broken", `{not json`)
	pub := new(mockPublisher)

	n, err := NewDispatcher(repo, pub, 3, 10, zap.NewNop()).DispatchOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Equal(t, 1, repo.All()[0].RetryCount)
}

func TestScheduler_DrainsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := memory.NewOutboxRepository()
	insert(t, repo, "ProductCloned", `{}`)

	s := NewScheduler(NewDispatcher(repo, NewLogPublisher(zap.NewNop()), 3, 10, zap.NewNop()), 1, zap.NewNop())
	s.Start(ctx)

	assert.Eventually(t, func() bool {
		pending, _ := repo.GetPendingBatch(context.Background(), 3, 10)
		return len(pending) == 0
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	s.Wait()
}
