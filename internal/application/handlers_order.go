package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type EventHandler interface {
	Handle(ctx context.Context, ev primitives.Event) error
}

// OrderPlacedHandler

type OrderPlacedHandler struct {
	checkout *CheckoutService
	outbox   OutboxWriter
	logger   *zap.Logger
}

func NewOrderPlacedHandler(checkout *CheckoutService, outbox OutboxWriter, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{checkout: checkout, outbox: outbox, logger: logger}
}

// Handle runs a checkout for the order. Rejected orders are answered with a
// CheckoutRejected event and acknowledged; only infrastructure failures are returned so
// the bus can redeliver.
func (h *OrderPlacedHandler) Handle(ctx context.Context, ev primitives.Event) error {
	env, ok := ev.(*primitives.IntegrationEventEnvelope)
	if !ok {
		h.logger.Warn("OrderPlacedHandler: invalid event type", zap.String("type", typeNameOf(ev)))
		return nil
	}
	if env.Type != "OrderPlacedEvent" {
		return nil
	}

	var payload domain.OrderPlacedPayload
	if err := json.Unmarshal([]byte(env.PayloadJSON), &payload); err != nil {
		h.logger.Warn("OrderPlacedHandler: failed to unmarshal payload", zap.Error(err))
		return nil
	}
	if payload.OrderID == uuid.Nil {
		h.logger.Warn("OrderPlacedHandler: missing orderId")
		return nil
	}

	log := h.logger.With(zap.String("order_id", payload.OrderID.String()))
	log.Info("OrderPlacedHandler: received order", zap.Int("lines", len(payload.Lines)))

	orderID := payload.OrderID
	sale, err := h.checkout.Checkout(ctx, payload.SaleLines(), CheckoutMetadata{
		Customer: payload.Customer,
		Total:    payload.Total,
		OrderID:  &orderID,
	})
	if err == nil {
		log.Info("OrderPlacedHandler: order committed", zap.String("sale_id", sale.ID.String()))
		return nil
	}

	var rejected *domain.OrderRejectedError
	switch {
	case errors.As(err, &rejected):
		return h.reject(ctx, orderID, "INSUFFICIENT_STOCK", rejected.Problems)
	case errors.Is(err, domain.ErrEmptyOrder), errors.Is(err, domain.ErrInvalidSale):
		return h.reject(ctx, orderID, "INVALID_ORDER", nil)
	default:
		log.Error("OrderPlacedHandler: checkout failed", zap.Error(err))
		return err
	}
}

func (h *OrderPlacedHandler) reject(ctx context.Context, orderID uuid.UUID, reason string, problems []domain.LineProblem) error {
	h.logger.Info("OrderPlacedHandler: order rejected",
		zap.String("order_id", orderID.String()),
		zap.String("reason", reason),
		zap.Int("problems", len(problems)))
	return h.outbox.Enqueue(ctx, domain.NewCheckoutRejectedEvent(orderID, reason, problems))
}
