package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type ProductCreatedHandler struct {
	admin    *ProductAdminService
	resolver *AvailabilityResolver
	outbox   OutboxWriter
	logger   *zap.Logger
}

func NewProductCreatedHandler(
	admin *ProductAdminService,
	resolver *AvailabilityResolver,
	outbox OutboxWriter,
	logger *zap.Logger,
) *ProductCreatedHandler {
	return &ProductCreatedHandler{
		admin:    admin,
		resolver: resolver,
		outbox:   outbox,
		logger:   logger,
	}
}

func (h *ProductCreatedHandler) Handle(ctx context.Context, ev primitives.Event) error {
	env, ok := ev.(*primitives.IntegrationEventEnvelope)
	if !ok {
		h.logger.Warn("ProductCreatedHandler: invalid event type", zap.String("type", typeNameOf(ev)))
		return nil
	}
	if env.Type != "ProductCreated" {
		return nil
	}

	var payload domain.ProductCreatedPayload
	if err := json.Unmarshal([]byte(env.PayloadJSON), &payload); err != nil {
		h.logger.Warn("ProductCreatedHandler: failed to unmarshal payload", zap.Error(err))
		return nil
	}
	if payload.ProductID == "" {
		h.logger.Warn("ProductCreatedHandler: missing productId")
		return nil
	}

	log := h.logger.With(zap.String("product_id", payload.ProductID))
	log.Info("ProductCreatedHandler: received ProductCreated",
		zap.Int("stock", payload.StockQuantity),
		zap.Int("variants", len(payload.Variants)))

	p := productFromPayload(payload)
	err := h.admin.UpsertFromCatalog(ctx, p)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrLockedProduct):
		// sold products keep their matrix; the catalog must clone instead
		log.Warn("ProductCreatedHandler: product is locked, skipping update")
		return nil
	case errors.Is(err, domain.ErrInvalidVariant), errors.Is(err, domain.ErrInvalidProduct):
		log.Warn("ProductCreatedHandler: invalid product", zap.Error(err))
		return nil
	default:
		return err
	}

	snapshot, err := h.resolver.Snapshot(ctx, p.ID)
	if err != nil {
		return err
	}
	events := make([]primitives.Event, 0, len(snapshot.Variants))
	for _, v := range snapshot.Variants {
		events = append(events, domain.NewCatalogStockAdjustedEvent(
			domain.NewVariantKey(p.ID, v.Size, v.Color),
			v.Remaining,
			v.Sold,
			"INITIAL_LOAD",
		))
	}
	return h.outbox.Enqueue(ctx, events...)
}

func productFromPayload(payload domain.ProductCreatedPayload) *domain.Product {
	p := domain.NewProduct(payload.ProductID, payload.Name, payload.Price, payload.StockQuantity)
	p.Description = payload.Description
	p.Category = payload.Category
	p.Sizes = payload.Sizes
	p.Colors = payload.Colors
	p.Variants = payload.Variants
	if !payload.CreatedAtUtc.IsZero() {
		p.CreatedAtUtc = payload.CreatedAtUtc.UTC()
	}
	return p
}
