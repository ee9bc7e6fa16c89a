package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type CheckoutMetadata struct {
	Customer domain.Customer
	Total    decimal.Decimal
	// OrderID is set when the checkout comes from an order event.
	OrderID *uuid.UUID
}

// CheckoutService validates a candidate order and commits it to the ledger. Validation
// and append run under the locks of every product in the order, so two checkouts can
// never both consume the same remaining units.
type CheckoutService struct {
	products  domain.ProductRepository
	ledger    domain.SalesLedger
	validator *ReservationValidator
	locker    domain.KeyLocker
	outbox    OutboxWriter
	logger    *zap.Logger
}

func NewCheckoutService(
	products domain.ProductRepository,
	ledger domain.SalesLedger,
	validator *ReservationValidator,
	locker domain.KeyLocker,
	outbox OutboxWriter,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		products:  products,
		ledger:    ledger,
		validator: validator,
		locker:    locker,
		outbox:    outbox,
		logger:    logger,
	}
}

func productKeys(lines []domain.SaleLine) []string {
	keys := make([]string, 0, len(lines))
	for _, l := range lines {
		keys = append(keys, productLockKey(l.Key().ProductID))
	}
	return keys
}

func productLockKey(productID string) string {
	return "product:" + productID
}

func (s *CheckoutService) Checkout(
	ctx context.Context,
	lines []domain.SaleLine,
	meta CheckoutMetadata,
) (*domain.Sale, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	unlock, err := s.locker.Lock(ctx, productKeys(lines))
	if err != nil {
		return nil, fmt.Errorf("acquire product locks: %w", err)
	}
	defer unlock()

	// Validar disponibilidad (todo o nada)
	report, err := s.validator.Validate(ctx, lines)
	if err != nil {
		return nil, err
	}
	if rejected := report.Err(); rejected != nil {
		s.logger.Info("checkout rejected", zap.Error(rejected))
		return nil, rejected
	}

	// Persistir venta; el ledger es la unica fuente de "vendido"
	sale := domain.NewSale(lines, meta.Total, meta.Customer)
	committed, err := s.ledger.Append(ctx, sale)
	if err != nil {
		return nil, err
	}

	productIDs := committed.ProductIDs()
	if err := s.products.MarkLocked(ctx, productIDs, committed.CreatedAtUtc); err != nil {
		// IsLocked still holds through the ledger, the marker only matters after a removal
		s.logger.Warn("failed to mark products locked",
			zap.Strings("product_ids", productIDs), zap.Error(err))
	}

	s.logger.Info("sale committed",
		zap.String("sale_id", committed.ID.String()),
		zap.Int("lines", len(committed.Lines)),
		zap.String("total", committed.Total.String()))

	s.enqueueCommitted(ctx, committed, report, meta.OrderID)
	return committed, nil
}

// enqueueCommitted writes SaleCommitted plus one CatalogStockAdjusted per touched variant.
// The sale is already durable, so failures here are logged and not returned.
func (s *CheckoutService) enqueueCommitted(
	ctx context.Context,
	sale *domain.Sale,
	report ValidationReport,
	orderID *uuid.UUID,
) {
	events := []primitives.Event{domain.NewSaleCommittedEvent(sale, orderID)}
	for _, g := range report.Groups {
		sold, err := s.ledger.SoldQuantity(ctx, g.Key)
		if err != nil {
			s.logger.Warn("failed to read sold quantity for stock event",
				zap.String("product_id", g.Key.ProductID), zap.Error(err))
			continue
		}
		events = append(events, domain.NewCatalogStockAdjustedEvent(
			g.Key,
			g.Available-g.Requested,
			sold,
			"SALE_COMMITTED",
		))
	}
	if err := s.outbox.Enqueue(ctx, events...); err != nil {
		s.logger.Error("failed to enqueue sale events",
			zap.String("sale_id", sale.ID.String()), zap.Error(err))
	}
}
