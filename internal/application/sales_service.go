package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type SalesService struct {
	ledger domain.SalesLedger
	outbox OutboxWriter
	logger *zap.Logger
}

func NewSalesService(ledger domain.SalesLedger, outbox OutboxWriter, logger *zap.Logger) *SalesService {
	return &SalesService{ledger: ledger, outbox: outbox, logger: logger}
}

func (s *SalesService) List(ctx context.Context) ([]*domain.Sale, error) {
	return s.ledger.List(ctx)
}

func (s *SalesService) Get(ctx context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	sale, err := s.ledger.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

// Remove is an administrative correction. It does not unlock the products the sale
// referenced: their lock marker was set at commit time.
func (s *SalesService) Remove(ctx context.Context, saleID uuid.UUID) (bool, error) {
	sale, err := s.ledger.Get(ctx, saleID)
	if err != nil {
		return false, err
	}
	if sale == nil {
		return false, nil
	}
	removed, err := s.ledger.Remove(ctx, saleID)
	if err != nil || !removed {
		return removed, err
	}

	s.logger.Warn("sale removed", zap.String("sale_id", saleID.String()))
	if err := s.outbox.Enqueue(ctx, domain.NewSaleRemovedEvent(sale)); err != nil {
		s.logger.Error("failed to enqueue sale removed event", zap.String("sale_id", saleID.String()), zap.Error(err))
	}
	return true, nil
}
