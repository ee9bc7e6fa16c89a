package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// SalesLedger keeps sales in insertion order.
type SalesLedger struct {
	mu    sync.RWMutex
	sales []*domain.Sale
}

func NewSalesLedger() *SalesLedger {
	return &SalesLedger{}
}

func (l *SalesLedger) Append(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	stored := sale.Clone()
	stored.PrepareForAppend()
	if err := stored.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sales = append(l.sales, stored)
	return stored.Clone(), nil
}

func (l *SalesLedger) SoldQuantity(_ context.Context, key domain.VariantKey) (int, error) {
	key = domain.NewVariantKey(key.ProductID, key.Size, key.Color)

	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, s := range l.sales {
		for _, line := range s.Lines {
			if line.Key() == key {
				total += line.Quantity
			}
		}
	}
	return total, nil
}

func (l *SalesLedger) SoldByProduct(_ context.Context, productID string) (map[domain.VariantKey]int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[domain.VariantKey]int)
	for _, s := range l.sales {
		for _, line := range s.Lines {
			if line.ProductID == productID {
				result[line.Key()] += line.Quantity
			}
		}
	}
	return result, nil
}

func (l *SalesLedger) HasSales(_ context.Context, productID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, s := range l.sales {
		for _, line := range s.Lines {
			if line.ProductID == productID && line.Quantity > 0 {
				return true, nil
			}
		}
	}
	return false, nil
}

func (l *SalesLedger) Remove(_ context.Context, saleID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.sales {
		if s.ID == saleID {
			l.sales = append(l.sales[:i:i], l.sales[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (l *SalesLedger) Get(_ context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, s := range l.sales {
		if s.ID == saleID {
			return s.Clone(), nil
		}
	}
	return nil, nil
}

func (l *SalesLedger) List(_ context.Context) ([]*domain.Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Sale, 0, len(l.sales))
	for _, s := range l.sales {
		out = append(out, s.Clone())
	}
	return out, nil
}
