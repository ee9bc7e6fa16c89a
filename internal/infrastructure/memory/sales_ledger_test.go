package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

func TestSalesLedger_AppendAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	l := NewSalesLedger()

	sale, err := l.Append(ctx, &domain.Sale{Lines: []domain.SaleLine{{ProductID: "deck", Quantity: 2}}})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sale.ID)
	assert.False(t, sale.CreatedAtUtc.IsZero())
}

func TestSalesLedger_AppendRejectsInvalidSale(t *testing.T) {
	ctx := context.Background()
	l := NewSalesLedger()

	_, err := l.Append(ctx, &domain.Sale{})
	assert.ErrorIs(t, err, domain.ErrInvalidSale)

	_, err = l.Append(ctx, &domain.Sale{Lines: []domain.SaleLine{{ProductID: "deck", Quantity: -1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidSale)

	all, _ := l.List(ctx)
	assert.Empty(t, all)
}

func TestSalesLedger_SoldQuantityIsNullAware(t *testing.T) {
	ctx := context.Background()
	l := NewSalesLedger()
	_, err := l.Append(ctx, domain.NewSale([]domain.SaleLine{
		{ProductID: "hoodie", Size: "M", Color: "black", Quantity: 3},
		{ProductID: "hoodie", Size: "M", Quantity: 2},
		{ProductID: "hoodie", Quantity: 1},
	}, decimal.Zero, domain.Customer{}))
	require.NoError(t, err)

	q, _ := l.SoldQuantity(ctx, domain.NewVariantKey("hoodie", "M", "black"))
	assert.Equal(t, 3, q)
	q, _ = l.SoldQuantity(ctx, domain.NewVariantKey("hoodie", "M", ""))
	assert.Equal(t, 2, q)
	q, _ = l.SoldQuantity(ctx, domain.NewVariantKey("hoodie", "", ""))
	assert.Equal(t, 1, q)

	byProduct, _ := l.SoldByProduct(ctx, "hoodie")
	assert.Len(t, byProduct, 3)
}

func TestSalesLedger_RemoveAndListOrder(t *testing.T) {
	ctx := context.Background()
	l := NewSalesLedger()
	first, _ := l.Append(ctx, domain.NewSale([]domain.SaleLine{{ProductID: "a", Quantity: 1}}, decimal.Zero, domain.Customer{}))
	second, _ := l.Append(ctx, domain.NewSale([]domain.SaleLine{{ProductID: "b", Quantity: 1}}, decimal.Zero, domain.Customer{}))
	third, _ := l.Append(ctx, domain.NewSale([]domain.SaleLine{{ProductID: "c", Quantity: 1}}, decimal.Zero, domain.Customer{}))

	removed, err := l.Remove(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, _ = l.Remove(ctx, second.ID)
	assert.False(t, removed)

	all, _ := l.List(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, third.ID, all[1].ID)

	has, _ := l.HasSales(ctx, "b")
	assert.False(t, has)
}

func TestSalesLedger_ListIsSnapshot(t *testing.T) {
	ctx := context.Background()
	l := NewSalesLedger()
	_, _ = l.Append(ctx, domain.NewSale([]domain.SaleLine{{ProductID: "a", Quantity: 1}}, decimal.Zero, domain.Customer{}))

	all, _ := l.List(ctx)
	all[0].Lines[0].Quantity = 50

	q, _ := l.SoldQuantity(ctx, domain.NewVariantKey("a", "", ""))
	assert.Equal(t, 1, q)
}
