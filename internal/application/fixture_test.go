package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/lock"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/memory"
)

type fixture struct {
	products *memory.ProductRepository
	ledger   *memory.SalesLedger
	outbox   *memory.OutboxRepository

	catalog   *Catalog
	resolver  *AvailabilityResolver
	validator *ReservationValidator
	checkout  *CheckoutService
	admin     *ProductAdminService
	sales     *SalesService
}

func newFixture() *fixture {
	f := &fixture{
		products: memory.NewProductRepository(),
		ledger:   memory.NewSalesLedger(),
		outbox:   memory.NewOutboxRepository(),
	}
	logger := zap.NewNop()
	locker := lock.NewLocalLocker()
	writer := NewOutboxWriter(f.outbox)

	f.catalog = NewCatalog(f.products)
	f.resolver = NewAvailabilityResolver(f.catalog, f.products, f.ledger)
	f.validator = NewReservationValidator(f.products, f.resolver)
	f.checkout = NewCheckoutService(f.products, f.ledger, f.validator, locker, writer, logger)
	f.admin = NewProductAdminService(f.products, f.catalog, f.resolver, locker, writer, logger)
	f.sales = NewSalesService(f.ledger, writer, logger)
	return f
}

// seed stores a product directly, bypassing the admin service.
func (f *fixture) seed(t *testing.T, id string, stock int, variants ...domain.Variant) *domain.Product {
	t.Helper()
	p := domain.NewProduct(id, id, decimal.RequireFromString("29.99"), stock)
	p.Variants = variants
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func (f *fixture) remaining(t *testing.T, productID, size, color string) int {
	t.Helper()
	n, err := f.resolver.RemainingForVariant(context.Background(), productID, size, color)
	require.NoError(t, err)
	return n
}

func (f *fixture) ledgerLen(t *testing.T) int {
	t.Helper()
	all, err := f.ledger.List(context.Background())
	require.NoError(t, err)
	return len(all)
}

func (f *fixture) outboxTypes() []string {
	msgs := f.outbox.All()
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Type)
	}
	return out
}

func line(productID, size, color string, qty int) domain.SaleLine {
	return domain.SaleLine{ProductID: productID, Size: size, Color: color, Quantity: qty}
}

func hoodieBlackM(stock int) domain.Variant {
	return domain.Variant{Size: "M", Color: "black", DeclaredStock: stock}
}
