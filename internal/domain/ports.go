package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository persists products together with their declared variants.
// Get returns (nil, nil) when the product does not exist.
type ProductRepository interface {
	Get(ctx context.Context, id string) (*Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
	MarkLocked(ctx context.Context, ids []string, at time.Time) error
}

// VariantCatalog exposes declared (pre-sale) stock per variant.
type VariantCatalog interface {
	GetVariants(ctx context.Context, productID string) ([]Variant, error)
	SetVariants(ctx context.Context, productID string, variants []Variant) error
	GetDeclaredStock(ctx context.Context, productID, size, color string) (int, error)
}

// SalesLedger is the append-only history of committed sales and the single source of
// truth for sold quantities.
type SalesLedger interface {
	Append(ctx context.Context, sale *Sale) (*Sale, error)
	SoldQuantity(ctx context.Context, key VariantKey) (int, error)
	SoldByProduct(ctx context.Context, productID string) (map[VariantKey]int, error)
	HasSales(ctx context.Context, productID string) (bool, error)
	Remove(ctx context.Context, saleID uuid.UUID) (bool, error)
	Get(ctx context.Context, saleID uuid.UUID) (*Sale, error)
	List(ctx context.Context) ([]*Sale, error)
}

// KeyLocker serializes work per key. Lock blocks until every key is held or ctx ends;
// the returned func releases all of them.
type KeyLocker interface {
	Lock(ctx context.Context, keys []string) (unlock func(), err error)
}

type OutboxRepository interface {
	Insert(ctx context.Context, msg OutboxMessage) error
	GetPendingBatch(ctx context.Context, maxRetry, batchSize int) ([]OutboxMessage, error)
	Save(ctx context.Context, msg OutboxMessage) error
}

type OutboxMessage struct {
	ID             uuid.UUID
	Type           string
	PayloadJSON    string
	OccurredAtUtc  int64 // unix seconds
	RetryCount     int
	ProcessedAtUtc *int64
}
