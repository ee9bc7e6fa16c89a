package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/db"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/infrastructure/memory"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Options struct {
	// Backends in preference order.
	Backends       []string
	PgDsn          string
	SqlitePath     string
	ConnectTimeout time.Duration
}

// Backend is the set of repositories served by one storage provider.
type Backend struct {
	Name     string
	Products domain.ProductRepository
	Ledger   domain.SalesLedger
	Outbox   domain.OutboxRepository
	// DB is nil for the memory backend.
	DB *sql.DB
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// Open tries every configured backend in order and returns the first one that answers.
// Each failure is logged; the error lists all of them when none is reachable.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Backend, error) {
	if len(opts.Backends) == 0 {
		opts.Backends = []string{BackendMemory}
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	var errs []error
	for _, name := range opts.Backends {
		b, err := open(ctx, name, opts)
		if err == nil {
			logger.Info("storage backend selected", zap.String("backend", name))
			return b, nil
		}
		logger.Warn("storage backend unavailable, trying next",
			zap.String("backend", name), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return nil, domain.NewStorageError("open storage", errors.Join(errs...))
}

func open(ctx context.Context, name string, opts Options) (*Backend, error) {
	switch name {
	case BackendPostgres:
		if opts.PgDsn == "" {
			return nil, errors.New("PG_DSN is empty")
		}
		return openSQL(ctx, db.Postgres, opts.PgDsn, opts.ConnectTimeout)
	case BackendSQLite:
		if opts.SqlitePath == "" {
			return nil, errors.New("SQLITE_PATH is empty")
		}
		return openSQL(ctx, db.SQLite, opts.SqlitePath, opts.ConnectTimeout)
	case BackendMemory:
		return &Backend{
			Name:     BackendMemory,
			Products: memory.NewProductRepository(),
			Ledger:   memory.NewSalesLedger(),
			Outbox:   memory.NewOutboxRepository(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", name)
	}
}

func openSQL(ctx context.Context, d db.Dialect, dsn string, timeout time.Duration) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := db.Open(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:     d.Name,
		Products: db.NewProductRepository(conn, d),
		Ledger:   db.NewSalesLedger(conn, d),
		Outbox:   db.NewOutboxRepository(conn, d),
		DB:       conn,
	}, nil
}
