package lock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// PgAdvisoryLocker uses session advisory locks, one pooled connection per Lock call, so
// several service instances sharing the database serialize on the same keys.
//
// The pool must not be the one the repositories use: a holder needs repository
// connections while waiters sit on theirs inside pg_advisory_lock.
type PgAdvisoryLocker struct {
	db     *sql.DB
	owned  bool
	logger *zap.Logger
}

func NewPgAdvisoryLocker(db *sql.DB, logger *zap.Logger) *PgAdvisoryLocker {
	return &PgAdvisoryLocker{db: db, logger: logger}
}

// OpenPgAdvisoryLocker abre un pool propio para los locks.
func OpenPgAdvisoryLocker(ctx context.Context, dsn string, maxConns int, logger *zap.Logger) (*PgAdvisoryLocker, error) {
	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("advisory lock pool: %w", err)
	}
	if maxConns <= 0 {
		maxConns = 20
	}
	pool.SetMaxOpenConns(maxConns)
	pool.SetMaxIdleConns(2)
	pool.SetConnMaxIdleTime(5 * time.Minute)

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("advisory lock pool: ping: %w", err)
	}
	return &PgAdvisoryLocker{db: pool, owned: true, logger: logger}, nil
}

// Close closes the pool when the locker opened it.
func (l *PgAdvisoryLocker) Close() error {
	if !l.owned {
		return nil
	}
	return l.db.Close()
}

func (l *PgAdvisoryLocker) Lock(ctx context.Context, keys []string) (func(), error) {
	keys = normalizeKeys(keys)

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("advisory lock: acquire connection: %w", err)
	}

	held := make([]int64, 0, len(keys))
	for _, k := range keys {
		h := hashKey(k)
		if _, err := conn.ExecContext(ctx, "select pg_advisory_lock($1)", h); err != nil {
			// a cancelled pg_advisory_lock may still have been granted server side
			l.release(conn, held, true)
			return nil, fmt.Errorf("advisory lock %s: %w", k, err)
		}
		held = append(held, h)
	}
	return func() { l.release(conn, held, false) }, nil
}

// release unlocks the held keys and hands the connection back. A session that may
// still hold a lock is discarded instead of pooled; closing it frees its locks.
func (l *PgAdvisoryLocker) release(conn *sql.Conn, held []int64, discard bool) {
	// se usa un contexto nuevo: el del request puede estar cancelado
	for i := len(held) - 1; i >= 0; i-- {
		if _, err := conn.ExecContext(context.Background(), "select pg_advisory_unlock($1)", held[i]); err != nil {
			l.logger.Warn("advisory unlock failed, discarding session", zap.Int64("key", held[i]), zap.Error(err))
			discard = true
		}
	}
	if discard {
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	}
	_ = conn.Close()
}
