package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect captures what differs between the supported SQL backends: driver name,
// placeholder style and the DDL for the auto-increment sequence column.
type Dialect struct {
	Name        string
	Driver      string
	Placeholder sq.PlaceholderFormat
	seqColumn   string
}

var (
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "pgx",
		Placeholder: sq.Dollar,
		seqColumn:   "seq bigserial primary key",
	}
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite3",
		Placeholder: sq.Question,
		seqColumn:   "seq integer primary key autoincrement",
	}
)

func (d Dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}

// Open abre la conexion, hace ping y crea las tablas si no existen.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	if d.Name == SQLite.Name {
		// a single writer avoids SQLITE_BUSY and keeps ":memory:" on one connection
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	if err := EnsureSchema(ctx, conn, d); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
