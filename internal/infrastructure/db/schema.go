package db

import (
	"context"
	"database/sql"
	"fmt"
)

func schemaStatements(d Dialect) []string {
	return []string{
		`create table if not exists products (
            id              text primary key,
            name            text not null,
            description     text not null default '',
            category        text not null default '',
            price           text not null,
            sizes_json      text not null default '[]',
            colors_json     text not null default '[]',
            stock           integer not null,
            locked_at_utc   bigint null,
            created_at_utc  bigint not null,
            updated_at_utc  bigint not null
        )`,
		`create table if not exists product_variants (
            product_id      text not null,
            size            text not null,
            color           text not null,
            declared_stock  integer not null,
            position        integer not null,
            primary key (product_id, size, color)
        )`,
		fmt.Sprintf(`create table if not exists sales (
            %s,
            id              text not null unique,
            created_at_utc  bigint not null,
            total           text not null,
            customer_json   text not null default '{}'
        )`, d.seqColumn),
		`create table if not exists sale_lines (
            sale_id     text not null,
            line_no     integer not null,
            product_id  text not null,
            size        text not null,
            color       text not null,
            quantity    integer not null,
            primary key (sale_id, line_no)
        )`,
		`create index if not exists ix_sale_lines_product on sale_lines (product_id, size, color)`,
		`create table if not exists outbox_messages (
            id                text primary key,
            type              text not null,
            payload_json      text not null,
            occurred_at_utc   bigint not null,
            retry_count       integer not null default 0,
            processed_at_utc  bigint null
        )`,
	}
}

// EnsureSchema creates the tables used by the repositories when missing.
func EnsureSchema(ctx context.Context, conn *sql.DB, d Dialect) error {
	for _, stmt := range schemaStatements(d) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema (%s): %w", d.Name, err)
		}
	}
	return nil
}
