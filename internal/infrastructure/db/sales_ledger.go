package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// SalesLedger guarda ventas y lineas; el orden de insercion lo da la columna seq.
type SalesLedger struct {
	db      *sql.DB
	dialect Dialect
}

func NewSalesLedger(db *sql.DB, dialect Dialect) *SalesLedger {
	return &SalesLedger{db: db, dialect: dialect}
}

func (l *SalesLedger) Append(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	stored := sale.Clone()
	stored.PrepareForAppend()
	if err := stored.Validate(); err != nil {
		return nil, err
	}

	customerJSON, err := json.Marshal(stored.Customer)
	if err != nil {
		return nil, err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageError("sales.begin", err)
	}
	defer tx.Rollback()

	b := l.dialect.builder().RunWith(tx)
	if _, err := b.Insert("sales").
		Columns("id", "created_at_utc", "total", "customer_json").
		Values(stored.ID.String(), stored.CreatedAtUtc.UnixNano(), stored.Total.String(), string(customerJSON)).
		ExecContext(ctx); err != nil {
		return nil, domain.NewStorageError("sales.insert", err)
	}

	ins := b.Insert("sale_lines").Columns("sale_id", "line_no", "product_id", "size", "color", "quantity")
	for i, line := range stored.Lines {
		ins = ins.Values(stored.ID.String(), i, line.ProductID, line.Size, line.Color, line.Quantity)
	}
	if _, err := ins.ExecContext(ctx); err != nil {
		return nil, domain.NewStorageError("sale_lines.insert", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewStorageError("sales.commit", err)
	}
	return stored.Clone(), nil
}

func (l *SalesLedger) SoldQuantity(ctx context.Context, key domain.VariantKey) (int, error) {
	key = domain.NewVariantKey(key.ProductID, key.Size, key.Color)
	q, args, err := l.dialect.builder().
		Select("coalesce(sum(quantity), 0)").
		From("sale_lines").
		Where(sq.Eq{"product_id": key.ProductID, "size": key.Size, "color": key.Color}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := l.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, domain.NewStorageError("sale_lines.sold_quantity", err)
	}
	return int(total), nil
}

func (l *SalesLedger) SoldByProduct(ctx context.Context, productID string) (map[domain.VariantKey]int, error) {
	q, args, err := l.dialect.builder().
		Select("size", "color", "sum(quantity)").
		From("sale_lines").
		Where(sq.Eq{"product_id": productID}).
		GroupBy("size", "color").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.NewStorageError("sale_lines.sold_by_product", err)
	}
	defer rows.Close()

	result := make(map[domain.VariantKey]int)
	for rows.Next() {
		var size, color string
		var total int64
		if err := rows.Scan(&size, &color, &total); err != nil {
			return nil, domain.NewStorageError("sale_lines.scan", err)
		}
		result[domain.NewVariantKey(productID, size, color)] = int(total)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("sale_lines.rows", err)
	}
	return result, nil
}

func (l *SalesLedger) HasSales(ctx context.Context, productID string) (bool, error) {
	q, args, err := l.dialect.builder().
		Select("1").
		From("sale_lines").
		Where(sq.And{sq.Eq{"product_id": productID}, sq.Gt{"quantity": 0}}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}
	var one int
	err = l.db.QueryRowContext(ctx, q, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, domain.NewStorageError("sale_lines.has_sales", err)
	}
	return true, nil
}

func (l *SalesLedger) Remove(ctx context.Context, saleID uuid.UUID) (bool, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return false, domain.NewStorageError("sales.begin", err)
	}
	defer tx.Rollback()

	b := l.dialect.builder().RunWith(tx)
	if _, err := b.Delete("sale_lines").Where(sq.Eq{"sale_id": saleID.String()}).ExecContext(ctx); err != nil {
		return false, domain.NewStorageError("sale_lines.delete", err)
	}
	res, err := b.Delete("sales").Where(sq.Eq{"id": saleID.String()}).ExecContext(ctx)
	if err != nil {
		return false, domain.NewStorageError("sales.delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError("sales.delete", err)
	}
	if err := tx.Commit(); err != nil {
		return false, domain.NewStorageError("sales.commit", err)
	}
	return n > 0, nil
}

func (l *SalesLedger) Get(ctx context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	sales, err := l.load(ctx, sq.Eq{"s.id": saleID.String()})
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, nil
	}
	return sales[0], nil
}

func (l *SalesLedger) List(ctx context.Context) ([]*domain.Sale, error) {
	return l.load(ctx, nil)
}

// load trae ventas + lineas con un join, ordenadas por seq y numero de linea.
func (l *SalesLedger) load(ctx context.Context, where sq.Sqlizer) ([]*domain.Sale, error) {
	b := l.dialect.builder().
		Select("s.id", "s.created_at_utc", "s.total", "s.customer_json",
			"sl.product_id", "sl.size", "sl.color", "sl.quantity").
		From("sales s").
		Join("sale_lines sl on sl.sale_id = s.id").
		OrderBy("s.seq", "sl.line_no")
	if where != nil {
		b = b.Where(where)
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.NewStorageError("sales.query", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	var current *domain.Sale
	for rows.Next() {
		var (
			id, total, customerJSON string
			createdAt               int64
			line                    domain.SaleLine
		)
		if err := rows.Scan(&id, &createdAt, &total, &customerJSON,
			&line.ProductID, &line.Size, &line.Color, &line.Quantity); err != nil {
			return nil, domain.NewStorageError("sales.scan", err)
		}

		if current == nil || current.ID.String() != id {
			s, err := newStoredSale(id, createdAt, total, customerJSON)
			if err != nil {
				return nil, domain.NewStorageError("sales.decode", err)
			}
			sales = append(sales, s)
			current = s
		}
		current.Lines = append(current.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("sales.rows", err)
	}
	return sales, nil
}

func newStoredSale(id string, createdAt int64, total, customerJSON string) (*domain.Sale, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("sale id %q: %w", id, err)
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("sale %s total %q: %w", id, total, err)
	}
	s := &domain.Sale{
		ID:           saleID,
		CreatedAtUtc: time.Unix(0, createdAt).UTC(),
		Total:        t,
	}
	if err := json.Unmarshal([]byte(customerJSON), &s.Customer); err != nil {
		return nil, fmt.Errorf("sale %s customer: %w", id, err)
	}
	return s, nil
}
