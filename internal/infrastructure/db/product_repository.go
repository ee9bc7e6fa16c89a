package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type ProductRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewProductRepository(db *sql.DB, dialect Dialect) *ProductRepository {
	return &ProductRepository{db: db, dialect: dialect}
}

var productColumns = []string{
	"id", "name", "description", "category", "price", "sizes_json", "colors_json",
	"stock", "locked_at_utc", "created_at_utc", "updated_at_utc",
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	m, err := r.GetMany(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return m[id], nil
}

func (r *ProductRepository) GetMany(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	if len(ids) == 0 {
		return map[string]*domain.Product{}, nil
	}
	products, err := r.query(ctx, sq.Eq{"id": ids})
	if err != nil {
		return nil, err
	}
	result := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, nil)
}

func (r *ProductRepository) query(ctx context.Context, where sq.Sqlizer) ([]*domain.Product, error) {
	b := r.dialect.builder().Select(productColumns...).From("products").OrderBy("id")
	if where != nil {
		b = b.Where(where)
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.NewStorageError("products.query", err)
	}
	defer rows.Close()

	var products []*domain.Product
	byID := make(map[string]*domain.Product)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.NewStorageError("products.scan", err)
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("products.rows", err)
	}
	if len(products) == 0 {
		return products, nil
	}

	// Load variants
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	vq, vargs, err := r.dialect.builder().
		Select("product_id", "size", "color", "declared_stock").
		From("product_variants").
		Where(sq.Eq{"product_id": ids}).
		OrderBy("product_id", "position").
		ToSql()
	if err != nil {
		return nil, err
	}
	vrows, err := r.db.QueryContext(ctx, vq, vargs...)
	if err != nil {
		return nil, domain.NewStorageError("product_variants.query", err)
	}
	defer vrows.Close()

	for vrows.Next() {
		var productID string
		var v domain.Variant
		if err := vrows.Scan(&productID, &v.Size, &v.Color, &v.DeclaredStock); err != nil {
			return nil, domain.NewStorageError("product_variants.scan", err)
		}
		if p, ok := byID[productID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, domain.NewStorageError("product_variants.rows", err)
	}
	return products, nil
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	var (
		p                         domain.Product
		price, sizesJSON, colJSON string
		lockedAt                  sql.NullInt64
		createdAt, updatedAt      int64
	)
	if err := rows.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&price,
		&sizesJSON,
		&colJSON,
		&p.Stock,
		&lockedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("product %s price %q: %w", p.ID, price, err)
	}
	p.Price = d
	if err := json.Unmarshal([]byte(sizesJSON), &p.Sizes); err != nil {
		return nil, fmt.Errorf("product %s sizes: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(colJSON), &p.Colors); err != nil {
		return nil, fmt.Errorf("product %s colors: %w", p.ID, err)
	}
	if lockedAt.Valid {
		t := time.Unix(0, lockedAt.Int64).UTC()
		p.LockedAtUtc = &t
	}
	p.CreatedAtUtc = time.Unix(0, createdAt).UTC()
	p.UpdatedAtUtc = time.Unix(0, updatedAt).UTC()
	return &p, nil
}

// Save hace upsert del producto y reemplaza su matriz de variantes en una sola transaccion.
func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	if p.CreatedAtUtc.IsZero() {
		p.CreatedAtUtc = now
	}
	if p.UpdatedAtUtc.IsZero() {
		p.UpdatedAtUtc = now
	}

	sizesJSON, err := json.Marshal(nonNilStrings(p.Sizes))
	if err != nil {
		return err
	}
	colorsJSON, err := json.Marshal(nonNilColors(p.Colors))
	if err != nil {
		return err
	}
	var lockedAt sql.NullInt64
	if p.LockedAtUtc != nil {
		lockedAt = sql.NullInt64{Int64: p.LockedAtUtc.UnixNano(), Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("products.begin", err)
	}
	defer tx.Rollback()

	b := r.dialect.builder().RunWith(tx)
	_, err = b.Insert("products").
		Columns(productColumns...).
		Values(
			p.ID,
			p.Name,
			p.Description,
			p.Category,
			p.Price.String(),
			string(sizesJSON),
			string(colorsJSON),
			p.Stock,
			lockedAt,
			p.CreatedAtUtc.UnixNano(),
			p.UpdatedAtUtc.UnixNano(),
		).
		Suffix(`on conflict (id) do update
            set name = excluded.name,
                description = excluded.description,
                category = excluded.category,
                price = excluded.price,
                sizes_json = excluded.sizes_json,
                colors_json = excluded.colors_json,
                stock = excluded.stock,
                locked_at_utc = coalesce(products.locked_at_utc, excluded.locked_at_utc),
                updated_at_utc = excluded.updated_at_utc`).
		ExecContext(ctx)
	if err != nil {
		return domain.NewStorageError("products.upsert", err)
	}

	if _, err := b.Delete("product_variants").Where(sq.Eq{"product_id": p.ID}).ExecContext(ctx); err != nil {
		return domain.NewStorageError("product_variants.delete", err)
	}

	if len(p.Variants) > 0 {
		ins := b.Insert("product_variants").Columns("product_id", "size", "color", "declared_stock", "position")
		for i, v := range p.Variants {
			ins = ins.Values(p.ID, v.Size, v.Color, v.DeclaredStock, i)
		}
		if _, err := ins.ExecContext(ctx); err != nil {
			return domain.NewStorageError("product_variants.insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("products.commit", err)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, domain.NewStorageError("products.begin", err)
	}
	defer tx.Rollback()

	b := r.dialect.builder().RunWith(tx)
	if _, err := b.Delete("product_variants").Where(sq.Eq{"product_id": id}).ExecContext(ctx); err != nil {
		return false, domain.NewStorageError("product_variants.delete", err)
	}
	res, err := b.Delete("products").Where(sq.Eq{"id": id}).ExecContext(ctx)
	if err != nil {
		return false, domain.NewStorageError("products.delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError("products.delete", err)
	}
	if err := tx.Commit(); err != nil {
		return false, domain.NewStorageError("products.commit", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) MarkLocked(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.dialect.builder().RunWith(r.db).
		Update("products").
		Set("locked_at_utc", at.UTC().UnixNano()).
		Where(sq.And{sq.Eq{"id": ids}, sq.Eq{"locked_at_utc": nil}}).
		ExecContext(ctx)
	return domain.NewStorageError("products.mark_locked", err)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilColors(c []domain.Color) []domain.Color {
	if c == nil {
		return []domain.Color{}
	}
	return c
}
