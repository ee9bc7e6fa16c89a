package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type OutboxRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewOutboxRepository(db *sql.DB, dialect Dialect) *OutboxRepository {
	return &OutboxRepository{db: db, dialect: dialect}
}

func (r *OutboxRepository) Insert(
	ctx context.Context,
	msg domain.OutboxMessage,
) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.OccurredAtUtc == 0 {
		msg.OccurredAtUtc = time.Now().UTC().Unix()
	}

	_, err := r.dialect.builder().RunWith(r.db).
		Insert("outbox_messages").
		Columns("id", "type", "payload_json", "occurred_at_utc", "retry_count", "processed_at_utc").
		Values(msg.ID.String(), msg.Type, msg.PayloadJSON, msg.OccurredAtUtc, msg.RetryCount, sql.NullInt64{}).
		ExecContext(ctx)
	return domain.NewStorageError("outbox.insert", err)
}

func (r *OutboxRepository) GetPendingBatch(
	ctx context.Context,
	maxRetry, batchSize int,
) ([]domain.OutboxMessage, error) {
	q, args, err := r.dialect.builder().
		Select("id", "type", "payload_json", "occurred_at_utc", "retry_count", "processed_at_utc").
		From("outbox_messages").
		Where(sq.And{sq.Eq{"processed_at_utc": nil}, sq.Lt{"retry_count": maxRetry}}).
		OrderBy("occurred_at_utc asc").
		Limit(uint64(batchSize)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.NewStorageError("outbox.pending", err)
	}
	defer rows.Close()

	var result []domain.OutboxMessage
	for rows.Next() {
		var msg domain.OutboxMessage
		var id string
		var processedAt sql.NullInt64
		if err := rows.Scan(
			&id,
			&msg.Type,
			&msg.PayloadJSON,
			&msg.OccurredAtUtc,
			&msg.RetryCount,
			&processedAt,
		); err != nil {
			return nil, domain.NewStorageError("outbox.scan", err)
		}
		if msg.ID, err = uuid.Parse(id); err != nil {
			return nil, domain.NewStorageError("outbox.scan", err)
		}
		if processedAt.Valid {
			t := processedAt.Int64
			msg.ProcessedAtUtc = &t
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *OutboxRepository) Save(
	ctx context.Context,
	msg domain.OutboxMessage,
) error {
	if msg.ID == uuid.Nil {
		return errors.New("outbox message id is empty")
	}

	upd := r.dialect.builder().RunWith(r.db).
		Update("outbox_messages").
		Set("retry_count", msg.RetryCount).
		Where(sq.Eq{"id": msg.ID.String()})
	// processed_at_utc solo se escribe cuando viene informado
	if msg.ProcessedAtUtc != nil {
		upd = upd.Set("processed_at_utc", *msg.ProcessedAtUtc)
	}
	_, err := upd.ExecContext(ctx)
	return domain.NewStorageError("outbox.save", err)
}
