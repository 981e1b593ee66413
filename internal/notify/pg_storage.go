package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/pkg/pg"
)

// PGStorage is the PostgreSQL implementation of Storage. The unique
// constraint on (chat_id, order_number, event_type) enforces the dedup
// invariant at the database level, not just in engine logic.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a record storage over the given pool.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

func (s *PGStorage) Create(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, chat_id, order_number, event_type, message, sent, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.ChatID, rec.OrderNumber, string(rec.EventType),
		rec.Message, rec.Sent, rec.SentAt, rec.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateRecord
		}
		return storageErr("create notification record", err)
	}
	return nil
}

func (s *PGStorage) FindByEvent(ctx context.Context, chatID, orderNumber string, et order.EventType) (*Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx, `
		SELECT id, chat_id, order_number, event_type, message, sent, sent_at, created_at
		FROM notifications
		WHERE chat_id = $1 AND order_number = $2 AND event_type = $3`,
		chatID, orderNumber, string(et)).
		Scan(&rec.ID, &rec.ChatID, &rec.OrderNumber, &rec.EventType,
			&rec.Message, &rec.Sent, &rec.SentAt, &rec.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, storageErr("find notification record", err)
	}
	return &rec, nil
}

// MarkSent is idempotent: the WHERE NOT sent guard makes a second mark a
// zero-row update, not an error.
func (s *PGStorage) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET sent = TRUE, sent_at = $2
		WHERE id = $1 AND NOT sent`, id, at)
	if err != nil {
		return storageErr("mark notification sent", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return errors.Join(ErrStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}
