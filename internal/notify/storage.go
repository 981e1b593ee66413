package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/margianalogistics/logibot/internal/order"
)

// Storage persists notification records.
type Storage interface {
	// Create stores a new record. Returns ErrDuplicateRecord when a record
	// for the same (chat, order, event type) tuple already exists.
	Create(ctx context.Context, rec Record) error

	// FindByEvent returns the record for the tuple, sent or not.
	// Returns ErrRecordNotFound when none exists.
	FindByEvent(ctx context.Context, chatID, orderNumber string, et order.EventType) (*Record, error)

	// MarkSent flips the record to sent with the given timestamp.
	// Marking an already-sent record is a no-op, not an error.
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
}
