package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/margianalogistics/logibot/internal/order"
)

// Record is one pending-or-sent reminder. It doubles as the durable
// idempotency guard: at most one record may exist per
// (chat, order, event type) tuple, enforced by storage, and records are
// never deleted in normal operation.
type Record struct {
	ID          uuid.UUID
	ChatID      string
	OrderNumber string
	EventType   order.EventType
	Message     string
	Sent        bool
	SentAt      *time.Time
	CreatedAt   time.Time
}

// NewRecord builds an unsent record for the given recipient and event.
func NewRecord(chatID string, ev order.ShipmentEvent) Record {
	return Record{
		ID:          uuid.New(),
		ChatID:      chatID,
		OrderNumber: ev.OrderNumber,
		EventType:   ev.Type,
		Message:     ReminderMessage(ev),
		CreatedAt:   time.Now(),
	}
}

// ReminderMessage renders the chat text for an upcoming event.
func ReminderMessage(ev order.ShipmentEvent) string {
	return fmt.Sprintf("🔔 Reminder: %s for order %s expected on %s",
		ev.Type.Label(), ev.OrderNumber, ev.Date.Format("02.01.2006 15:04"))
}
