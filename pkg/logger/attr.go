package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ChatID records the recipient chat identifier under the key "chat_id".
// If id is nil, it returns an empty Attr.
func ChatID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("chat_id", id)
}

// OrderNumber records the order number under the key "order_number".
func OrderNumber(number string) slog.Attr {
	return slog.String("order_number", number)
}

// EventType records the shipment event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// RecordID records the notification record identifier under the key "record_id".
// If id is nil, it returns an empty Attr.
func RecordID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("record_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Count records an item count under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
