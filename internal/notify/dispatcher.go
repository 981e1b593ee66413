package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/margianalogistics/logibot/pkg/logger"
)

// Sender is the messaging transport the dispatcher pushes through.
// A failed send returns an error carrying the transport diagnostic.
type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}

// Acker acknowledges delivered records; implemented by the Engine.
type Acker interface {
	MarkSent(ctx context.Context, id uuid.UUID) error
}

// Outcome reports one record's delivery result.
type Outcome struct {
	RecordID uuid.UUID
	ChatID   string
	Sent     bool
	Err      error
}

// Dispatcher pushes due records to the messaging transport one by one,
// isolating per-item failures so a bad recipient never blocks the rest of
// the batch.
type Dispatcher struct {
	sender Sender
	acker  Acker
	log    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a dispatcher over the transport and acknowledger.
func NewDispatcher(sender Sender, acker Acker, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		acker:  acker,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch attempts delivery of each record and reports per-item outcomes.
// It never returns an error: failures are logged with identifying context
// and the affected record stays unsent, to be re-surfaced by the next
// compute pass. A record is only ever delivered twice if MarkSent fails
// after a successful send.
func (d *Dispatcher) Dispatch(ctx context.Context, records []Record) []Outcome {
	outcomes := make([]Outcome, 0, len(records))

	for _, rec := range records {
		outcome := Outcome{RecordID: rec.ID, ChatID: rec.ChatID}

		if err := d.sender.Send(ctx, rec.ChatID, rec.Message); err != nil {
			outcome.Err = err
			d.log.ErrorContext(ctx, "notification delivery failed",
				logger.RecordID(rec.ID),
				logger.ChatID(rec.ChatID),
				logger.OrderNumber(rec.OrderNumber),
				logger.Error(err))
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Sent = true

		if err := d.acker.MarkSent(ctx, rec.ID); err != nil {
			// Delivered but not acknowledged: the record will be sent again
			// on a later tick. Bounded duplication, never a silent drop.
			d.log.ErrorContext(ctx, "failed to mark notification sent, duplicate delivery possible",
				logger.RecordID(rec.ID),
				logger.ChatID(rec.ChatID),
				logger.Error(err))
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
