package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/internal/subscription"
	"github.com/margianalogistics/logibot/pkg/logger"
)

// EventSource is the slice of the order store the engine needs.
type EventSource interface {
	EventsInWindow(ctx context.Context, from, to time.Time) ([]order.ShipmentEvent, error)
}

// Engine turns "now" plus stored lifecycle timestamps into a deduplicated
// batch of reminders, and records what has been sent.
//
// The write-before-send rule: every record is persisted unsent before it is
// ever handed to the dispatcher, so a crash between compute and dispatch
// leaves exactly one retryable record, never a duplicate.
type Engine struct {
	events      EventSource
	subs        subscription.Registry
	storage     Storage
	defaultLead time.Duration
	grace       time.Duration
	log         *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDefaultLead sets the lead window applied to recipients who have not
// customized theirs.
func WithDefaultLead(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.defaultLead = d
		}
	}
}

// WithResurfaceGrace sets how far behind now the engine keeps re-surfacing
// pending records whose event date has already passed.
func WithResurfaceGrace(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d >= 0 {
			e.grace = d
		}
	}
}

// WithEngineLogger sets the logger for the Engine.
func WithEngineLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine over the given collaborators.
func NewEngine(events EventSource, subs subscription.Registry, storage Storage, opts ...EngineOption) *Engine {
	e := &Engine{
		events:      events,
		subs:        subs,
		storage:     storage,
		defaultLead: 48 * time.Hour,
		grace:       time.Hour,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeDue returns every reminder that should be delivered for the lead
// windows anchored at now: newly synthesized records plus records from prior
// ticks that are still unsent. Results are ordered by event date, then order
// number, then chat id.
//
// Events whose date has slipped behind now (transport outage spanning the
// event time) stay eligible for the grace period: existing pending records
// are still re-surfaced, but no new records are created for past events.
// Past the grace period an unsent record is abandoned.
//
// With zero active reminder subscriptions the call returns an empty batch
// and performs no reads against the event store and no writes.
func (e *Engine) ComputeDue(ctx context.Context, now time.Time) ([]Record, error) {
	subs, err := e.subs.Active(ctx, subscription.CategoryReminders)
	if err != nil {
		return nil, fmt.Errorf("load reminder subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return []Record{}, nil
	}

	// One query covers every recipient: fetch the widest window, then trim
	// per recipient below.
	maxLead := e.defaultLead
	for _, s := range subs {
		if lead := s.LeadWindow(e.defaultLead); lead > maxLead {
			maxLead = lead
		}
	}

	events, err := e.events.EventsInWindow(ctx, now.Add(-e.grace), now.Add(maxLead))
	if err != nil {
		return nil, fmt.Errorf("load upcoming events: %w", err)
	}

	// The SQL surface already orders by (date, order number); in-memory
	// doubles may not. Sorting here keeps batches reproducible either way.
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].OrderNumber < events[j].OrderNumber
	})

	due := []Record{}
	for _, ev := range events {
		for _, sub := range subs {
			if ev.Date.After(now.Add(sub.LeadWindow(e.defaultLead))) {
				continue
			}

			var rec *Record
			var err error
			if ev.Date.Before(now) {
				rec, err = e.pendingRecord(ctx, sub.ChatID, ev)
			} else {
				rec, err = e.dueRecord(ctx, sub.ChatID, ev)
			}
			if err != nil {
				return nil, err
			}
			if rec != nil {
				due = append(due, *rec)
			}
		}
	}

	return due, nil
}

// pendingRecord looks up an existing unsent record for a past event. Unlike
// dueRecord it never creates one: a recipient who was not notified before
// the event should not get a first reminder after the fact.
func (e *Engine) pendingRecord(ctx context.Context, chatID string, ev order.ShipmentEvent) (*Record, error) {
	existing, err := e.storage.FindByEvent(ctx, chatID, ev.OrderNumber, ev.Type)
	switch {
	case err == nil:
		if existing.Sent {
			return nil, nil
		}
		return existing, nil
	case errors.Is(err, ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("lookup notification record: %w", err)
	}
}

// dueRecord resolves one (recipient, event) pair: returns the existing
// pending record, nil when already sent, or a freshly persisted record.
func (e *Engine) dueRecord(ctx context.Context, chatID string, ev order.ShipmentEvent) (*Record, error) {
	existing, err := e.storage.FindByEvent(ctx, chatID, ev.OrderNumber, ev.Type)
	switch {
	case err == nil:
		if existing.Sent {
			return nil, nil
		}
		// Pending from a prior tick: re-surface until marked sent.
		return existing, nil
	case errors.Is(err, ErrRecordNotFound):
		// Fall through to create.
	default:
		return nil, fmt.Errorf("lookup notification record: %w", err)
	}

	rec := NewRecord(chatID, ev)
	if err := e.storage.Create(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicateRecord) {
			// Lost a race with a concurrent writer; the existing record
			// will surface on the next tick.
			return nil, nil
		}
		return nil, fmt.Errorf("persist notification record: %w", err)
	}

	e.log.DebugContext(ctx, "notification record created",
		logger.RecordID(rec.ID),
		logger.ChatID(rec.ChatID),
		logger.OrderNumber(rec.OrderNumber),
		logger.EventType(string(rec.EventType)))

	return &rec, nil
}

// MarkSent acknowledges delivery of a record. Idempotent: marking an
// already-sent record is a no-op. On failure the record stays unsent and is
// redelivered on a future tick.
func (e *Engine) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := e.storage.MarkSent(ctx, id, time.Now()); err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}
