package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/margianalogistics/logibot/pkg/pg"
)

// PGRegistry is the PostgreSQL implementation of Registry.
type PGRegistry struct {
	pool *pgxpool.Pool
}

// NewPGRegistry creates a registry over the given pool.
func NewPGRegistry(pool *pgxpool.Pool) *PGRegistry {
	return &PGRegistry{pool: pool}
}

const subColumns = `chat_id, is_active, notify_events, notify_reminders, notify_alerts, reminder_lead_hours, created_at`

func (r *PGRegistry) Get(ctx context.Context, chatID string) (*Subscription, error) {
	var s Subscription
	err := r.pool.QueryRow(ctx,
		`SELECT `+subColumns+` FROM subscriptions WHERE chat_id = $1`, chatID).
		Scan(&s.ChatID, &s.Active, &s.NotifyEvents, &s.NotifyReminders,
			&s.NotifyAlerts, &s.ReminderLeadHours, &s.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, registryErr("get subscription", err)
	}
	return &s, nil
}

func (r *PGRegistry) Active(ctx context.Context, category Category) ([]Subscription, error) {
	column, ok := categoryColumn(category)
	if !ok {
		return []Subscription{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+subColumns+` FROM subscriptions
		 WHERE is_active AND `+column+`
		 ORDER BY chat_id`)
	if err != nil {
		return nil, registryErr("list active subscriptions", err)
	}
	defer rows.Close()

	subs := []Subscription{}
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(&s.ChatID, &s.Active, &s.NotifyEvents, &s.NotifyReminders,
			&s.NotifyAlerts, &s.ReminderLeadHours, &s.CreatedAt); err != nil {
			return nil, registryErr("list active subscriptions", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, registryErr("list active subscriptions", err)
	}
	return subs, nil
}

func (r *PGRegistry) Upsert(ctx context.Context, sub Subscription) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscriptions (chat_id, is_active, notify_events, notify_reminders, notify_alerts, reminder_lead_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			notify_events = EXCLUDED.notify_events,
			notify_reminders = EXCLUDED.notify_reminders,
			notify_alerts = EXCLUDED.notify_alerts,
			reminder_lead_hours = EXCLUDED.reminder_lead_hours`,
		sub.ChatID, sub.Active, sub.NotifyEvents, sub.NotifyReminders,
		sub.NotifyAlerts, sub.ReminderLeadHours)
	if err != nil {
		return registryErr("upsert subscription", err)
	}
	return nil
}

func (r *PGRegistry) Deactivate(ctx context.Context, chatID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET is_active = FALSE WHERE chat_id = $1`, chatID)
	if err != nil {
		return registryErr("deactivate subscription", err)
	}
	return nil
}

// categoryColumn maps a category to its preference column. The column name
// comes from a fixed map, never from user input.
func categoryColumn(c Category) (string, bool) {
	switch c {
	case CategoryEvents:
		return "notify_events", true
	case CategoryReminders:
		return "notify_reminders", true
	case CategoryAlerts:
		return "notify_alerts", true
	default:
		return "", false
	}
}

func registryErr(op string, err error) error {
	return errors.Join(ErrStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}
