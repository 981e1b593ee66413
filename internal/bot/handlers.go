package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/internal/subscription"
)

const defaultSummaryDays = 30

const helpText = `*Available commands*

/active [status] — orders currently in flight, or with a given status
/today — shipment events happening today
/search <text> — find orders by number, client or route
/status <number> — full order details
/summary [days] — aggregate statistics (default 30 days)
/report [number] — PDF report for an order, or the summary report
/contacts — operator contact info
/subscribe — receive shipment notifications
/unsubscribe — stop notifications
/settings — view and change notification preferences
/dbstatus — dependency health`

const defaultContacts = `*Margiana Logistics*

📞 +993 12 000000
📧 office@margianalogistics.example
🕘 Mon-Sat 09:00-18:00`

func (b *Bot) handleStart(ctx context.Context, chatID string) (string, error) {
	if _, err := b.subs.Get(ctx, chatID); errors.Is(err, subscription.ErrNotFound) {
		if err := b.subs.Upsert(ctx, subscription.NewDefault(chatID)); err != nil {
			return "", fmt.Errorf("register subscriber: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("lookup subscriber: %w", err)
	}

	return "👋 Welcome! You are subscribed to shipment notifications.\n\n" + helpText, nil
}

// handleActive lists in-flight orders, optionally narrowed to one status.
func (b *Bot) handleActive(ctx context.Context, status string) (string, error) {
	if status != "" {
		orders, err := b.orders.ByStatus(ctx, status)
		if err != nil {
			return "", fmt.Errorf("load orders by status: %w", err)
		}
		return formatOrderList(
			fmt.Sprintf("Orders with status %q", status),
			orders,
			fmt.Sprintf("No orders with status %q.", status)), nil
	}

	orders, err := b.orders.ActiveOrders(ctx)
	if err != nil {
		return "", fmt.Errorf("load active orders: %w", err)
	}
	return formatOrderList("Active orders", orders, "No active orders right now."), nil
}

func (b *Bot) handleToday(ctx context.Context) (string, error) {
	day := b.now()
	events, err := b.orders.EventsOn(ctx, day)
	if err != nil {
		return "", fmt.Errorf("load today's events: %w", err)
	}
	return formatEvents(day, events), nil
}

func (b *Bot) handleSearch(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "Usage: /search <order number, client or route>", nil
	}

	orders, err := b.orders.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("search orders: %w", err)
	}
	return formatOrderList(
		fmt.Sprintf("Search results for %q", query),
		orders,
		fmt.Sprintf("Nothing found for %q.", query)), nil
}

func (b *Bot) handleStatus(ctx context.Context, number string) (string, error) {
	if number == "" {
		return "Usage: /status <order number>", nil
	}

	o, err := b.orders.GetByNumber(ctx, number)
	if errors.Is(err, order.ErrNotFound) {
		return fmt.Sprintf("Order %s not found.", number), nil
	}
	if err != nil {
		return "", fmt.Errorf("load order: %w", err)
	}
	return formatOrderCard(*o), nil
}

func (b *Bot) handleSummary(ctx context.Context, args string) (string, error) {
	days := defaultSummaryDays
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			return "Usage: /summary [days]", nil
		}
		days = n
	}

	stats, err := b.orders.Statistics(ctx, days)
	if err != nil {
		return "", fmt.Errorf("load statistics: %w", err)
	}
	return formatStatistics(*stats), nil
}

// handleReport sends a PDF document rather than a text reply, so it returns
// an empty reply string on success.
func (b *Bot) handleReport(ctx context.Context, chatID, number string) (string, error) {
	now := b.now()

	if number == "" {
		stats, err := b.orders.Statistics(ctx, defaultSummaryDays)
		if err != nil {
			return "", fmt.Errorf("load statistics: %w", err)
		}
		data, filename, err := b.reports.SummaryReport(ctx, *stats, now)
		if err != nil {
			return "", fmt.Errorf("render summary report: %w", err)
		}
		if err := b.transport.SendDocument(ctx, chatID, filename, data, "Summary report"); err != nil {
			return "", fmt.Errorf("send summary report: %w", err)
		}
		return "", nil
	}

	o, err := b.orders.GetByNumber(ctx, number)
	if errors.Is(err, order.ErrNotFound) {
		return fmt.Sprintf("Order %s not found.", number), nil
	}
	if err != nil {
		return "", fmt.Errorf("load order: %w", err)
	}

	data, filename, err := b.reports.OrderReport(ctx, *o, now)
	if err != nil {
		return "", fmt.Errorf("render order report: %w", err)
	}
	if err := b.transport.SendDocument(ctx, chatID, filename, data, "Report for order "+o.Number); err != nil {
		return "", fmt.Errorf("send order report: %w", err)
	}
	return "", nil
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID string) (string, error) {
	sub, err := b.subs.Get(ctx, chatID)
	switch {
	case errors.Is(err, subscription.ErrNotFound):
		if err := b.subs.Upsert(ctx, subscription.NewDefault(chatID)); err != nil {
			return "", fmt.Errorf("create subscription: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("lookup subscription: %w", err)
	default:
		// Resubscribe keeps the old preferences, just reactivates.
		sub.Active = true
		if err := b.subs.Upsert(ctx, *sub); err != nil {
			return "", fmt.Errorf("reactivate subscription: %w", err)
		}
	}
	return "🔔 Subscribed. You will receive shipment notifications.", nil
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID string) (string, error) {
	if err := b.subs.Deactivate(ctx, chatID); err != nil {
		return "", fmt.Errorf("deactivate subscription: %w", err)
	}
	return "🔕 Unsubscribed. Use /subscribe to turn notifications back on.", nil
}

func (b *Bot) handleSettings(ctx context.Context, chatID, args string) (string, error) {
	sub, err := b.subs.Get(ctx, chatID)
	if errors.Is(err, subscription.ErrNotFound) {
		return "You are not subscribed yet. Use /subscribe first.", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup subscription: %w", err)
	}

	if args == "" {
		return formatSettings(*sub, b.defaultLead), nil
	}

	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "Usage: /settings lead <hours> | /settings events|reminders|alerts on|off", nil
	}
	key, value := strings.ToLower(fields[0]), strings.ToLower(fields[1])

	switch key {
	case "lead":
		hours, err := strconv.Atoi(value)
		if err != nil || hours <= 0 || hours > 24*14 {
			return "Lead time must be a number of hours between 1 and 336.", nil
		}
		sub.ReminderLeadHours = hours
	case "events", "reminders", "alerts":
		on, ok := parseOnOff(value)
		if !ok {
			return fmt.Sprintf("Usage: /settings %s on|off", key), nil
		}
		switch key {
		case "events":
			sub.NotifyEvents = on
		case "reminders":
			sub.NotifyReminders = on
		case "alerts":
			sub.NotifyAlerts = on
		}
	default:
		return "Unknown setting. Use lead, events, reminders or alerts.", nil
	}

	if err := b.subs.Upsert(ctx, *sub); err != nil {
		return "", fmt.Errorf("save settings: %w", err)
	}
	return formatSettings(*sub, b.defaultLead), nil
}

func (b *Bot) handleDBStatus(ctx context.Context) (string, error) {
	if len(b.checks) == 0 {
		return "No dependency checks configured.", nil
	}

	names := make([]string, 0, len(b.checks))
	for name := range b.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("*Dependency status*\n\n")
	for _, name := range names {
		if err := b.checks[name](ctx); err != nil {
			fmt.Fprintf(&sb, "❌ %s: %v\n", name, err)
		} else {
			fmt.Fprintf(&sb, "✅ %s: ok\n", name)
		}
	}
	return sb.String(), nil
}

func parseOnOff(s string) (value, ok bool) {
	switch s {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}
