package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/internal/subscription"
)

const dateLayout = "02.01.2006"

// statusEmoji maps an order status to its chat marker.
func statusEmoji(status string) string {
	switch status {
	case "New":
		return "🆕"
	case "In Progress CHN", "In Progress IR":
		return "⚙️"
	case "In Transit CHN-IR", "In Transit IR-TKM":
		return "🚚"
	case "Completed":
		return "✅"
	case "Cancelled":
		return "❌"
	default:
		return "📦"
	}
}

// formatOrderLine renders one order as a single list row.
func formatOrderLine(o order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*", statusEmoji(o.Status), o.Number)
	if o.ClientName != "" {
		fmt.Fprintf(&b, " — %s", o.ClientName)
	}
	if o.ETADate != nil {
		fmt.Fprintf(&b, " (ETA %s)", o.ETADate.Format(dateLayout))
	}
	return b.String()
}

// formatOrderCard renders the full detail view behind /status.
func formatOrderCard(o order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *Order %s*\n\n", statusEmoji(o.Status), o.Number)
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	if o.ClientName != "" {
		fmt.Fprintf(&b, "Client: %s\n", o.ClientName)
	}
	if o.Route != "" {
		fmt.Fprintf(&b, "Route: %s\n", o.Route)
	}
	if o.GoodsType != "" {
		fmt.Fprintf(&b, "Goods: %s\n", o.GoodsType)
	}
	if o.ContainerCount > 0 {
		fmt.Fprintf(&b, "Containers: %d\n", o.ContainerCount)
	}

	if events := o.Events(); len(events) > 0 {
		b.WriteString("\n*Timeline:*\n")
		for _, ev := range events {
			fmt.Fprintf(&b, "• %s: %s\n", ev.Type.Label(), ev.Date.Format(dateLayout))
		}
	}

	if o.Notes != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", o.Notes)
	}
	return b.String()
}

// formatOrderList renders a titled list of orders, or a fallback line when
// the list is empty.
func formatOrderList(title string, orders []order.Order, empty string) string {
	if len(orders) == 0 {
		return empty
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* (%d)\n\n", title, len(orders))
	for _, o := range orders {
		b.WriteString(formatOrderLine(o))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatEvents renders the /today event list.
func formatEvents(day time.Time, events []order.ShipmentEvent) string {
	if len(events) == 0 {
		return fmt.Sprintf("No shipment events on %s.", day.Format(dateLayout))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*Events on %s* (%d)\n\n", day.Format(dateLayout), len(events))
	for _, ev := range events {
		fmt.Fprintf(&b, "• *%s* — %s\n", ev.OrderNumber, ev.Type.Label())
	}
	return b.String()
}

// formatStatistics renders the /summary aggregate view.
func formatStatistics(s order.Statistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Summary, last %d days*\n\n", s.PeriodDays)
	fmt.Fprintf(&b, "Total orders: %d\n", s.TotalOrders)
	fmt.Fprintf(&b, "Active: %d\n", s.ActiveOrders)
	fmt.Fprintf(&b, "Completed: %d\n", s.CompletedOrders)
	fmt.Fprintf(&b, "Containers: %d\n", s.TotalContainers)
	if s.TotalWeight > 0 {
		fmt.Fprintf(&b, "Weight: %.1f t\n", s.TotalWeight)
	}
	if s.TotalVolume > 0 {
		fmt.Fprintf(&b, "Volume: %.1f m3\n", s.TotalVolume)
	}
	return b.String()
}

// formatSettings renders the /settings current-state view.
func formatSettings(sub subscription.Subscription, defaultLead time.Duration) string {
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	lead := sub.LeadWindow(defaultLead)
	var b strings.Builder
	b.WriteString("*Notification settings*\n\n")
	fmt.Fprintf(&b, "Subscription: %s\n", onOff(sub.Active))
	fmt.Fprintf(&b, "Events: %s\n", onOff(sub.NotifyEvents))
	fmt.Fprintf(&b, "Reminders: %s\n", onOff(sub.NotifyReminders))
	fmt.Fprintf(&b, "Alerts: %s\n", onOff(sub.NotifyAlerts))
	fmt.Fprintf(&b, "Reminder lead time: %dh\n", int(lead.Hours()))
	b.WriteString("\nChange with: /settings lead <hours> | /settings events on|off | /settings reminders on|off | /settings alerts on|off")
	return b.String()
}
