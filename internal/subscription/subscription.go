package subscription

import "time"

// Category selects which class of notifications a preference applies to.
type Category string

const (
	CategoryEvents    Category = "events"
	CategoryReminders Category = "reminders"
	CategoryAlerts    Category = "alerts"
)

// Subscription is one recipient's opt-in state. Rows are never deleted:
// unsubscribing flips Active off so history and preferences survive a
// resubscribe.
type Subscription struct {
	ChatID            string
	Active            bool
	NotifyEvents      bool
	NotifyReminders   bool
	NotifyAlerts      bool
	ReminderLeadHours int // 0 means "use the configured default lead time"
	CreatedAt         time.Time
}

// Wants reports whether the subscription has opted in to the category.
// An inactive subscription wants nothing regardless of preferences.
func (s *Subscription) Wants(c Category) bool {
	if !s.Active {
		return false
	}
	switch c {
	case CategoryEvents:
		return s.NotifyEvents
	case CategoryReminders:
		return s.NotifyReminders
	case CategoryAlerts:
		return s.NotifyAlerts
	default:
		return false
	}
}

// LeadWindow returns the reminder lead time, falling back to def when the
// recipient has not customized it.
func (s *Subscription) LeadWindow(def time.Duration) time.Duration {
	if s.ReminderLeadHours > 0 {
		return time.Duration(s.ReminderLeadHours) * time.Hour
	}
	return def
}

// NewDefault returns the subscription created on a recipient's first
// /subscribe: all categories on, default lead time.
func NewDefault(chatID string) Subscription {
	return Subscription{
		ChatID:          chatID,
		Active:          true,
		NotifyEvents:    true,
		NotifyReminders: true,
		NotifyAlerts:    true,
		CreatedAt:       time.Now(),
	}
}
