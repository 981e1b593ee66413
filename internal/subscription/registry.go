package subscription

import "context"

// Registry is the durable set of recipient subscriptions.
type Registry interface {
	// Get returns the subscription for chatID, ErrNotFound if none exists.
	Get(ctx context.Context, chatID string) (*Subscription, error)

	// Active returns all active subscriptions opted in to the category.
	Active(ctx context.Context, category Category) ([]Subscription, error)

	// Upsert creates the subscription or replaces its mutable fields.
	Upsert(ctx context.Context, sub Subscription) error

	// Deactivate soft-disables the subscription. Missing rows are a no-op.
	Deactivate(ctx context.Context, chatID string) error
}
