package subscription

import "errors"

var (
	// ErrNotFound is returned when no subscription exists for a chat.
	ErrNotFound = errors.New("subscription not found")

	// ErrStoreUnavailable marks transient registry failures.
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)
