package order

import "errors"

var (
	// ErrNotFound is returned when no order matches the requested number.
	ErrNotFound = errors.New("order not found")

	// ErrStoreUnavailable marks transient store failures. Callers treat it
	// as retryable: the scheduler simply waits for the next tick.
	ErrStoreUnavailable = errors.New("order store unavailable")
)
