package notify

import "errors"

var (
	// ErrRecordNotFound is returned when no record exists for a lookup.
	ErrRecordNotFound = errors.New("notification record not found")

	// ErrDuplicateRecord is returned when creating a record whose
	// (chat, order, event type) tuple already exists.
	ErrDuplicateRecord = errors.New("notification record already exists")

	// ErrStoreUnavailable marks transient persistence failures during a
	// tick. Pending records stay retryable; nothing is lost.
	ErrStoreUnavailable = errors.New("notification store unavailable")
)
