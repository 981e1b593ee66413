package telegram

import "errors"

var (
	// ErrInvalidChatID is returned when a chat id is not a valid integer.
	ErrInvalidChatID = errors.New("telegram: invalid chat id")

	// ErrSendFailed wraps a transport-level delivery failure.
	ErrSendFailed = errors.New("telegram: send failed")

	// ErrPollingUnsupported is returned when the configured API backend
	// cannot long-poll for updates.
	ErrPollingUnsupported = errors.New("telegram: api backend does not support polling")
)
