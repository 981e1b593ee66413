package blob

import "errors"

var (
	// ErrNotFound is returned when no blob exists under the requested key.
	ErrNotFound = errors.New("blob not found")

	// ErrInvalidConfig is returned when the backend configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid blob storage configuration")

	// ErrInvalidKey is returned for keys that would escape the storage root.
	ErrInvalidKey = errors.New("invalid blob key")
)
