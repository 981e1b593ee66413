package scheduler

import "errors"

var (
	// ErrNilJob is returned when a loop is created without a job.
	ErrNilJob = errors.New("scheduler: job is nil")

	// ErrInvalidInterval is returned for a zero or negative interval.
	ErrInvalidInterval = errors.New("scheduler: interval must be positive")

	// ErrJobPanicked wraps a panic recovered from a job run.
	ErrJobPanicked = errors.New("scheduler: job panicked")
)
