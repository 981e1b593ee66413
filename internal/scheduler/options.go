package scheduler

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a Loop.
type Option func(*Loop)

// WithInitialDelay sets how long the loop waits before the first run.
func WithInitialDelay(d time.Duration) Option {
	return func(l *Loop) {
		if d >= 0 {
			l.initial = d
		}
	}
}

// WithLogger sets the logger for the loop.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}
