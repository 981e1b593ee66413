package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/margianalogistics/logibot/pkg/logger"
)

// Job is one unit of periodic work. The context carries cancellation from
// the loop; a returned error is logged, never fatal to the loop.
type Job func(ctx context.Context) error

// Loop runs a job on a fixed interval with single-flight semantics: if a run
// is still in progress when the next tick fires, the tick is skipped rather
// than queued. Panics inside the job are recovered so one bad run never
// kills the loop.
type Loop struct {
	name     string
	job      Job
	interval time.Duration
	initial  time.Duration
	log      *slog.Logger

	running atomic.Bool
	skipped atomic.Int64
	wg      sync.WaitGroup
}

// New creates a loop running job every interval.
func New(name string, interval time.Duration, job Job, opts ...Option) (*Loop, error) {
	if job == nil {
		return nil, ErrNilJob
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	l := &Loop{
		name:     name,
		job:      job,
		interval: interval,
		initial:  5 * time.Second,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Run executes the loop until ctx is canceled. The first run fires after the
// initial delay, then on every interval tick. Returns ctx.Err() after any
// in-flight run has finished.
func (l *Loop) Run(ctx context.Context) error {
	l.log.InfoContext(ctx, "scheduler loop starting",
		slog.String("job", l.name),
		slog.Duration("interval", l.interval))

	defer l.wg.Wait()

	initial := time.NewTimer(l.initial)
	defer initial.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-initial.C:
		l.tick(ctx)
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.InfoContext(ctx, "scheduler loop stopping", slog.String("job", l.name))
			return ctx.Err()
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

// Skipped returns how many ticks were dropped because a run was in flight.
func (l *Loop) Skipped() int64 {
	return l.skipped.Load()
}

// tick starts a run in the background unless one is already in flight.
// Running the job off the select loop keeps ticks consumed on time: a slow
// run makes later ticks skip, it never queues them up behind itself.
func (l *Loop) tick(ctx context.Context) {
	if !l.running.CompareAndSwap(false, true) {
		l.skipped.Add(1)
		l.log.WarnContext(ctx, "previous run still in flight, skipping tick",
			slog.String("job", l.name))
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.running.Store(false)

		start := time.Now()
		if err := l.runJob(ctx); err != nil {
			l.log.ErrorContext(ctx, "scheduled run failed",
				slog.String("job", l.name),
				logger.Error(err))
			return
		}

		l.log.DebugContext(ctx, "scheduled run complete",
			slog.String("job", l.name),
			slog.Duration("elapsed", time.Since(start)))
	}()
}

func (l *Loop) runJob(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrJobPanicked, r, debug.Stack())
		}
	}()
	return l.job(ctx)
}
