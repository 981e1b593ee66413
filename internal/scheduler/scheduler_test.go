package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margianalogistics/logibot/internal/scheduler"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNew_Validation(t *testing.T) {
	_, err := scheduler.New("job", time.Second, nil)
	assert.ErrorIs(t, err, scheduler.ErrNilJob)

	_, err = scheduler.New("job", 0, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, scheduler.ErrInvalidInterval)
}

func TestRun_PeriodicExecution(t *testing.T) {
	var runs atomic.Int64
	loop, err := scheduler.New("counter", 20*time.Millisecond,
		func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
		scheduler.WithInitialDelay(0),
		scheduler.WithLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err = loop.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, runs.Load(), int64(3))
}

func TestRun_SingleFlight(t *testing.T) {
	var concurrent atomic.Int64
	var maxSeen atomic.Int64

	loop, err := scheduler.New("slow", 10*time.Millisecond,
		func(ctx context.Context) error {
			cur := concurrent.Add(1)
			defer concurrent.Add(-1)
			for {
				prev := maxSeen.Load()
				if cur <= prev || maxSeen.CompareAndSwap(prev, cur) {
					break
				}
			}
			// Each run outlasts several ticks.
			time.Sleep(50 * time.Millisecond)
			return nil
		},
		scheduler.WithInitialDelay(0),
		scheduler.WithLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = loop.Run(ctx)

	assert.Equal(t, int64(1), maxSeen.Load(), "runs must never overlap")
	assert.Positive(t, loop.Skipped(), "overlapping ticks should be skipped")
}

func TestRun_WaitsForInFlightRun(t *testing.T) {
	var finished atomic.Bool
	loop, err := scheduler.New("lingering", time.Minute,
		func(ctx context.Context) error {
			time.Sleep(80 * time.Millisecond)
			finished.Store(true)
			return nil
		},
		scheduler.WithInitialDelay(0),
		scheduler.WithLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = loop.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, finished.Load(), "Run must drain the in-flight run before returning")
}

func TestRun_JobErrorDoesNotStopLoop(t *testing.T) {
	var runs atomic.Int64
	loop, err := scheduler.New("flaky", 15*time.Millisecond,
		func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("transient failure")
		},
		scheduler.WithInitialDelay(0),
		scheduler.WithLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = loop.Run(ctx)

	assert.GreaterOrEqual(t, runs.Load(), int64(2))
}

func TestRun_PanicRecovered(t *testing.T) {
	var runs atomic.Int64
	loop, err := scheduler.New("panicky", 15*time.Millisecond,
		func(ctx context.Context) error {
			runs.Add(1)
			panic("boom")
		},
		scheduler.WithInitialDelay(0),
		scheduler.WithLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = loop.Run(ctx)

	assert.GreaterOrEqual(t, runs.Load(), int64(2), "loop survives panicking runs")
}

func TestRun_CancelBeforeFirstRun(t *testing.T) {
	var runs atomic.Int64
	loop, err := scheduler.New("never", time.Second,
		func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
		scheduler.WithInitialDelay(time.Second),
		scheduler.WithLogger(discardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, runs.Load())
}
