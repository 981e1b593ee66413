package syncsvc

import (
	"math"
	"math/rand"
	"time"
)

// backoff computes the delay before retry attempt n (starting at 1):
// exponential growth from the initial interval with ±25% jitter, capped.
type backoff struct {
	initial time.Duration
	max     time.Duration
}

func (b backoff) next(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := b.initial
	if initial == 0 {
		initial = time.Second
	}
	max := b.max
	if max == 0 {
		max = 30 * time.Second
	}

	interval := float64(initial) * math.Pow(2, float64(attempt-1))
	interval *= 1 + (rand.Float64()*2-1)*0.25
	if interval > float64(max) {
		interval = float64(max)
	}
	return time.Duration(interval)
}
