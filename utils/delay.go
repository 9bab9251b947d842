package utils

import (
	"context"
	"math/rand"
	"time"
)

// Pacer spaces out requests with a random pause drawn uniformly from
// [Min, Max].
type Pacer struct {
	Min time.Duration
	Max time.Duration
}

// NewPacer returns a Pacer for the given range. An inverted range collapses
// to Min.
func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{Min: min, Max: max}
}

// Next draws the next pause duration.
func (p *Pacer) Next() time.Duration {
	diff := p.Max - p.Min
	if diff <= 0 {
		return p.Min
	}
	return p.Min + time.Duration(rand.Int63n(int64(diff)+1))
}

// Wait sleeps for the next pause, returning early with ctx.Err() if the
// context is cancelled first.
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	d := p.Next()
	if d <= 0 {
		return 0, ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return d, nil
	case <-ctx.Done():
		return d, ctx.Err()
	}
}
