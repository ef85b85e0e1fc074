package service

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delayer simulates backend latency before an operation touches state.
type Delayer interface {
	Wait(ctx context.Context) error
}

// RandomDelay waits a uniformly random duration in [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

// DefaultDelay is the latency the UI was designed around.
var DefaultDelay = RandomDelay{Min: 300 * time.Millisecond, Max: 500 * time.Millisecond}

// Wait blocks for the chosen duration or until ctx is done.
func (d RandomDelay) Wait(ctx context.Context) error {
	wait := d.Min
	if d.Max > d.Min {
		wait += rand.N(d.Max - d.Min)
	}
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay returns immediately unless ctx is already done.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}
