package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomDelayWaitsWithinBounds(t *testing.T) {
	d := RandomDelay{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	start := time.Now()
	assert.NoError(t, d.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestRandomDelayZero(t *testing.T) {
	assert.NoError(t, RandomDelay{}.Wait(context.Background()))
}

func TestRandomDelayCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := RandomDelay{Min: time.Second, Max: time.Second}.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoDelay(t *testing.T) {
	assert.NoError(t, NoDelay{}.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NoDelay{}.Wait(ctx), context.Canceled)
}
