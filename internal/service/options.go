package service

import (
	"log/slog"
	"time"
)

type options struct {
	delay   Delayer
	now     func() time.Time
	metrics MetricsRecorder
	logger  *slog.Logger
}

// Option configures a service.
type Option func(*options)

// WithDelay sets the simulated latency. Defaults to DefaultDelay.
func WithDelay(d Delayer) Option {
	return func(o *options) { o.delay = d }
}

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		delay:   DefaultDelay,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		metrics: noopMetrics{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
