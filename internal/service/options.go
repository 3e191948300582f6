package service

import (
	"io"
	"time"

	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/metrics"
)

type options struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a service.
type Option func(*options)

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics enables metrics. Services without metrics record nothing.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock overrides the current time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: logger.NewWithFormat(io.Discard, 0, "text"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) observe(operation string, start time.Time) {
	if o.metrics != nil {
		o.metrics.ObserveOperation(operation, start)
	}
}
