package fde

import "runtime"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	parallelism      int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		parallelism:      runtime.GOMAXPROCS(0),
	}
}

// Option configures an Encoder.
type Option func(*options)

// WithLogger sets the logger used for encode events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified after every encoding.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithParallelism bounds the number of goroutines used per call.
//
// Repetitions of one encoding, and clouds of one batch, are processed by at
// most n workers. The output is bit-identical for every n because each unit
// of work writes its own fixed region of the result.
//
// If n <= 0, runtime.GOMAXPROCS(0) is used. n == 1 runs inline without
// spawning goroutines.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}
