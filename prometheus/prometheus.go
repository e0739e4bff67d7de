// Package prometheus exports encoder metrics to Prometheus.
//
//	mc, err := prometheus.NewCollector(prom.DefaultRegisterer)
//	enc, err := fde.New(cfg, fde.WithMetricsCollector(mc))
package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/fde"
)

const defaultNamespace = "fde"

var encodeDurationBuckets = prom.ExponentialBuckets(0.00005, 2, 18) // ~50µs to 6.5s

// Collector implements fde.MetricsCollector on Prometheus counters and
// histograms.
type Collector struct {
	encodes        *prom.CounterVec
	encodeDuration *prom.HistogramVec
	points         *prom.CounterVec
	batches        *prom.CounterVec
	batchClouds    *prom.CounterVec
	batchDuration  *prom.HistogramVec
}

var _ fde.MetricsCollector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace   string
	constLabels prom.Labels
}

// WithNamespace overrides the metric namespace ("fde").
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithConstLabels attaches constant labels to every metric, e.g. the name
// of the encoding space.
func WithConstLabels(labels prom.Labels) Option {
	return func(o *options) { o.constLabels = labels }
}

// NewCollector creates a Collector and registers its metrics with reg.
// Metrics that are already registered with the same descriptor are reused.
func NewCollector(reg prom.Registerer, optFns ...Option) (*Collector, error) {
	opts := options{namespace: defaultNamespace}
	for _, fn := range optFns {
		fn(&opts)
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{}
	var err error

	if c.encodes, err = register(reg, prom.NewCounterVec(prom.CounterOpts{
		Namespace:   opts.namespace,
		Name:        "encodes_total",
		Help:        "Number of point cloud encodings",
		ConstLabels: opts.constLabels,
	}, []string{"kind", "status"})); err != nil {
		return nil, err
	}
	if c.encodeDuration, err = register(reg, prom.NewHistogramVec(prom.HistogramOpts{
		Namespace:   opts.namespace,
		Name:        "encode_duration_seconds",
		Help:        "Latency of single point cloud encodings",
		ConstLabels: opts.constLabels,
		Buckets:     encodeDurationBuckets,
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if c.points, err = register(reg, prom.NewCounterVec(prom.CounterOpts{
		Namespace:   opts.namespace,
		Name:        "points_encoded_total",
		Help:        "Number of points in successfully encoded point clouds",
		ConstLabels: opts.constLabels,
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if c.batches, err = register(reg, prom.NewCounterVec(prom.CounterOpts{
		Namespace:   opts.namespace,
		Name:        "batches_total",
		Help:        "Number of batch encodings",
		ConstLabels: opts.constLabels,
	}, []string{"kind", "status"})); err != nil {
		return nil, err
	}
	if c.batchClouds, err = register(reg, prom.NewCounterVec(prom.CounterOpts{
		Namespace:   opts.namespace,
		Name:        "batch_clouds_total",
		Help:        "Number of point clouds submitted in batches",
		ConstLabels: opts.constLabels,
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if c.batchDuration, err = register(reg, prom.NewHistogramVec(prom.HistogramOpts{
		Namespace:   opts.namespace,
		Name:        "batch_duration_seconds",
		Help:        "Latency of batch encodings",
		ConstLabels: opts.constLabels,
		Buckets:     prom.ExponentialBuckets(0.001, 2, 18),
	}, []string{"kind"})); err != nil {
		return nil, err
	}

	return c, nil
}

func register[C prom.Collector](reg prom.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prom.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("metric already registered with a different type: %w", err)
		}
		var zero C
		return zero, err
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordEncode implements fde.MetricsCollector.
func (c *Collector) RecordEncode(kind fde.EncodingType, points int, duration time.Duration, err error) {
	k := kind.String()
	c.encodes.WithLabelValues(k, status(err)).Inc()
	c.encodeDuration.WithLabelValues(k).Observe(duration.Seconds())
	if err == nil {
		c.points.WithLabelValues(k).Add(float64(points))
	}
}

// RecordBatch implements fde.MetricsCollector.
func (c *Collector) RecordBatch(kind fde.EncodingType, clouds int, duration time.Duration, err error) {
	k := kind.String()
	c.batches.WithLabelValues(k, status(err)).Inc()
	c.batchClouds.WithLabelValues(k).Add(float64(clouds))
	c.batchDuration.WithLabelValues(k).Observe(duration.Seconds())
}
