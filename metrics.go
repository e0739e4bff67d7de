package fde

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prometheus subpackage provides a ready-made implementation.
//
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordEncode is called after each single point cloud encoding.
	// kind is the aggregation that was performed, points the number of
	// points in the cloud, err is nil if successful.
	RecordEncode(kind EncodingType, points int, duration time.Duration, err error)

	// RecordBatch is called after each batch encoding.
	// clouds is the number of point clouds in the batch.
	RecordBatch(kind EncodingType, clouds int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(EncodingType, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(EncodingType, int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryEncodes     atomic.Int64
	DocumentEncodes  atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	PointsEncoded    atomic.Int64
	BatchCount       atomic.Int64
	BatchClouds      atomic.Int64
	BatchErrors      atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(kind EncodingType, points int, duration time.Duration, err error) {
	if kind == EncodingAverage {
		b.DocumentEncodes.Add(1)
	} else {
		b.QueryEncodes.Add(1)
	}
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
		return
	}
	b.PointsEncoded.Add(int64(points))
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(kind EncodingType, clouds int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchClouds.Add(int64(clouds))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QueryEncodes:    b.QueryEncodes.Load(),
		DocumentEncodes: b.DocumentEncodes.Load(),
		EncodeErrors:    b.EncodeErrors.Load(),
		EncodeAvgNanos:  b.getAvgEncodeNanos(),
		PointsEncoded:   b.PointsEncoded.Load(),
		BatchCount:      b.BatchCount.Load(),
		BatchClouds:     b.BatchClouds.Load(),
		BatchErrors:     b.BatchErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEncodeNanos() int64 {
	count := b.QueryEncodes.Load() + b.DocumentEncodes.Load()
	if count == 0 {
		return 0
	}
	return b.EncodeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryEncodes    int64
	DocumentEncodes int64
	EncodeErrors    int64
	EncodeAvgNanos  int64
	PointsEncoded   int64
	BatchCount      int64
	BatchClouds     int64
	BatchErrors     int64
}
