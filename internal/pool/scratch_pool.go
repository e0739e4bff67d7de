// Package pool provides reusable per-repetition buffers for the encoder.
// Uses sync.Pool so that concurrent encodings do not allocate on every
// repetition.
package pool

import "sync"

const (
	// maxRetainedFloats bounds the projection buffer kept in the pool.
	maxRetainedFloats = 1 << 20

	// maxRetainedPartitions bounds the partition counter kept in the pool.
	maxRetainedPartitions = 1 << 16
)

// Scratch contains the buffers needed to encode one repetition.
// A Scratch must not be shared between goroutines.
type Scratch struct {
	// Projected holds projected points with stride equal to the active
	// dimension.
	Projected []float32
	// Counts holds the number of points per partition.
	Counts []int
	// Patterns holds the sign pattern of every point.
	Patterns []uint32
}

var scratchPool = sync.Pool{
	New: func() any {
		return &Scratch{}
	},
}

// Get returns a Scratch whose buffers have the requested lengths.
// Counts is zeroed; the other buffers hold arbitrary values.
func Get(projected, partitions, points int) *Scratch {
	s := scratchPool.Get().(*Scratch)
	s.Projected = grow(s.Projected, projected)
	s.Patterns = grow(s.Patterns, points)
	s.Counts = grow(s.Counts, partitions)
	clear(s.Counts)
	return s
}

// Put returns s to the pool. Oversized buffers are dropped.
func Put(s *Scratch) {
	if cap(s.Projected) > maxRetainedFloats {
		s.Projected = nil
	}
	if cap(s.Counts) > maxRetainedPartitions {
		s.Counts = nil
	}
	if cap(s.Patterns) > maxRetainedFloats {
		s.Patterns = nil
	}
	scratchPool.Put(s)
}

func grow[T any](buf []T, n int) []T {
	if cap(buf) < n {
		return make([]T, n)
	}
	return buf[:n]
}
