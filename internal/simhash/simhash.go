// Package simhash partitions vectors by the sign pattern of their
// projections onto random hyperplanes.
//
// With k hyperplanes a vector gets a k-bit pattern (hyperplane 0 in the most
// significant bit, 1 when the dot product is strictly positive). Partition
// indices are the Gray-decoded patterns, so neighbouring indices differ in
// exactly one sign bit.
package simhash

import (
	"fmt"
	"math/bits"

	"github.com/hupe1980/fde/internal/math32"
)

// MaxProjections is the largest supported number of hyperplanes.
const MaxProjections = 30

// GrayEncode maps a binary value to its reflected Gray code.
func GrayEncode(b uint32) uint32 {
	return b ^ (b >> 1)
}

// GrayDecode is the inverse of GrayEncode.
func GrayDecode(g uint32) uint32 {
	b := g
	b ^= b >> 1
	b ^= b >> 2
	b ^= b >> 4
	b ^= b >> 8
	b ^= b >> 16
	return b
}

// PatternDistance returns the Hamming distance between a sign pattern and
// the pattern owned by partition index.
func PatternDistance(pattern, index uint32) int {
	return bits.OnesCount32(pattern ^ GrayEncode(index))
}

// Partitioner assigns vectors to one of 2^k partitions.
// It is immutable and safe for concurrent use.
type Partitioner struct {
	planes []float32
	k      int
	dim    int
}

// New creates a Partitioner from k hyperplanes of length dim, flattened
// row-major.
func New(planes []float32, k, dim int) (*Partitioner, error) {
	if k < 0 || k > MaxProjections {
		return nil, fmt.Errorf("simhash: projections %d out of range [0, %d]", k, MaxProjections)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("simhash: invalid dimension %d", dim)
	}
	if len(planes) != k*dim {
		return nil, fmt.Errorf("simhash: expected %d hyperplane values, got %d", k*dim, len(planes))
	}
	return &Partitioner{planes: planes, k: k, dim: dim}, nil
}

// NumPartitions returns 2^k.
func (p *Partitioner) NumPartitions() int { return 1 << p.k }

// Pattern returns the k-bit sign pattern of v.
func (p *Partitioner) Pattern(v []float32) uint32 {
	var pattern uint32
	for j := 0; j < p.k; j++ {
		pattern <<= 1
		if math32.Dot(p.planes[j*p.dim:(j+1)*p.dim], v) > 0 {
			pattern |= 1
		}
	}
	return pattern
}

// Index returns the partition of v.
func (p *Partitioner) Index(v []float32) uint32 {
	return GrayDecode(p.Pattern(v))
}

// Distance returns the number of sign bits in which v disagrees with
// partition index.
func (p *Partitioner) Distance(v []float32, index uint32) int {
	return PatternDistance(p.Pattern(v), index)
}
