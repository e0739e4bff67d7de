// Package random derives the pseudo-random hyperplanes and projection
// matrices used by the encoder.
//
// Numbers are not drawn from a stateful generator. Every entry is a pure
// function of (seed, repetition, purpose, row, col):
//
//	key  = LE32(seed) | LE32(repetition) | LE32(purpose) | LE32(row) | LE32(col)
//	word = xxhash64(key)
//
// so a query encoder and a document encoder built from the same seed see the
// same random space, independent of process or generation order.
//
// Gaussian draws go through math.Log, math.Sqrt and math.Cos in float64.
// Log and Cos may differ by one ulp between architectures (assembly on
// amd64, pure Go elsewhere). After rounding to float32 the results agree
// except in rare rounding-boundary cases, so hyperplanes are reproducible
// across architectures in practice but not guaranteed bit for bit.
package random

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Purpose separates the independent streams drawn for one repetition.
type Purpose uint32

const (
	// PurposeSimHash draws the Gaussian SimHash hyperplanes.
	PurposeSimHash Purpose = 1
	// PurposeAMS draws the dense ±1 AMS projection matrix.
	PurposeAMS Purpose = 2
)

const keySize = 20

// Source is a stateless stream for one (seed, repetition, purpose) triple.
// The zero value is not useful; use NewSource.
type Source struct {
	key [keySize]byte
}

// NewSource returns the stream for the given seed, repetition and purpose.
func NewSource(seed int32, repetition int, purpose Purpose) Source {
	var s Source
	binary.LittleEndian.PutUint32(s.key[0:], uint32(seed))
	binary.LittleEndian.PutUint32(s.key[4:], uint32(repetition))
	binary.LittleEndian.PutUint32(s.key[8:], uint32(purpose))
	return s
}

// Uint64 returns the raw 64-bit word at (row, col).
func (s Source) Uint64(row, col int) uint64 {
	key := s.key
	binary.LittleEndian.PutUint32(key[12:], uint32(row))
	binary.LittleEndian.PutUint32(key[16:], uint32(col))
	return xxhash.Sum64(key[:])
}

// Gaussian returns a standard normal sample at (row, col) using the
// Box-Muller transform over the two 32-bit halves of the word.
func (s Source) Gaussian(row, col int) float32 {
	w := s.Uint64(row, col)
	u1 := (float64(w>>32) + 0.5) / (1 << 32) // (0, 1), never 0
	u2 := float64(uint32(w)) / (1 << 32)     // [0, 1)
	return float32(math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2))
}

// Sign returns +1 or -1 at (row, col), taken from the lowest bit of the word.
func (s Source) Sign(row, col int) float32 {
	if s.Uint64(row, col)&1 == 1 {
		return 1
	}
	return -1
}

// Hyperplanes returns count Gaussian hyperplanes of length dim for the given
// repetition, flattened row-major (hyperplane j occupies [j*dim, (j+1)*dim)).
func Hyperplanes(seed int32, repetition, count, dim int) []float32 {
	src := NewSource(seed, repetition, PurposeSimHash)
	planes := make([]float32, count*dim)
	for j := 0; j < count; j++ {
		row := planes[j*dim : (j+1)*dim]
		for i := range row {
			row[i] = src.Gaussian(j, i)
		}
	}
	return planes
}

// AMSMatrix returns the rows x cols dense projection matrix for the given
// repetition, flattened row-major. Entries are ±1/sqrt(rows), so the
// projection preserves inner products in expectation.
func AMSMatrix(seed int32, repetition, rows, cols int) []float32 {
	src := NewSource(seed, repetition, PurposeAMS)
	scale := float32(1 / math.Sqrt(float64(rows)))
	matrix := make([]float32, rows*cols)
	for r := 0; r < rows; r++ {
		row := matrix[r*cols : (r+1)*cols]
		for c := range row {
			row[c] = src.Sign(r, c) * scale
		}
	}
	return matrix
}
