// Package sketch implements the random projections applied by the encoder:
// the dense AMS projection of individual points and the sparse Count-Sketch
// compaction of the final encoding.
package sketch

import (
	"encoding/binary"
	"fmt"

	"github.com/spaolacci/murmur3"

	"github.com/hupe1980/fde/internal/math32"
)

// AMS is a dense random projection from cols to rows dimensions.
// It is immutable and safe for concurrent use.
type AMS struct {
	matrix []float32
	rows   int
	cols   int
}

// NewAMS wraps a rows x cols row-major matrix.
func NewAMS(matrix []float32, rows, cols int) (*AMS, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("sketch: invalid AMS shape %dx%d", rows, cols)
	}
	if len(matrix) != rows*cols {
		return nil, fmt.Errorf("sketch: expected %d matrix values, got %d", rows*cols, len(matrix))
	}
	return &AMS{matrix: matrix, rows: rows, cols: cols}, nil
}

// Rows returns the output dimension.
func (a *AMS) Rows() int { return a.rows }

// Cols returns the input dimension.
func (a *AMS) Cols() int { return a.cols }

// Project writes matrix·v into dst.
// len(v) must equal Cols and len(dst) must equal Rows.
func (a *AMS) Project(dst, v []float32) {
	for r := range dst[:a.rows] {
		dst[r] = math32.Dot(a.matrix[r*a.cols:(r+1)*a.cols], v)
	}
}

// CountSketch adds the Count-Sketch of src into dst.
//
// Input coordinate i lands in output coordinate (h>>1) mod len(dst) with sign
// +1 if h is odd and -1 otherwise, where h = murmur3_64(LE32(i), seed).
// Coordinates that collide are summed.
func CountSketch(dst, src []float32, seed int32) {
	if len(dst) == 0 {
		return
	}
	n := uint64(len(dst))
	var key [4]byte
	for i, x := range src {
		binary.LittleEndian.PutUint32(key[:], uint32(i))
		h := murmur3.Sum64WithSeed(key[:], uint32(seed))
		j := (h >> 1) % n
		if h&1 == 1 {
			dst[j] += x
		} else {
			dst[j] -= x
		}
	}
}

// ApplyCountSketch returns the Count-Sketch of src with the given output
// dimension.
func ApplyCountSketch(src []float32, dim int, seed int32) []float32 {
	dst := make([]float32, dim)
	CountSketch(dst, src, seed)
	return dst
}
