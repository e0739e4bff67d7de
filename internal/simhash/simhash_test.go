package simhash

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 2, 3, 7, 8, 255, 1023, 1<<30 - 1, 0xdeadbeef, ^uint32(0)} {
		assert.Equal(t, v, GrayDecode(GrayEncode(v)), "value %d", v)
		assert.Equal(t, v, GrayEncode(GrayDecode(v)), "value %d", v)
	}
}

func TestGrayAdjacency(t *testing.T) {
	for i := uint32(0); i < 1<<12; i++ {
		diff := GrayEncode(i) ^ GrayEncode(i+1)
		require.Equal(t, 1, bits.OnesCount32(diff), "indices %d and %d", i, i+1)
	}
}

func TestGrayKnownValues(t *testing.T) {
	// Reflected Gray sequence for three bits.
	want := []uint32{0b000, 0b001, 0b011, 0b010, 0b110, 0b111, 0b101, 0b100}
	for i, g := range want {
		assert.Equal(t, g, GrayEncode(uint32(i)))
		assert.Equal(t, uint32(i), GrayDecode(g))
	}
}

// axisPartitioner uses the standard basis as hyperplanes, so the sign pattern
// of v is read directly off its first k coordinates.
func axisPartitioner(t *testing.T, k, dim int) *Partitioner {
	t.Helper()
	planes := make([]float32, k*dim)
	for j := 0; j < k; j++ {
		planes[j*dim+j] = 1
	}
	p, err := New(planes, k, dim)
	require.NoError(t, err)
	return p
}

func TestPattern(t *testing.T) {
	p := axisPartitioner(t, 3, 4)

	tests := []struct {
		name string
		v    []float32
		want uint32
	}{
		{"AllPositive", []float32{1, 2, 3, -9}, 0b111},
		{"AllNegative", []float32{-1, -2, -3, 9}, 0b000},
		{"FirstIsMostSignificant", []float32{1, -1, -1, 0}, 0b100},
		{"LastIsLeastSignificant", []float32{-1, -1, 1, 0}, 0b001},
		{"ZeroCountsAsNegative", []float32{0, 0, 0, 0}, 0b000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Pattern(tt.v))
			assert.Equal(t, GrayDecode(tt.want), p.Index(tt.v))
		})
	}
}

func TestIndexRange(t *testing.T) {
	p := axisPartitioner(t, 4, 4)
	assert.Equal(t, 16, p.NumPartitions())

	for mask := 0; mask < 16; mask++ {
		v := make([]float32, 4)
		for j := 0; j < 4; j++ {
			if mask&(1<<j) != 0 {
				v[j] = 1
			} else {
				v[j] = -1
			}
		}
		assert.Less(t, p.Index(v), uint32(16))
	}
}

func TestZeroProjections(t *testing.T) {
	p, err := New(nil, 0, 8)
	require.NoError(t, err)

	v := []float32{1, -2, 3, -4, 5, -6, 7, -8}
	assert.Equal(t, 1, p.NumPartitions())
	assert.Equal(t, uint32(0), p.Index(v))
	assert.Equal(t, 0, p.Distance(v, 0))
}

func TestDistance(t *testing.T) {
	p := axisPartitioner(t, 3, 3)
	v := []float32{1, -1, 1} // pattern 101

	// A vector is at distance zero from its own partition.
	assert.Equal(t, 0, p.Distance(v, p.Index(v)))

	for idx := uint32(0); idx < 8; idx++ {
		want := bits.OnesCount32(0b101 ^ GrayEncode(idx))
		assert.Equal(t, want, p.Distance(v, idx), "partition %d", idx)
	}

	// Neighbouring partitions of the own index are exactly one bit away
	// whenever the own pattern differs in a single bit from theirs.
	own := p.Index(v)
	if own > 0 {
		assert.Equal(t, 1, p.Distance(v, own-1))
	}
	if own < 7 {
		assert.Equal(t, 1, p.Distance(v, own+1))
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(make([]float32, 4), 31, 1)
	assert.Error(t, err)

	_, err = New(make([]float32, 3), 2, 2)
	assert.Error(t, err)

	_, err = New(nil, 0, 0)
	assert.Error(t, err)
}
