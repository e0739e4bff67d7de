package chamfer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	query := []float32{
		1, 0,
		0, 1,
	}
	doc := []float32{
		2, 0,
		0, 3,
		1, 1,
	}

	got, err := Similarity(query, doc, 2)
	require.NoError(t, err)
	// q0 best = 2 (doc0), q1 best = 3 (doc1).
	assert.Equal(t, float32(5), got)
}

func TestSimilarityIsAsymmetric(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0, -5, 0}

	ab, err := Similarity(a, b, 2)
	require.NoError(t, err)
	ba, err := Similarity(b, a, 2)
	require.NoError(t, err)

	assert.Equal(t, float32(1), ab)
	assert.Equal(t, float32(-4), ba)
}

func TestSimilarityEmpty(t *testing.T) {
	got, err := Similarity(nil, []float32{1, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(0), got)

	got, err = Similarity([]float32{1, 2}, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(0), got)
}

func TestSimilarityErrors(t *testing.T) {
	_, err := Similarity([]float32{1}, []float32{1, 2}, 0)
	assert.Error(t, err)

	_, err = Similarity([]float32{1, 2, 3}, []float32{1, 2}, 2)
	assert.Error(t, err)

	_, err = Similarity([]float32{1, 2}, []float32{1, 2, 3}, 2)
	assert.Error(t, err)
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	r, err := Correlation(x, []float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1, r, 1e-12)

	r, err = Correlation(x, []float64{5, 4, 3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1, r, 1e-12)

	_, err = Correlation(x, x[:3])
	assert.Error(t, err)

	_, err = Correlation([]float64{1}, []float64{1})
	assert.Error(t, err)

	assert.False(t, math.IsNaN(r))
}
