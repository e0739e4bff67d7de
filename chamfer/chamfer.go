// Package chamfer computes exact Chamfer similarity between point clouds.
//
// Chamfer similarity is the quantity that Fixed Dimensional Encodings
// approximate. It is quadratic in the number of points, which is what the
// encodings avoid, but it is the reference for evaluating them.
package chamfer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/fde/distance"
)

// Similarity returns the Chamfer similarity of two flat point clouds:
// the sum over query points of the largest dot product with any document
// point. An empty query scores 0; an empty document scores 0 as well.
func Similarity(query, doc []float32, dim int) (float32, error) {
	if dim <= 0 {
		return 0, fmt.Errorf("chamfer: invalid dimension %d", dim)
	}
	if len(query)%dim != 0 {
		return 0, fmt.Errorf("chamfer: query length %d is not a multiple of dimension %d", len(query), dim)
	}
	if len(doc)%dim != 0 {
		return 0, fmt.Errorf("chamfer: document length %d is not a multiple of dimension %d", len(doc), dim)
	}
	if len(doc) == 0 {
		return 0, nil
	}

	var total float32
	for q := 0; q+dim <= len(query); q += dim {
		qv := query[q : q+dim]
		best := float32(math.Inf(-1))
		for d := 0; d+dim <= len(doc); d += dim {
			if s := distance.Dot(qv, doc[d:d+dim]); s > best {
				best = s
			}
		}
		total += best
	}
	return total, nil
}

// Correlation returns the Pearson correlation of two equally long series,
// e.g. FDE scores against exact Chamfer scores.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("chamfer: series lengths differ: %d != %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("chamfer: need at least two samples, got %d", len(x))
	}
	return stat.Correlation(x, y, nil), nil
}
