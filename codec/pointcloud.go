package codec

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/fde"
)

// DecodePointCloud decodes one point cloud of dim-dimensional points.
// Nested points must all have dim values; a flat array is returned as is
// and left to the encoder to validate.
func DecodePointCloud(c Codec, data []byte, dim int) ([]float32, error) {
	data = bytes.TrimSpace(data)

	if !isFlat(data) {
		var points [][]float32
		if err := c.Unmarshal(data, &points); err == nil {
			return Flatten(points, dim)
		}
	}

	var flat []float32
	if err := c.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("point cloud must be a JSON array of points or numbers: %w", err)
	}
	return flat, nil
}

// DecodePointClouds decodes a list of point clouds. Either every cloud is a
// list of points or every cloud is flat.
func DecodePointClouds(c Codec, data []byte, dim int) ([][]float32, error) {
	var nested [][][]float32
	if err := c.Unmarshal(data, &nested); err == nil {
		out := make([][]float32, len(nested))
		for i, points := range nested {
			flat, err := Flatten(points, dim)
			if err != nil {
				return nil, fmt.Errorf("point cloud %d: %w", i, err)
			}
			out[i] = flat
		}
		return out, nil
	}

	var flat [][]float32
	if err := c.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("input must be a JSON array of point clouds: %w", err)
	}
	return flat, nil
}

// Flatten concatenates points into the row-major layout the encoder
// expects. Every point must have exactly dim values.
func Flatten(points [][]float32, dim int) ([]float32, error) {
	out := make([]float32, 0, len(points)*max(dim, 0))
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("%w: point %d has %d values, want %d", fde.ErrInvalidInput, i, len(p), dim)
		}
		out = append(out, p...)
	}
	return out, nil
}

// isFlat reports whether a JSON array holds numbers rather than arrays.
// An empty array counts as flat.
func isFlat(data []byte) bool {
	inner := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("[")))
	return len(inner) == 0 || inner[0] != '['
}
