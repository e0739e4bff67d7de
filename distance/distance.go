package distance

import (
	"errors"
	"slices"

	"github.com/hupe1980/fde/internal/math32"
)

// ErrLengthMismatch is returned when two vectors of different length are compared.
var ErrLengthMismatch = errors.New("vector lengths do not match")

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return math32.Dot(a, b)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	return math32.SquaredL2(a, b)
}

// Magnitude calculates the L2 norm of v.
func Magnitude(v []float32) float32 {
	return math32.Sqrt(math32.Dot(v, v))
}

// Cosine calculates the cosine similarity between two vectors.
// Returns 0 if either vector has zero norm.
func Cosine(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}

	magnitudeA := Magnitude(a)
	magnitudeB := Magnitude(b)
	if magnitudeA == 0 || magnitudeB == 0 {
		return 0, nil
	}

	return math32.Dot(a, b) / (magnitudeA * magnitudeB), nil
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := math32.Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / math32.Sqrt(norm2)
	math32.ScaleInPlace(v, inv)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}
