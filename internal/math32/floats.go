// Package math32 provides the float32 vector kernels used by the encoder.
// This is an internal package - external users should use the distance package.
//
// Reductions (Dot) run in index order on every platform so that SimHash sign
// bits are reproducible across machines. Add and Scale are delegated to
// vek32, whose SIMD lanes round exactly like scalar code. Division stays
// scalar: vek multiplies by the reciprocal on AVX2.
package math32

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var ret float32
	for i := range a {
		// The conversion forbids fused multiply-add (arm64, ppc64, s390x).
		ret += float32(a[i] * b[i])
	}

	return ret
}

// SquaredL2 calculates the squared L2 distance.
func SquaredL2(a, b []float32) float32 {
	var distance float32
	for i := range a {
		d := a[i] - b[i]
		distance += float32(d * d)
	}

	return distance
}

// Sqrt returns the float32 square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// AddInPlace adds src to dst element-wise.
// Both slices must have the same length.
func AddInPlace(dst, src []float32) {
	vek32.Add_Inplace(dst, src)
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace(a []float32, scalar float32) {
	vek32.MulNumber_Inplace(a, scalar)
}

// DivInPlace divides all elements of a by divisor with a true division, so
// partition averages equal sum/count bit for bit.
func DivInPlace(a []float32, divisor float32) {
	for i := range a {
		a[i] /= divisor
	}
}
