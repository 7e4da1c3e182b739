package sparsesolve

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// DotU returns the unconjugated bilinear inner product sum(x[i]*y[i]),
// the convention the complex MRTR three-term recurrence requires. The
// sum is formed directly, with neither argument conjugated; see
// internal/spblas.Zusdot for the same convention at the sparse-vector
// level.
func DotU(x, y []complex128) complex128 {
	if len(x) != len(y) {
		panic(ErrDimensionMismatch)
	}
	var sum complex128
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum
}

// NormC returns the Euclidean (L2) norm of x, using the Hermitian
// modulus |x[i]|^2, not the unconjugated square.
func NormC(x []complex128) float64 {
	var sum float64
	for _, v := range x {
		sum += cmplx.Abs(v) * cmplx.Abs(v)
	}
	return math.Sqrt(sum)
}

// AXPYC computes y[i] += alpha*x[i] for every i.
func AXPYC(dst []complex128, alpha complex128, x []complex128) {
	cmplxs.AddScaled(dst, alpha, x)
}

// ScaleC computes dst[i] = alpha*x[i] for every i.
func ScaleC(dst []complex128, alpha complex128, x []complex128) {
	copy(dst, x)
	cmplxs.Scale(alpha, dst)
}
