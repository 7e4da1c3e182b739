package sparsesolve

import "gonum.org/v1/gonum/floats"

// The krylov and precond subpackages work with plain []float64 vectors
// rather than a dense vector type; these helpers just give that
// dense-vector arithmetic a name, forwarding to gonum/floats, the same
// library the teacher's own dense paths (vector conversions, norms in
// tests) were built on.

// Dot returns the Euclidean inner product of x and y.
func Dot(x, y []float64) float64 { return floats.Dot(x, y) }

// Norm returns the Euclidean (L2) norm of x.
func Norm(x []float64) float64 { return floats.Norm(x, 2) }

// AXPY computes y[i] += alpha*x[i] for every i.
func AXPY(dst []float64, alpha float64, x []float64) {
	floats.AddScaled(dst, alpha, x)
}

// Scale computes dst[i] = alpha*x[i] for every i.
func Scale(dst []float64, alpha float64, x []float64) {
	copy(dst, x)
	floats.Scale(alpha, dst)
}
