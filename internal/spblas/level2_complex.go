package spblas

// Zusmv computes y <- alpha*A*x + y (transA == false) or
// y <- alpha*A^T*x + y (transA == true) for a complex128 CSR matrix.
// No concurrent variant is provided: the complex MRTR solver is used
// on matrices small enough that the sequential kernel dominates setup
// cost, not SpMV cost.
func Zusmv(transA bool, alpha complex128, rowStart, colIdx []int, vals []complex128, rowCount int, x, y []complex128) {
	if alpha == 0 {
		return
	}
	if transA {
		for i := 0; i < rowCount; i++ {
			begin, end := rowStart[i], rowStart[i+1]
			Zusaxpy(alpha*x[i], vals[begin:end], colIdx[begin:end], y)
		}
		return
	}
	for i := 0; i < rowCount; i++ {
		begin, end := rowStart[i], rowStart[i+1]
		y[i] += alpha * Zusdot(vals[begin:end], colIdx[begin:end], x)
	}
}
