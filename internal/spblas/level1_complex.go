package spblas

// Zusdot computes the unconjugated (bilinear, not Hermitian) dot
// product of the sparse vector (indx, x) with the dense vector y.
// The complex MRTR recurrence depends on this convention: callers
// must not substitute a conjugating dot product here.
func Zusdot(x []complex128, indx []int, y []complex128) complex128 {
	var dot complex128
	for i, idx := range indx {
		dot += x[i] * y[idx]
	}
	return dot
}

// Zusaxpy scales the sparse vector (indx, x) by alpha and accumulates
// it into the dense vector y.
func Zusaxpy(alpha complex128, x []complex128, indx []int, y []complex128) {
	if alpha == 0 {
		return
	}
	for i, idx := range indx {
		y[idx] += alpha * x[i]
	}
}
