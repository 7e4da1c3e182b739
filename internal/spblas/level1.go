package spblas

// Dusdot computes the dot product of the sparse vector (indx, x) with
// the dense vector y: r = sum_i x[i]*y[indx[i]].
func Dusdot(x []float64, indx []int, y []float64) float64 {
	var dot float64
	for i, idx := range indx {
		dot += x[i] * y[idx]
	}
	return dot
}

// Dusaxpy scales the sparse vector (indx, x) by alpha and accumulates
// it into the dense vector y: y[indx[i]] += alpha*x[i].
func Dusaxpy(alpha float64, x []float64, indx []int, y []float64) {
	if alpha == 0 {
		return
	}
	for i, idx := range indx {
		y[idx] += alpha * x[i]
	}
}
