package sparsesolve

// ForwardSolve solves L v = r for a lower-triangular CSR L whose
// diagonal entry is the last stored entry of each row (the layout
// CSR.LowerTriangle produces). It panics if any row lacks a stored
// diagonal or L is not square.
func ForwardSolve(l *CSR, r []float64) []float64 {
	n := l.rows
	if l.cols != n || len(r) != n {
		panic(ErrDimensionMismatch)
	}
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		begin, end := l.rowStart[i], l.rowStart[i+1]
		diagPos := end - 1
		if diagPos < begin || l.colIdx[diagPos] != i {
			panic(ErrMissingDiagonal)
		}
		var sum float64
		for k := begin; k < diagPos; k++ {
			sum += l.vals[k] * v[l.colIdx[k]]
		}
		v[i] = (r[i] - sum) / l.vals[diagPos]
	}
	return v
}

// BackwardSolve solves U v = r for an upper-triangular CSR U whose
// diagonal entry is the first stored entry of each row (the layout
// CSR.LowerTriangle.Transpose produces). It panics if any row lacks a
// stored diagonal or U is not square.
func BackwardSolve(u *CSR, r []float64) []float64 {
	n := u.rows
	if u.cols != n || len(r) != n {
		panic(ErrDimensionMismatch)
	}
	v := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		begin, end := u.rowStart[i], u.rowStart[i+1]
		diagPos := begin
		if diagPos >= end || u.colIdx[diagPos] != i {
			panic(ErrMissingDiagonal)
		}
		var sum float64
		for k := diagPos + 1; k < end; k++ {
			sum += u.vals[k] * v[u.colIdx[k]]
		}
		v[i] = (r[i] - sum) / u.vals[diagPos]
	}
	return v
}

// ICApply computes v = M^-1 r for M = L D^-1 L^T, the combined
// forward/back sweep used by IC-preconditioned solves: a forward solve
// against L followed by a backward sweep against lt (L's transpose)
// that scales by d instead of dividing by lt's diagonal.
func ICApply(l, lt *CSR, d *Diag, r []float64) []float64 {
	w := ForwardSolve(l, r)
	n := l.rows
	if d.Len() != n {
		panic(ErrDimensionMismatch)
	}
	v := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		begin, end := lt.rowStart[i], lt.rowStart[i+1]
		diagPos := begin
		var sum float64
		for k := diagPos + 1; k < end; k++ {
			sum += lt.vals[k] * v[lt.colIdx[k]]
		}
		v[i] = d.At(i) * (w[i] - sum)
	}
	return v
}
