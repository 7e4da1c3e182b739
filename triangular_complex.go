package sparsesolve

// ForwardSolveC is the complex128 counterpart of ForwardSolve.
func ForwardSolveC(l *CSRC, r []complex128) []complex128 {
	n := l.rows
	if l.cols != n || len(r) != n {
		panic(ErrDimensionMismatch)
	}
	v := make([]complex128, n)
	for i := 0; i < n; i++ {
		begin, end := l.rowStart[i], l.rowStart[i+1]
		diagPos := end - 1
		if diagPos < begin || l.colIdx[diagPos] != i {
			panic(ErrMissingDiagonal)
		}
		var sum complex128
		for k := begin; k < diagPos; k++ {
			sum += l.vals[k] * v[l.colIdx[k]]
		}
		v[i] = (r[i] - sum) / l.vals[diagPos]
	}
	return v
}

// BackwardSolveC is the complex128 counterpart of BackwardSolve.
func BackwardSolveC(u *CSRC, r []complex128) []complex128 {
	n := u.rows
	if u.cols != n || len(r) != n {
		panic(ErrDimensionMismatch)
	}
	v := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		begin, end := u.rowStart[i], u.rowStart[i+1]
		diagPos := begin
		if diagPos >= end || u.colIdx[diagPos] != i {
			panic(ErrMissingDiagonal)
		}
		var sum complex128
		for k := diagPos + 1; k < end; k++ {
			sum += u.vals[k] * v[u.colIdx[k]]
		}
		v[i] = (r[i] - sum) / u.vals[diagPos]
	}
	return v
}

// ICApplyC is the complex128 counterpart of ICApply.
func ICApplyC(l, lt *CSRC, d *DiagC, r []complex128) []complex128 {
	w := ForwardSolveC(l, r)
	n := l.rows
	if d.Len() != n {
		panic(ErrDimensionMismatch)
	}
	v := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		begin, end := lt.rowStart[i], lt.rowStart[i+1]
		diagPos := begin
		var sum complex128
		for k := diagPos + 1; k < end; k++ {
			sum += lt.vals[k] * v[lt.colIdx[k]]
		}
		v[i] = d.At(i) * (w[i] - sum)
	}
	return v
}
