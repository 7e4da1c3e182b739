package sparsesolve

// DiagC is the complex128 counterpart of Diag.
type DiagC struct {
	data []complex128
}

// NewDiagC wraps diagonal as the entries of a DiagC.
func NewDiagC(diagonal []complex128) *DiagC {
	return &DiagC{data: diagonal}
}

// Len returns the dimension of the (square) diagonal matrix.
func (d *DiagC) Len() int { return len(d.data) }

// At returns the i'th diagonal entry.
func (d *DiagC) At(i int) complex128 { return d.data[i] }

// ScaleVec computes dst[i] = d.At(i) * x[i] for every i.
func (d *DiagC) ScaleVec(dst, x []complex128) {
	if len(x) != len(d.data) || len(dst) != len(d.data) {
		panic(ErrDimensionMismatch)
	}
	for i, s := range d.data {
		dst[i] = s * x[i]
	}
}
