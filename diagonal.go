package sparsesolve

// Diag holds the entries of a diagonal matrix: the scaling matrix
// produced by CSR.DiagScaling, or the reciprocal-pivot vector D of an
// incomplete Cholesky factor. It is a thin wrapper around a slice of
// diagonal values rather than a full mat.Matrix implementation (unlike
// the teacher's DIA type); its consumers are CSR.ScaleSym, ICApply and
// the SGS-MRTR driver's mapping of the scaled solution back to x.
type Diag struct {
	data []float64
}

// NewDiag wraps diagonal as the entries of a Diag. The slice is used
// as-is; mutating it afterwards mutates the Diag.
func NewDiag(diagonal []float64) *Diag {
	return &Diag{data: diagonal}
}

// Len returns the dimension of the (square) diagonal matrix.
func (d *Diag) Len() int { return len(d.data) }

// At returns the i'th diagonal entry.
func (d *Diag) At(i int) float64 { return d.data[i] }

// ScaleVec computes dst[i] = d.At(i) * x[i] for every i.
func (d *Diag) ScaleVec(dst, x []float64) {
	if len(x) != len(d.data) || len(dst) != len(d.data) {
		panic(ErrDimensionMismatch)
	}
	for i, s := range d.data {
		dst[i] = s * x[i]
	}
}
