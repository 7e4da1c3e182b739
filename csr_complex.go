package sparsesolve

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/sparsesolve/sparsesolve/internal/spblas"
	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSRC)(nil)

// CSRC is the complex128 counterpart of CSR: an immutable Compressed
// Sparse Row matrix over complex scalars, used by the complex forms of
// the MRTR solvers. Its At method satisfies mat.Matrix by returning
// the real part only, matching the convention gonum/mat's own Matrix
// interface is restricted to (there is no complex mat.Matrix); callers
// that need the full complex value should use AtC.
type CSRC struct {
	rows, cols int
	rowStart   []int
	colIdx     []int
	vals       []complex128
}

// NewCSRC creates a CSRC matrix of the given shape from already-built
// CSR arrays. The slices are used as-is; callers must not mutate them
// afterwards. NewCSRC panics with ErrDimensionMismatch if the slices
// are not internally consistent.
func NewCSRC(rows, cols int, rowStart, colIdx []int, vals []complex128) *CSRC {
	if len(rowStart) != rows+1 || len(colIdx) != len(vals) {
		panic(fmt.Errorf("%w: NewCSRC(%d, %d, rowStart=%d, colIdx=%d, vals=%d)",
			ErrDimensionMismatch, rows, cols, len(rowStart), len(colIdx), len(vals)))
	}
	return &CSRC{rows: rows, cols: cols, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// Dims returns the number of rows and columns of the matrix.
func (c *CSRC) Dims() (r, cc int) { return c.rows, c.cols }

// NNZ returns the number of explicitly stored (non-zero) elements.
func (c *CSRC) NNZ() int { return len(c.vals) }

// At returns real(A[i,j]). It panics if i or j is out of range.
func (c *CSRC) At(i, j int) float64 { return real(c.AtC(i, j)) }

// AtC returns A[i,j]. It panics if i or j is out of range.
func (c *CSRC) AtC(i, j int) complex128 {
	if uint(i) >= uint(c.rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.cols) {
		panic(mat.ErrColAccess)
	}
	begin, end := c.rowStart[i], c.rowStart[i+1]
	cols := c.colIdx[begin:end]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return c.vals[begin+k]
	}
	return 0
}

// T returns the transpose of the receiver (not the conjugate
// transpose) as a freshly materialised CSRC, matching gonum/mat's
// convention that T is a structural transpose.
func (c *CSRC) T() mat.Matrix { return c.Transpose() }

// RowView returns the column indices and values of row i, borrowed
// directly from the receiver's backing storage. The caller must not
// mutate the returned slices.
func (c *CSRC) RowView(i int) (cols []int, vals []complex128) {
	begin, end := c.rowStart[i], c.rowStart[i+1]
	return c.colIdx[begin:end], c.vals[begin:end]
}

// RowNNZ returns the number of stored entries in row i.
func (c *CSRC) RowNNZ(i int) int {
	return c.rowStart[i+1] - c.rowStart[i]
}

// HasDiagonal reports whether row i has a stored entry at column i.
func (c *CSRC) HasDiagonal(i int) bool {
	cols, _ := c.RowView(i)
	k := sort.SearchInts(cols, i)
	return k < len(cols) && cols[k] == i
}

// Transpose builds a new CSRC holding A^T (not the conjugate
// transpose). Complexity is O(rows + cols + nnz).
func (c *CSRC) Transpose() *CSRC {
	rowStart := make([]int, c.cols+1)
	for _, j := range c.colIdx {
		rowStart[j+1]++
	}
	for i := 0; i < c.cols; i++ {
		rowStart[i+1] += rowStart[i]
	}

	colIdx := make([]int, len(c.colIdx))
	vals := make([]complex128, len(c.vals))
	next := append([]int(nil), rowStart...)
	for i := 0; i < c.rows; i++ {
		begin, end := c.rowStart[i], c.rowStart[i+1]
		for k := begin; k < end; k++ {
			j := c.colIdx[k]
			p := next[j]
			colIdx[p] = i
			vals[p] = c.vals[k]
			next[j]++
		}
	}
	return &CSRC{rows: c.cols, cols: c.rows, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// SpMV computes y = A*x.
func (c *CSRC) SpMV(x []complex128) []complex128 {
	y := make([]complex128, c.rows)
	c.SpMVTo(y, x)
	return y
}

// SpMVTo computes y += A*x in place.
func (c *CSRC) SpMVTo(y, x []complex128) {
	if len(x) != c.cols || len(y) != c.rows {
		panic(ErrDimensionMismatch)
	}
	spblas.Zusmv(false, 1, c.rowStart, c.colIdx, c.vals, c.rows, x, y)
}

// LowerTriangle extracts {(i,j,v) in A : j <= i} into a new square
// CSRC. Complexity is O(nnz).
func (c *CSRC) LowerTriangle() *CSRC {
	rowStart := make([]int, c.rows+1)
	var colIdx []int
	var vals []complex128
	for i := 0; i < c.rows; i++ {
		rowStart[i] = len(colIdx)
		begin, end := c.rowStart[i], c.rowStart[i+1]
		for k := begin; k < end; k++ {
			if c.colIdx[k] > i {
				break
			}
			colIdx = append(colIdx, c.colIdx[k])
			vals = append(vals, c.vals[k])
		}
	}
	rowStart[c.rows] = len(colIdx)
	return &CSRC{rows: c.rows, cols: c.rows, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// DiagScalingC computes the diagonal scaling matrix D with
// D[i,i] = 1/sqrt(|A[i,i]|) (complex modulus) and the scaled
// right-hand side b' = D*b. It returns ErrMissingDiagonal if any row
// of A lacks a stored entry at column i.
func (c *CSRC) DiagScalingC(b []complex128) (d *DiagC, bPrime []complex128, err error) {
	if c.rows != c.cols {
		return nil, nil, ErrDimensionMismatch
	}
	if len(b) != c.rows {
		panic(ErrDimensionMismatch)
	}
	scale := make([]complex128, c.rows)
	bPrime = make([]complex128, c.rows)
	for i := 0; i < c.rows; i++ {
		if !c.HasDiagonal(i) {
			return nil, nil, fmt.Errorf("%w: row %d", ErrMissingDiagonal, i)
		}
		aii := c.AtC(i, i)
		if aii == 0 {
			return nil, nil, fmt.Errorf("%w: row %d has a zero diagonal", ErrMissingDiagonal, i)
		}
		s := complex(1/math.Sqrt(cmplx.Abs(aii)), 0)
		scale[i] = s
		bPrime[i] = s * b[i]
	}
	return NewDiagC(scale), bPrime, nil
}

// ScaleSym returns D*A*D for a diagonal matrix D given by its entries.
func (c *CSRC) ScaleSym(d *DiagC) *CSRC {
	if d.Len() != c.rows || c.rows != c.cols {
		panic(ErrDimensionMismatch)
	}
	vals := make([]complex128, len(c.vals))
	for i := 0; i < c.rows; i++ {
		begin, end := c.rowStart[i], c.rowStart[i+1]
		for k := begin; k < end; k++ {
			j := c.colIdx[k]
			vals[k] = d.data[i] * c.vals[k] * d.data[j]
		}
	}
	return &CSRC{rows: c.rows, cols: c.cols, rowStart: c.rowStart, colIdx: c.colIdx, vals: vals}
}

// Multiply computes C = A*B for two CSRC matrices with matching inner
// dimension, producing a CSRC with columns sorted ascending in each row.
func (c *CSRC) Multiply(b *CSRC) *CSRC {
	if c.cols != b.rows {
		panic(ErrDimensionMismatch)
	}
	rowStart := make([]int, c.rows+1)
	var colIdx []int
	var vals []complex128
	acc := make(map[int]complex128, b.cols)
	for i := 0; i < c.rows; i++ {
		rowStart[i] = len(colIdx)
		begin, end := c.rowStart[i], c.rowStart[i+1]
		for k := begin; k < end; k++ {
			aik := c.vals[k]
			col := c.colIdx[k]
			bBegin, bEnd := b.rowStart[col], b.rowStart[col+1]
			for kb := bBegin; kb < bEnd; kb++ {
				acc[b.colIdx[kb]] += aik * b.vals[kb]
			}
		}
		cols := make([]int, 0, len(acc))
		for j := range acc {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			colIdx = append(colIdx, j)
			vals = append(vals, acc[j])
			delete(acc, j)
		}
	}
	rowStart[c.rows] = len(colIdx)
	return &CSRC{rows: c.rows, cols: b.cols, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// ToCDense materialises the receiver into a plain [][]complex128,
// dense-row-major, for use in tests.
func (c *CSRC) ToCDense() [][]complex128 {
	d := make([][]complex128, c.rows)
	for i := range d {
		d[i] = make([]complex128, c.cols)
		cols, vals := c.RowView(i)
		for k, j := range cols {
			d[i][j] = vals[k]
		}
	}
	return d
}
