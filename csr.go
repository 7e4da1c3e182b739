package sparsesolve

import (
	"fmt"
	"math"
	"sort"

	"github.com/sparsesolve/sparsesolve/internal/spblas"
	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSR)(nil)

// CSR is an immutable Compressed Sparse Row format sparse matrix of
// float64 values. Three aligned slices describe its non-zero pattern:
// RowStart is the row-pointer prefix (RowStart[i] is the index into
// ColIdx/Vals at which row i's entries begin, RowStart[rows] == nnz),
// ColIdx holds strictly ascending column indices within each row, and
// Vals holds the corresponding values. CSR implements gonum's
// mat.Matrix interface so it can be used anywhere a mat.Matrix is
// accepted.
type CSR struct {
	rows, cols int
	rowStart   []int
	colIdx     []int
	vals       []float64
}

// NewCSR creates a CSR matrix of the given shape from already-built CSR
// arrays. The slices are used as-is (no copy); callers must not mutate
// them afterwards. NewCSR panics with ErrDimensionMismatch if the
// slices are not internally consistent.
func NewCSR(rows, cols int, rowStart, colIdx []int, vals []float64) *CSR {
	if len(rowStart) != rows+1 || len(colIdx) != len(vals) {
		panic(fmt.Errorf("%w: NewCSR(%d, %d, rowStart=%d, colIdx=%d, vals=%d)",
			ErrDimensionMismatch, rows, cols, len(rowStart), len(colIdx), len(vals)))
	}
	return &CSR{rows: rows, cols: cols, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// Dims returns the number of rows and columns of the matrix.
func (c *CSR) Dims() (r, cc int) { return c.rows, c.cols }

// NNZ returns the number of explicitly stored (non-zero) elements.
func (c *CSR) NNZ() int { return len(c.vals) }

// At returns A[i,j]. It panics if i or j is out of range.
func (c *CSR) At(i, j int) float64 {
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

// T returns the transpose of the receiver as a freshly materialised CSR.
func (c *CSR) T() mat.Matrix { return c.Transpose() }

// RowView returns the column indices and values of row i, borrowed
// directly from the receiver's backing storage. The caller must not
// mutate the returned slices.
func (c *CSR) RowView(i int) (cols []int, vals []float64) {
	begin, end := c.rowStart[i], c.rowStart[i+1]
	return c.colIdx[begin:end], c.vals[begin:end]
}

// RowNNZ returns the number of stored entries in row i.
func (c *CSR) RowNNZ(i int) int {
	return c.rowStart[i+1] - c.rowStart[i]
}

// HasDiagonal reports whether row i has a stored entry at column i.
func (c *CSR) HasDiagonal(i int) bool {
	cols, _ := c.RowView(i)
	k := sort.SearchInts(cols, i)
	return k < len(cols) && cols[k] == i
}

// Transpose builds a new CSR holding A^T. Column indices of the result
// are sorted ascending within each row, as for any CSR. Complexity is
// O(rows + cols + nnz).
func (c *CSR) Transpose() *CSR {
	rowStart := make([]int, c.cols+1)
	for _, j := range c.colIdx {
		rowStart[j+1]++
	}
	for i := 0; i < c.cols; i++ {
		rowStart[i+1] += rowStart[i]
	}

	colIdx := make([]int, len(c.colIdx))
	vals := make([]float64, len(c.vals))
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
	return &CSR{rows: c.cols, cols: c.rows, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// SpMV computes y = A*x. x must have length equal to the number of
// columns; the returned slice has length equal to the number of rows.
func (c *CSR) SpMV(x []float64) []float64 {
	y := make([]float64, c.rows)
	c.SpMVTo(y, x, false)
	return y
}

// SpMVTo computes y += A*x in place (y is not zeroed first, matching
// the BLAS axpy-style accumulate convention used throughout spblas).
// When concurrent is true and the matrix is large enough to be worth
// it, the row loop is partitioned across GOMAXPROCS goroutines; each
// goroutine only ever writes y[i] for the rows it owns, so no locking
// is required. This is the one operation in the package allowed to
// run off the calling goroutine.
func (c *CSR) SpMVTo(y, x []float64, concurrent bool) {
	if len(x) != c.cols || len(y) != c.rows {
		panic(ErrDimensionMismatch)
	}
	if concurrent {
		spblas.DusmvConcurrent(1, c.rowStart, c.colIdx, c.vals, c.rows, x, y)
		return
	}
	spblas.Dusmv(false, 1, c.rowStart, c.colIdx, c.vals, c.rows, x, y)
}

// LowerTriangle extracts {(i,j,v) in A : j <= i} into a new square CSR.
// The diagonal entry, if present, is the last entry of its row (since
// column indices are ascending and the diagonal column equals the row
// index). Complexity is O(nnz).
func (c *CSR) LowerTriangle() *CSR {
	rowStart := make([]int, c.rows+1)
	var colIdx []int
	var vals []float64
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
	return &CSR{rows: c.rows, cols: c.rows, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// DiagScaling computes the diagonal scaling matrix D with
// D[i,i] = 1/sqrt(|A[i,i]|) and the scaled right-hand side b' = D*b.
// It returns ErrMissingDiagonal if any row of A lacks a stored entry
// at column i.
func (c *CSR) DiagScaling(b []float64) (d *Diag, bPrime []float64, err error) {
	if c.rows != c.cols {
		return nil, nil, ErrDimensionMismatch
	}
	if len(b) != c.rows {
		panic(ErrDimensionMismatch)
	}
	scale := make([]float64, c.rows)
	bPrime = make([]float64, c.rows)
	for i := 0; i < c.rows; i++ {
		if !c.HasDiagonal(i) {
			return nil, nil, fmt.Errorf("%w: row %d", ErrMissingDiagonal, i)
		}
		aii := c.At(i, i)
		if aii == 0 {
			return nil, nil, fmt.Errorf("%w: row %d has a zero diagonal", ErrMissingDiagonal, i)
		}
		s := 1 / sqrtAbs(aii)
		scale[i] = s
		bPrime[i] = s * b[i]
	}
	return NewDiag(scale), bPrime, nil
}

// ScaleSym returns D*A*D for a diagonal matrix D given by its entries.
// This is the congruence transform spec'd for diagonal-scaled SGS-MRTR,
// generalising the teacher's mulDIA specialisation (which only ever
// scaled one side) to the two-sided scale the solver needs.
func (c *CSR) ScaleSym(d *Diag) *CSR {
	if d.Len() != c.rows || c.rows != c.cols {
		panic(ErrDimensionMismatch)
	}
	vals := make([]float64, len(c.vals))
	for i := 0; i < c.rows; i++ {
		begin, end := c.rowStart[i], c.rowStart[i+1]
		for k := begin; k < end; k++ {
			j := c.colIdx[k]
			vals[k] = d.data[i] * c.vals[k] * d.data[j]
		}
	}
	return &CSR{rows: c.rows, cols: c.cols, rowStart: c.rowStart, colIdx: c.colIdx, vals: vals}
}

// Multiply computes C = A*B for two CSR matrices with matching inner
// dimension, producing a CSR with columns sorted ascending in each row.
func (c *CSR) Multiply(b *CSR) *CSR {
	if c.cols != b.rows {
		panic(ErrDimensionMismatch)
	}
	rowStart := make([]int, c.rows+1)
	var colIdx []int
	var vals []float64
	acc := make(map[int]float64, b.cols)
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
	return &CSR{rows: c.rows, cols: b.cols, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// ToDense returns a dense gonum matrix holding the same values as the
// receiver, useful for tests and for comparing against reference
// computations.
func (c *CSR) ToDense() *mat.Dense {
	d := mat.NewDense(c.rows, c.cols, nil)
	for i := 0; i < c.rows; i++ {
		cols, vals := c.RowView(i)
		for k, j := range cols {
			d.Set(i, j, vals[k])
		}
	}
	return d
}

func sqrtAbs(v float64) float64 {
	return math.Sqrt(math.Abs(v))
}
