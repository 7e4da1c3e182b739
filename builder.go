package sparsesolve

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Builder incrementally constructs a sparse matrix as size per-row
// maps of column to value, accumulating on repeated Add calls to the
// same (row, col). Build finalises the builder into a CSR with rows in
// order and, within each row, columns in ascending order. Builder is
// meant to be short-lived: construct, fill, Build, discard.
type Builder struct {
	size int
	rows []map[int]float64
}

// NewBuilder creates a Builder for a matrix with size rows.
func NewBuilder(size int) *Builder {
	rows := make([]map[int]float64, size)
	for i := range rows {
		rows[i] = make(map[int]float64)
	}
	return &Builder{size: size, rows: rows}
}

// Size returns the number of rows the builder was created with.
func (b *Builder) Size() int { return b.size }

// Add accumulates v into the (row, col) entry: mapped[row][col] += v.
// It panics if row is out of range; col may be any non-negative value,
// the final column count of the built matrix being derived from the
// largest col seen.
func (b *Builder) Add(row, col int, v float64) {
	if uint(row) >= uint(b.size) {
		panic(ErrDimensionMismatch)
	}
	b.rows[row][col] += v
}

// MaxCol returns the largest column index added so far, or -1 if
// nothing has been added.
func (b *Builder) MaxCol() int {
	max := -1
	for _, row := range b.rows {
		for j := range row {
			if j > max {
				max = j
			}
		}
	}
	return max
}

// Build finalises the builder into a CSR. The column count of the
// result is MaxCol()+1, unless toSquare is true and the row count
// exceeds that, in which case a zero entry is inserted at
// (size-1, size-1) to pad the matrix to square.
func (b *Builder) Build(toSquare bool) *CSR {
	if toSquare && b.size > b.MaxCol()+1 {
		b.Add(b.size-1, b.size-1, 0)
	}
	cols := b.MaxCol() + 1
	if cols < 0 {
		cols = 0
	}

	rowStart := make([]int, b.size+1)
	var colIdx []int
	var vals []float64
	keys := make([]int, 0, cols)
	for i, row := range b.rows {
		rowStart[i] = len(colIdx)
		keys = keys[:0]
		for j := range row {
			keys = append(keys, j)
		}
		sort.Ints(keys)
		for _, j := range keys {
			colIdx = append(colIdx, j)
			vals = append(vals, row[j])
		}
	}
	rowStart[b.size] = len(colIdx)

	return &CSR{rows: b.size, cols: cols, rowStart: rowStart, colIdx: colIdx, vals: vals}
}

// ReadFrom parses the text sparse-matrix interchange format this
// builder understands and adds every entry it describes: a header (3
// whitespace-separated tokens, ignored) followed by the row count N;
// N integers giving the per-row non-zero count; a 2-token "cols"
// section marker followed by, for each row, that many column indices
// (or, for an empty row, a single ignored placeholder token); a
// 3-token "vals" section marker followed by the values in the same
// row-major, within-row order as the column indices. This mirrors the
// token stream the original reference implementation's file reader
// consumes; ReadFrom is the builder's own decode primitive, not a
// file-opening CLI command or host-language binding.
func (b *Builder) ReadFrom(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	readInt := func() (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		var v int
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return 0, fmt.Errorf("sparsesolve: reading int: %w", err)
		}
		return v, nil
	}
	readFloat := func() (float64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		var v float64
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return 0, fmt.Errorf("sparsesolve: reading float: %w", err)
		}
		return v, nil
	}
	skip := func(n int) error {
		for i := 0; i < n; i++ {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return err
				}
				return io.ErrUnexpectedEOF
			}
		}
		return nil
	}

	if err := skip(3); err != nil {
		return err
	}
	size, err := readInt()
	if err != nil {
		return err
	}
	*b = *NewBuilder(size)

	rowNNZ := make([]int, size)
	for i := range rowNNZ {
		rowNNZ[i], err = readInt()
		if err != nil {
			return err
		}
	}

	if err := skip(2); err != nil {
		return err
	}
	cols := make([][]int, size)
	for i, n := range rowNNZ {
		if n == 0 {
			if _, err := readInt(); err != nil {
				return err
			}
			continue
		}
		cols[i] = make([]int, n)
		for j := range cols[i] {
			cols[i][j], err = readInt()
			if err != nil {
				return err
			}
		}
	}

	if err := skip(3); err != nil {
		return err
	}
	for i, n := range rowNNZ {
		for j := 0; j < n; j++ {
			v, err := readFloat()
			if err != nil {
				return err
			}
			b.Add(i, cols[i][j], v)
		}
	}
	return nil
}
