package sparsesolve

import "sort"

// BuilderC is the complex128 counterpart of Builder.
type BuilderC struct {
	size int
	rows []map[int]complex128
}

// NewBuilderC creates a BuilderC for a matrix with size rows.
func NewBuilderC(size int) *BuilderC {
	rows := make([]map[int]complex128, size)
	for i := range rows {
		rows[i] = make(map[int]complex128)
	}
	return &BuilderC{size: size, rows: rows}
}

// Size returns the number of rows the builder was created with.
func (b *BuilderC) Size() int { return b.size }

// Add accumulates v into the (row, col) entry: mapped[row][col] += v.
func (b *BuilderC) Add(row, col int, v complex128) {
	if uint(row) >= uint(b.size) {
		panic(ErrDimensionMismatch)
	}
	b.rows[row][col] += v
}

// MaxCol returns the largest column index added so far, or -1 if
// nothing has been added.
func (b *BuilderC) MaxCol() int {
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

// Build finalises the builder into a CSRC, padding to square exactly
// as Builder.Build does.
func (b *BuilderC) Build(toSquare bool) *CSRC {
	if toSquare && b.size > b.MaxCol()+1 {
		b.Add(b.size-1, b.size-1, 0)
	}
	cols := b.MaxCol() + 1
	if cols < 0 {
		cols = 0
	}

	rowStart := make([]int, b.size+1)
	var colIdx []int
	var vals []complex128
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

	return &CSRC{rows: b.size, cols: cols, rowStart: rowStart, colIdx: colIdx, vals: vals}
}
