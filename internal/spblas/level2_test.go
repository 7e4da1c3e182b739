package spblas

import "testing"

// a 3x3 matrix [[1,0,2],[0,3,0],[4,0,5]] in CSR form.
var (
	rowStart = []int{0, 2, 3, 5}
	colIdx   = []int{0, 2, 1, 0, 2}
	vals     = []float64{1, 2, 3, 4, 5}
)

func TestDusmv(t *testing.T) {
	x := []float64{1, 1, 1}
	y := make([]float64, 3)

	Dusmv(false, 1, rowStart, colIdx, vals, 3, x, y)
	want := []float64{3, 3, 9}
	for i := range want {
		if y[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestDusmvTranspose(t *testing.T) {
	x := []float64{1, 1, 1}
	y := make([]float64, 3)

	Dusmv(true, 1, rowStart, colIdx, vals, 3, x, y)
	// A^T = [[1,0,4],[0,3,0],[2,0,5]]
	want := []float64{5, 3, 7}
	for i := range want {
		if y[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestDusmvConcurrentMatchesSequential(t *testing.T) {
	n := 200
	rs := make([]int, n+1)
	var cols []int
	var vs []float64
	for i := 0; i < n; i++ {
		rs[i] = len(cols)
		cols = append(cols, i)
		vs = append(vs, float64(i+1))
		if i+1 < n {
			cols = append(cols, i+1)
			vs = append(vs, 0.5)
		}
	}
	rs[n] = len(cols)

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	seq := make([]float64, n)
	Dusmv(false, 1, rs, cols, vs, n, x, seq)

	par := make([]float64, n)
	DusmvConcurrent(1, rs, cols, vs, n, x, par)

	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("row %d: sequential %v != concurrent %v", i, seq[i], par[i])
		}
	}
}
