package spblas

import "testing"

func TestDusdot(t *testing.T) {
	x := []float64{2, 3, 5}
	indx := []int{0, 2, 4}
	y := []float64{1, 1, 1, 1, 1}

	got := Dusdot(x, indx, y)
	want := 2.0 + 3.0 + 5.0
	if got != want {
		t.Errorf("Dusdot = %v, want %v", got, want)
	}
}

func TestDusaxpy(t *testing.T) {
	x := []float64{2, 3}
	indx := []int{1, 3}
	y := []float64{0, 0, 0, 0}

	Dusaxpy(2, x, indx, y)
	want := []float64{0, 4, 0, 6}
	for i := range want {
		if y[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestDusaxpyZeroAlpha(t *testing.T) {
	x := []float64{2, 3}
	indx := []int{1, 3}
	y := []float64{9, 9, 9, 9}

	Dusaxpy(0, x, indx, y)
	for i, v := range y {
		if v != 9 {
			t.Errorf("y[%d] = %v, want unchanged 9", i, v)
		}
	}
}
