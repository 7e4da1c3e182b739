package sparsesolve

import (
	"math"
	"testing"
)

func TestForwardBackwardSolveRoundTrip(t *testing.T) {
	l := NewCSR(3, 3,
		[]int{0, 1, 3, 6},
		[]int{0, 0, 1, 0, 1, 2},
		[]float64{2, 1, 3, 4, 5, 6},
	)
	v := []float64{1, -2, 0.5}
	r := l.SpMV(v)

	got := ForwardSolve(l, r)
	for i := range v {
		if math.Abs(got[i]-v[i]) > 1e-9 {
			t.Errorf("ForwardSolve(L, L*v)[%d] = %v, want %v", i, got[i], v[i])
		}
	}

	u := l.Transpose()
	ru := u.SpMV(v)
	gotBack := BackwardSolve(u, ru)
	for i := range v {
		if math.Abs(gotBack[i]-v[i]) > 1e-9 {
			t.Errorf("BackwardSolve(U, U*v)[%d] = %v, want %v", i, gotBack[i], v[i])
		}
	}
}

func TestICApplyRecoversIdentityPreconditioner(t *testing.T) {
	// L = I, D = I => M = I, so ICApply(I, I, I, r) == r.
	l := NewCSR(3, 3, []int{0, 1, 2, 3}, []int{0, 1, 2}, []float64{1, 1, 1})
	lt := l.Transpose()
	d := NewDiag([]float64{1, 1, 1})

	r := []float64{3, -1, 2}
	got := ICApply(l, lt, d, r)
	for i := range r {
		if math.Abs(got[i]-r[i]) > 1e-12 {
			t.Errorf("ICApply[%d] = %v, want %v", i, got[i], r[i])
		}
	}
}
