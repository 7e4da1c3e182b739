package krylov

import (
	"testing"

	"github.com/sparsesolve/sparsesolve"
	"gonum.org/v1/gonum/floats/scalar"
)

func residualRatio(a *sparsesolve.CSR, b, x []float64) float64 {
	r := a.SpMV(x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	bn := sparsesolve.Norm(b)
	if bn == 0 {
		return sparsesolve.Norm(r)
	}
	return sparsesolve.Norm(r) / bn
}

func residualRatioC(a *sparsesolve.CSRC, b, x []complex128) float64 {
	r := a.SpMV(x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	bn := sparsesolve.NormC(b)
	if bn == 0 {
		return sparsesolve.NormC(r)
	}
	return sparsesolve.NormC(r) / bn
}

// s1Matrix builds the 3x3 SPD fixture A = [[4,1,0],[1,3,0],[0,0,2]].
func s1Matrix() *sparsesolve.CSR {
	bld := sparsesolve.NewBuilder(3)
	bld.Add(0, 0, 4)
	bld.Add(0, 1, 1)
	bld.Add(1, 0, 1)
	bld.Add(1, 1, 3)
	bld.Add(2, 2, 2)
	return bld.Build(false)
}

func TestSGSMRTR_S1TrivialSPD(t *testing.T) {
	a := s1Matrix()
	b := []float64{1, 2, 3}
	opts := DefaultOptions()
	opts.ConvCri = 1e-10
	opts.MaxIte = 10

	res, err := SolveSGSMRTR(a, b, nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence, stats=%+v", res.Stats)
	}
	want := []float64{1.0 / 11, 7.0 / 11, 1.5}
	for i, w := range want {
		if !scalar.EqualWithinAbsOrRel(res.X[i], w, 1e-6, 1e-6) {
			t.Errorf("x[%d] = %v, want %v", i, res.X[i], w)
		}
	}
}

func TestICMRTR_S1TrivialSPD(t *testing.T) {
	a := s1Matrix()
	b := []float64{1, 2, 3}
	opts := DefaultOptions()
	opts.ConvCri = 1e-10
	opts.MaxIte = 10

	res, err := SolveICMRTR(a, b, 1.0, nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence, stats=%+v", res.Stats)
	}
	want := []float64{1.0 / 11, 7.0 / 11, 1.5}
	for i, w := range want {
		if !scalar.EqualWithinAbsOrRel(res.X[i], w, 1e-6, 1e-6) {
			t.Errorf("x[%d] = %v, want %v", i, res.X[i], w)
		}
	}
}

func TestSGSMRTR_S2IdentityEarlyExit(t *testing.T) {
	n := 10
	bld := sparsesolve.NewBuilder(n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		bld.Add(i, i, 1)
		b[i] = float64(i + 1)
	}
	a := bld.Build(false)

	opts := DefaultOptions()
	res, err := SolveSGSMRTR(a, b, b, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected the already-small initial residual to trigger the early return")
	}
	if res.Stats.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", res.Stats.Iterations)
	}
	for i := range b {
		if res.X[i] != b[i] {
			t.Errorf("x[%d] = %v, want %v", i, res.X[i], b[i])
		}
	}
}

// s3Matrix builds a 5x5 SPD matrix with a badly scaled diagonal
// ({1e6, 1, 1, 1, 1e-6}) and a weak nearest-neighbour coupling (1e-4).
// The last row is not diagonally dominant, but every Cholesky pivot
// stays positive, so the matrix is SPD.
func s3Matrix() *sparsesolve.CSR {
	diag := []float64{1e6, 1, 1, 1, 1e-6}
	off := 1e-4
	bld := sparsesolve.NewBuilder(5)
	for i := 0; i < 5; i++ {
		bld.Add(i, i, diag[i])
		if i+1 < 5 {
			bld.Add(i, i+1, off)
			bld.Add(i+1, i, off)
		}
	}
	return bld.Build(false)
}

func TestSGSMRTR_S3DiagonalScalingReducesIterations(t *testing.T) {
	a := s3Matrix()
	b := []float64{1, 2, 3, 4, 5}

	scaledOpts := DefaultOptions()
	scaledOpts.ConvCri = 1e-9
	scaledOpts.MaxIte = 200
	scaledOpts.IsDiagScale = true

	unscaledOpts := scaledOpts
	unscaledOpts.IsDiagScale = false

	scaledRes, err := SolveSGSMRTR(a, b, nil, scaledOpts)
	if err != nil {
		t.Fatalf("scaled solve: unexpected error: %v", err)
	}
	if !scaledRes.Converged {
		t.Fatalf("scaled solve did not converge, stats=%+v", scaledRes.Stats)
	}

	unscaledRes, err := SolveSGSMRTR(a, b, nil, unscaledOpts)
	if err != nil {
		t.Fatalf("unscaled solve: unexpected error: %v", err)
	}

	if unscaledRes.Converged && scaledRes.Stats.Iterations > unscaledRes.Stats.Iterations {
		t.Errorf("diagonal scaling did not reduce iteration count: scaled=%d unscaled=%d",
			scaledRes.Stats.Iterations, unscaledRes.Stats.Iterations)
	}
}

func TestICMRTR_S4AutoAccelerationReportsAlpha(t *testing.T) {
	// Off-diagonal (1.2) large enough relative to the diagonal (1,1)
	// that alpha=1.0 yields a non-positive pivot on row 1, forcing the
	// auto-tuning retry loop to raise alpha before it succeeds.
	bld := sparsesolve.NewBuilder(2)
	bld.Add(0, 0, 1)
	bld.Add(1, 0, 1.2)
	bld.Add(1, 1, 1)
	a := bld.Build(false)
	b := []float64{1, 1}

	opts := DefaultOptions()
	opts.MaxIte = 20

	res, err := SolveICMRTR(a, b, 1.0, nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Alpha <= 1.0 {
		t.Errorf("Alpha = %v, want > 1.0 (auto-tuning should have raised it)", res.Alpha)
	}
	if !scalar.EqualWithinAbsOrRel(res.Alpha, 1.15, 1e-9, 1e-9) {
		t.Errorf("Alpha = %v, want 1.15", res.Alpha)
	}
}

func TestICMRTRC_S6ComplexHermitianPD(t *testing.T) {
	diag := []float64{2, 3, 4, 5}
	bld := sparsesolve.NewBuilderC(4)
	for i, d := range diag {
		bld.Add(i, i, complex(d, 0))
	}
	a := bld.Build(false)
	b := []complex128{complex(1, 1), complex(2, -1), complex(0, 3), complex(4, 0)}

	opts := DefaultOptions()
	opts.ConvCri = 1e-10
	opts.MaxIte = 20

	res, err := SolveICMRTRC(a, b, 1.0, nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatalf("expected convergence, stats=%+v", res.Stats)
	}
	if ratio := residualRatioC(a, b, res.X); ratio >= 1e-9 {
		t.Errorf("residual ratio = %v, want < 1e-9", ratio)
	}
}

func TestICMRTR_Property5SPDConvergence(t *testing.T) {
	a := s1Matrix()
	b := []float64{1, 2, 3}
	opts := DefaultOptions()
	opts.ConvCri = 1e-10
	opts.MaxIte = 20

	res, err := SolveICMRTR(a, b, 1.0, nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		t.Fatal("expected SPD system to converge")
	}
	if ratio := residualRatio(a, b, res.X); ratio >= opts.ConvCri*10 {
		t.Errorf("residual ratio = %v, too large", ratio)
	}
}

func TestICMRTR_Property7ResidualLogLengthMatchesIterations(t *testing.T) {
	a := s1Matrix()
	b := []float64{1, 2, 3}
	opts := DefaultOptions()
	opts.ConvCri = 1e-10
	opts.MaxIte = 20
	opts.IsSaveResidualLog = true

	res, err := SolveICMRTR(a, b, 1.0, nil, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.ResidualLog) != res.Stats.Iterations {
		t.Errorf("len(ResidualLog) = %d, want %d (Stats.Iterations)", len(res.ResidualLog), res.Stats.Iterations)
	}
}
