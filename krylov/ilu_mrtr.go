package krylov

import (
	"time"

	"github.com/sparsesolve/sparsesolve"
	"github.com/sparsesolve/sparsesolve/precond"
)

// SolveILUMRTR solves A x = b with the three-term-recurrence
// Minimum-Residual iteration under ILU-T preconditioning. It reuses
// the IC-MRTR recurrence shape, substituting ilu.Solve (P^-1 U^-1 L^-1 P)
// for the combined Incomplete-Cholesky sweep as the M^-1 apply. Real
// only; there is no complex ILU-T preconditioner.
func SolveILUMRTR(a *sparsesolve.CSR, b []float64, ilu *precond.ILUT, x0 []float64, opts Options) (Result, error) {
	start := time.Now()
	n, cols := a.Dims()
	if n != cols || len(b) != n {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	stats := Stats{}

	apply := func(v []float64) []float64 {
		stats.PSolves++
		return ilu.Solve(v)
	}

	x := make([]float64, n)
	if x0 != nil {
		copy(x, x0)
	}

	bNorm := sparsesolve.Norm(b)
	r := make([]float64, n)
	a.SpMVTo(r, x, opts.Concurrent)
	stats.MatVecs++
	for i := range r {
		r[i] = b[i] - r[i]
	}

	rNorm := sparsesolve.Norm(r)
	ratio := rNorm
	if bNorm != 0 {
		ratio = rNorm / bNorm
	}
	if ratio < earlyExitRatio*opts.ConvCri {
		return finishILU(x, true, nil, stats, start), nil
	}

	u := apply(r)
	y := make([]float64, n)
	for i := range y {
		y[i] = -r[i]
	}
	z := make([]float64, n)
	for i := range z {
		z[i] = -u[i]
	}
	p := make([]float64, n)
	nu, zeta, zetaOld := 1.0, 1.0, 1.0

	ctrl := newController(opts, bNorm, sparsesolve.Norm(u), n)

	iterations := 0
	diverged := false
	converged := false
	for k := 0; k < opts.MaxIte; k++ {
		iterations = k + 1

		v := a.SpMV(u)
		stats.MatVecs++
		w := apply(v)

		alphaRR := sparsesolve.Dot(w, r)
		alphaAA := sparsesolve.Dot(v, w)

		var eta float64
		if k == 0 {
			zeta = alphaRR / alphaAA
			zetaOld = zeta
			eta = 0
		} else {
			alphaAy := sparsesolve.Dot(w, y)
			tt := 1 / (nu*alphaAA - alphaAy*alphaAy)
			zeta = nu * alphaRR * tt
			eta = -alphaAy * alphaRR * tt
		}
		nu = zeta * alphaRR

		coefP := 0.0
		if zeta != 0 {
			coefP = eta * zetaOld / zeta
		}
		for i := range p {
			p[i] = u[i] + coefP*p[i]
		}
		zetaOld = zeta

		for i := range x {
			x[i] += zeta * p[i]
		}
		for i := range y {
			y[i] = eta*y[i] + zeta*v[i]
		}
		for i := range z {
			z[i] = eta*z[i] + zeta*w[i]
		}
		for i := range u {
			u[i] -= z[i]
		}
		for i := range r {
			r[i] -= y[i]
		}

		rawNorm := sparsesolve.Norm(r)
		var conv bool
		conv, diverged = ctrl.observe(rawNorm, x)
		if conv {
			converged = true
			break
		}
		if diverged {
			break
		}
	}

	stats.Iterations = iterations
	final := ctrl.finalX(x)
	return finishILU(final, converged, ctrl.log, stats, start), nil
}

func finishILU(x []float64, converged bool, log []float64, stats Stats, start time.Time) Result {
	stats.Elapsed = time.Since(start)
	return Result{X: x, Converged: converged, ResidualLog: log, Stats: stats}
}
