package krylov

import (
	"time"

	"github.com/sparsesolve/sparsesolve"
	"github.com/sparsesolve/sparsesolve/precond"
)

// SolveICMRTR solves A x = b with the three-term-recurrence
// Minimum-Residual iteration under accelerated Incomplete-Cholesky
// preconditioning. alpha seeds precond.AutoAccelIC; the alpha that
// actually succeeded is reported on Result.Alpha. x0 is the initial
// guess (nil means the zero vector).
func SolveICMRTR(a *sparsesolve.CSR, b []float64, alpha float64, x0 []float64, opts Options) (Result, error) {
	start := time.Now()
	n, cols := a.Dims()
	if n != cols || len(b) != n {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	stats := Stats{}

	l, d, usedAlpha, err := precond.AutoAccelIC(a, alpha, precond.AutoAccelOptions{})
	if err != nil {
		return Result{}, err
	}
	lt := l.Transpose()

	apply := func(v []float64) []float64 {
		stats.PSolves++
		return sparsesolve.ICApply(l, lt, d, v)
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
		return finishIC(x, true, usedAlpha, nil, stats, start), nil
	}

	u := apply(r)
	y := make([]float64, n)
	for i := range y {
		y[i] = -r[i]
	}
	// z is initialised to M^-1 y, i.e. -u, not M^-1 r: u's own update
	// (u -= z) must track y's preconditioned image, not r's directly,
	// matching the split-preconditioner driver's r~ <- r~ - y shape.
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
	return finishIC(final, converged, usedAlpha, ctrl.log, stats, start), nil
}

func finishIC(x []float64, converged bool, alpha float64, log []float64, stats Stats, start time.Time) Result {
	stats.Elapsed = time.Since(start)
	return Result{X: x, Converged: converged, Alpha: alpha, ResidualLog: log, Stats: stats}
}
