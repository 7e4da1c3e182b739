package krylov

import (
	"time"

	"github.com/sparsesolve/sparsesolve"
)

// SolveSGSMRTR solves A x = b with the three-term-recurrence
// Minimum-Residual iteration under split-triangular
// Symmetric-Gauss-Seidel preconditioning. x0 is the initial guess (nil
// means the zero vector).
func SolveSGSMRTR(a *sparsesolve.CSR, b, x0 []float64, opts Options) (Result, error) {
	start := time.Now()
	n, cols := a.Dims()
	if n != cols || len(b) != n {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	stats := Stats{}

	aEff, bEff, d, err := maybeDiagScale(a, b, opts.IsDiagScale)
	if err != nil {
		return Result{}, err
	}
	xhat := make([]float64, n)
	if x0 != nil {
		if d != nil {
			for i := range xhat {
				xhat[i] = x0[i] / d.At(i)
			}
		} else {
			copy(xhat, x0)
		}
	}

	l := aEff.LowerTriangle()
	lt := l.Transpose()
	diagA := make([]float64, n)
	for i := range diagA {
		diagA[i] = aEff.At(i, i)
	}

	bNorm := sparsesolve.Norm(bEff)
	r := make([]float64, n)
	aEff.SpMVTo(r, xhat, opts.Concurrent)
	stats.MatVecs++
	for i := range r {
		r[i] = bEff[i] - r[i]
	}

	rNorm := sparsesolve.Norm(r)
	ratio := rNorm
	if bNorm != 0 {
		ratio = rNorm / bNorm
	}
	if ratio < earlyExitRatio*opts.ConvCri {
		return finishSGS(xhat, d, true, 0, nil, stats, start), nil
	}

	rt := sparsesolve.ForwardSolve(l, r)
	stats.PSolves++
	y := make([]float64, n)
	for i := range y {
		y[i] = -rt[i]
	}
	p := make([]float64, n)
	nu, zeta, zetaOld := 1.0, 1.0, 1.0

	ctrl := newController(opts, bNorm, sparsesolve.Norm(rt), n)

	iterations := 0
	diverged := false
	converged := false
	for k := 0; k < opts.MaxIte; k++ {
		iterations = k + 1

		// u = L^-T r~; since A = L + L^T - D, L^-1 (r~ - D u) + u is
		// L^-1 A L^-T r~.
		u := sparsesolve.BackwardSolve(lt, rt)
		diff := make([]float64, n)
		for i := range diff {
			diff[i] = rt[i] - diagA[i]*u[i]
		}
		aru := sparsesolve.ForwardSolve(l, diff)
		stats.PSolves++
		for i := range aru {
			aru[i] += u[i]
		}

		alphaRR := sparsesolve.Dot(aru, rt)
		alphaAA := sparsesolve.Dot(aru, aru)

		var eta float64
		if k == 0 {
			zeta = alphaRR / alphaAA
			zetaOld = zeta
			eta = 0
		} else {
			alphaAy := sparsesolve.Dot(aru, y)
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

		for i := range xhat {
			xhat[i] += zeta * p[i]
		}
		for i := range y {
			y[i] = eta*y[i] + zeta*aru[i]
		}
		for i := range rt {
			rt[i] -= y[i]
		}

		trueR := l.SpMV(rt)
		rawNorm := sparsesolve.Norm(trueR)
		var conv bool
		conv, diverged = ctrl.observe(rawNorm, xhat)
		if conv {
			converged = true
			break
		}
		if diverged {
			break
		}
	}

	stats.Iterations = iterations
	final := ctrl.finalX(xhat)
	return finishSGS(final, d, converged, 0, ctrl.log, stats, start), nil
}

func finishSGS(xhat []float64, d *sparsesolve.Diag, converged bool, alpha float64, log []float64, stats Stats, start time.Time) Result {
	x := xhat
	if d != nil {
		x = make([]float64, len(xhat))
		for i := range x {
			x[i] = d.At(i) * xhat[i]
		}
	}
	stats.Elapsed = time.Since(start)
	return Result{X: x, Converged: converged, Alpha: alpha, ResidualLog: log, Stats: stats}
}

func maybeDiagScale(a *sparsesolve.CSR, b []float64, enabled bool) (*sparsesolve.CSR, []float64, *sparsesolve.Diag, error) {
	if !enabled {
		return a, b, nil, nil
	}
	d, bPrime, err := a.DiagScaling(b)
	if err != nil {
		return nil, nil, nil, err
	}
	return a.ScaleSym(d), bPrime, d, nil
}
