package krylov

import (
	"time"

	"github.com/sparsesolve/sparsesolve"
	"github.com/sparsesolve/sparsesolve/precond"
)

// SolveICMRTRC is the complex128 counterpart of SolveICMRTR. Inner
// products are the unconjugated bilinear form, per the complex-
// symmetric MRTR convention.
func SolveICMRTRC(a *sparsesolve.CSRC, b []complex128, alpha float64, x0 []complex128, opts Options) (ResultC, error) {
	start := time.Now()
	n, cols := a.Dims()
	if n != cols || len(b) != n {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	stats := Stats{}

	l, d, usedAlpha, err := precond.AutoAccelICC(a, alpha, precond.AutoAccelOptions{})
	if err != nil {
		return ResultC{}, err
	}
	lt := l.Transpose()

	apply := func(v []complex128) []complex128 {
		stats.PSolves++
		return sparsesolve.ICApplyC(l, lt, d, v)
	}

	x := make([]complex128, n)
	if x0 != nil {
		copy(x, x0)
	}

	bNorm := sparsesolve.NormC(b)
	r := make([]complex128, n)
	a.SpMVTo(r, x)
	stats.MatVecs++
	for i := range r {
		r[i] = b[i] - r[i]
	}

	rNorm := sparsesolve.NormC(r)
	ratio := rNorm
	if bNorm != 0 {
		ratio = rNorm / bNorm
	}
	if ratio < earlyExitRatio*opts.ConvCri {
		return finishICC(x, true, usedAlpha, nil, stats, start), nil
	}

	u := apply(r)
	y := make([]complex128, n)
	for i := range y {
		y[i] = -r[i]
	}
	z := make([]complex128, n)
	for i := range z {
		z[i] = -u[i]
	}
	p := make([]complex128, n)
	nu, zeta, zetaOld := complex(1, 0), complex(1, 0), complex(1, 0)

	ctrl := newControllerC(opts, bNorm, sparsesolve.NormC(u), n)

	iterations := 0
	diverged := false
	converged := false
	for k := 0; k < opts.MaxIte; k++ {
		iterations = k + 1

		v := a.SpMV(u)
		stats.MatVecs++
		w := apply(v)

		alphaRR := sparsesolve.DotU(w, r)
		alphaAA := sparsesolve.DotU(v, w)

		var eta complex128
		if k == 0 {
			zeta = alphaRR / alphaAA
			zetaOld = zeta
			eta = 0
		} else {
			alphaAy := sparsesolve.DotU(w, y)
			tt := 1 / (nu*alphaAA - alphaAy*alphaAy)
			zeta = nu * alphaRR * tt
			eta = -alphaAy * alphaRR * tt
		}
		nu = zeta * alphaRR

		coefP := complex128(0)
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

		rawNorm := sparsesolve.NormC(r)
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
	return finishICC(final, converged, usedAlpha, ctrl.log, stats, start), nil
}

func finishICC(x []complex128, converged bool, alpha float64, log []float64, stats Stats, start time.Time) ResultC {
	stats.Elapsed = time.Since(start)
	return ResultC{X: x, Converged: converged, Alpha: alpha, ResidualLog: log, Stats: stats}
}
