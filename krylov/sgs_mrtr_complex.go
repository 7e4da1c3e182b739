package krylov

import (
	"time"

	"github.com/sparsesolve/sparsesolve"
)

// SolveSGSMRTRC is the complex128 counterpart of SolveSGSMRTR. The
// inner products use the unconjugated bilinear form, matching the
// complex-symmetric (not Hermitian) convention the MRTR recurrence
// requires.
func SolveSGSMRTRC(a *sparsesolve.CSRC, b, x0 []complex128, opts Options) (ResultC, error) {
	start := time.Now()
	n, cols := a.Dims()
	if n != cols || len(b) != n {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	stats := Stats{}

	aEff, bEff, d, err := maybeDiagScaleC(a, b, opts.IsDiagScale)
	if err != nil {
		return ResultC{}, err
	}
	xhat := make([]complex128, n)
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
	diagA := make([]complex128, n)
	for i := range diagA {
		diagA[i] = aEff.AtC(i, i)
	}

	bNorm := sparsesolve.NormC(bEff)
	r := make([]complex128, n)
	aEff.SpMVTo(r, xhat)
	stats.MatVecs++
	for i := range r {
		r[i] = bEff[i] - r[i]
	}

	rNorm := sparsesolve.NormC(r)
	ratio := rNorm
	if bNorm != 0 {
		ratio = rNorm / bNorm
	}
	if ratio < earlyExitRatio*opts.ConvCri {
		return finishSGSC(xhat, d, true, nil, stats, start), nil
	}

	rt := sparsesolve.ForwardSolveC(l, r)
	stats.PSolves++
	y := make([]complex128, n)
	for i := range y {
		y[i] = -rt[i]
	}
	p := make([]complex128, n)
	nu, zeta, zetaOld := complex(1, 0), complex(1, 0), complex(1, 0)

	ctrl := newControllerC(opts, bNorm, sparsesolve.NormC(rt), n)

	iterations := 0
	diverged := false
	converged := false
	for k := 0; k < opts.MaxIte; k++ {
		iterations = k + 1

		u := sparsesolve.BackwardSolveC(lt, rt)
		diff := make([]complex128, n)
		for i := range diff {
			diff[i] = rt[i] - diagA[i]*u[i]
		}
		aru := sparsesolve.ForwardSolveC(l, diff)
		stats.PSolves++
		for i := range aru {
			aru[i] += u[i]
		}

		alphaRR := sparsesolve.DotU(aru, rt)
		alphaAA := sparsesolve.DotU(aru, aru)

		var eta complex128
		if k == 0 {
			zeta = alphaRR / alphaAA
			zetaOld = zeta
			eta = 0
		} else {
			alphaAy := sparsesolve.DotU(aru, y)
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
		rawNorm := sparsesolve.NormC(trueR)
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
	return finishSGSC(final, d, converged, ctrl.log, stats, start), nil
}

func finishSGSC(xhat []complex128, d *sparsesolve.DiagC, converged bool, log []float64, stats Stats, start time.Time) ResultC {
	x := xhat
	if d != nil {
		x = make([]complex128, len(xhat))
		for i := range x {
			x[i] = d.At(i) * xhat[i]
		}
	}
	stats.Elapsed = time.Since(start)
	return ResultC{X: x, Converged: converged, ResidualLog: log, Stats: stats}
}

func maybeDiagScaleC(a *sparsesolve.CSRC, b []complex128, enabled bool) (*sparsesolve.CSRC, []complex128, *sparsesolve.DiagC, error) {
	if !enabled {
		return a, b, nil, nil
	}
	d, bPrime, err := a.DiagScalingC(b)
	if err != nil {
		return nil, nil, nil, err
	}
	return a.ScaleSym(d), bPrime, d, nil
}
