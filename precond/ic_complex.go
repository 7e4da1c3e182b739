package precond

import (
	"errors"
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/sparsesolve/sparsesolve"
)

// FactorizeICC is the complex128 counterpart of FactorizeIC. alpha
// remains a real scalar even though a is complex; positivity of the
// factorisation is judged on the real part of each diagonal entry of
// d, per the complex convention.
func FactorizeICC(a *sparsesolve.CSRC, alpha float64) (l *sparsesolve.CSRC, d *sparsesolve.DiagC, err error) {
	n, cols := a.Dims()
	if n != cols {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	lower := a.LowerTriangle()
	alphaC := complex(alpha, 0)

	lrows := make([]map[int]complex128, n)
	diag := make([]complex128, n)
	for i := 0; i < n; i++ {
		colsI, valsI := lower.RowView(i)
		lrow := make(map[int]complex128, len(colsI))
		var diagSum, aii complex128
		hasDiag := false
		for idx, j := range colsI {
			if j == i {
				aii = valsI[idx]
				hasDiag = true
				continue
			}
			aij := valsI[idx]
			var sum complex128
			for k, lik := range lrow {
				if k >= j {
					continue
				}
				if ljk, ok := lrows[j][k]; ok {
					sum += lik * ljk * diag[k]
				}
			}
			ljj, ok := lrows[j][j]
			if !ok {
				return nil, nil, fmt.Errorf("%w: row %d needs the diagonal of row %d", sparsesolve.ErrMissingDiagonal, i, j)
			}
			lij := (aij - sum) / ljj
			lrow[j] = lij
			diagSum += lij * lij * diag[j]
		}
		if !hasDiag {
			return nil, nil, fmt.Errorf("%w: row %d", sparsesolve.ErrMissingDiagonal, i)
		}

		pivot := alphaC*aii - diagSum
		lii := cmplx.Sqrt(pivot)
		if lii == 0 {
			return nil, nil, fmt.Errorf("%w: row %d, zero pivot", sparsesolve.ErrNonPositiveDiagonal, i)
		}
		dii := 1 / (lii * lii)
		if real(dii) <= 0 {
			return nil, nil, fmt.Errorf("%w: row %d, Re(D)=%v", sparsesolve.ErrNonPositiveDiagonal, i, real(dii))
		}
		lrow[i] = lii
		diag[i] = dii
		lrows[i] = lrow
	}

	rowStart := make([]int, n+1)
	var colIdx []int
	var vals []complex128
	keys := make([]int, 0)
	for i := 0; i < n; i++ {
		rowStart[i] = len(colIdx)
		keys = keys[:0]
		for j := range lrows[i] {
			keys = append(keys, j)
		}
		sort.Ints(keys)
		for _, j := range keys {
			colIdx = append(colIdx, j)
			vals = append(vals, lrows[i][j])
		}
	}
	rowStart[n] = len(colIdx)

	return sparsesolve.NewCSRC(n, n, rowStart, colIdx, vals), sparsesolve.NewDiagC(diag), nil
}

// AutoAccelICC is the complex128 counterpart of AutoAccelIC.
func AutoAccelICC(a *sparsesolve.CSRC, alpha float64, opts AutoAccelOptions) (l *sparsesolve.CSRC, d *sparsesolve.DiagC, usedAlpha float64, err error) {
	if alpha < 0.9 || alpha > 1.8 {
		alpha = 1.0
	}
	step, maxRetries := 0.05, 10
	if opts.Fine {
		step, maxRetries = 0.01, 80
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		l, d, err = FactorizeICC(a, alpha)
		if err == nil {
			return l, d, alpha, nil
		}
		if !errors.Is(err, sparsesolve.ErrNonPositiveDiagonal) {
			return nil, nil, alpha, err
		}
		alpha += step
	}
	return nil, nil, alpha, err
}
