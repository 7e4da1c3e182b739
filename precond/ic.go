// Package precond implements the incomplete-factorisation
// preconditioners consumed by the krylov subpackage: accelerated
// Incomplete Cholesky (IC) and dual-threshold Incomplete LU (ILU-T).
package precond

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sparsesolve/sparsesolve"
)

// FactorizeIC computes an accelerated incomplete Cholesky factorisation
// (L, D) of the symmetric matrix a, preserving the non-zero pattern of
// a's lower triangle. Diagonal entries are scaled by alpha before
// factorisation to promote a positive-definite factor. It returns
// sparsesolve.ErrNonPositiveDiagonal if any computed pivot is not
// strictly positive, and sparsesolve.ErrMissingDiagonal if a row of a
// has no stored diagonal entry.
func FactorizeIC(a *sparsesolve.CSR, alpha float64) (l *sparsesolve.CSR, d *sparsesolve.Diag, err error) {
	n, cols := a.Dims()
	if n != cols {
		panic(sparsesolve.ErrDimensionMismatch)
	}
	lower := a.LowerTriangle()

	lrows := make([]map[int]float64, n)
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		colsI, valsI := lower.RowView(i)
		lrow := make(map[int]float64, len(colsI))
		var diagSum, aii float64
		hasDiag := false
		for idx, j := range colsI {
			if j == i {
				aii = valsI[idx]
				hasDiag = true
				continue
			}
			aij := valsI[idx]
			var sum float64
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

		pivot := alpha*aii - diagSum
		if pivot <= 0 {
			return nil, nil, fmt.Errorf("%w: row %d, pivot %v", sparsesolve.ErrNonPositiveDiagonal, i, pivot)
		}
		lii := math.Sqrt(pivot)
		lrow[i] = lii
		diag[i] = 1 / (lii * lii)
		lrows[i] = lrow
	}

	rowStart := make([]int, n+1)
	var colIdx []int
	var vals []float64
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

	return sparsesolve.NewCSR(n, n, rowStart, colIdx, vals), sparsesolve.NewDiag(diag), nil
}

// AutoAccelOptions configures the retry cadence of AutoAccelIC. Fine
// selects the fine-grained retry cadence (smaller step, more retries);
// the coarse cadence otherwise used converges in fewer factorisation
// attempts but in larger acceleration increments.
type AutoAccelOptions struct {
	Fine bool
}

// AutoAccelIC calls FactorizeIC, and on a non-positive-diagonal failure
// retries with an incremented alpha — by 0.05 up to 10 times, or by
// 0.01 up to 80 times when opts.Fine is set — returning the alpha that
// finally succeeded. An initial alpha outside [0.9, 1.8] is clamped to
// 1.0 before the first attempt. Any error other than
// sparsesolve.ErrNonPositiveDiagonal is returned immediately, without
// retrying.
func AutoAccelIC(a *sparsesolve.CSR, alpha float64, opts AutoAccelOptions) (l *sparsesolve.CSR, d *sparsesolve.Diag, usedAlpha float64, err error) {
	if alpha < 0.9 || alpha > 1.8 {
		alpha = 1.0
	}
	step, maxRetries := 0.05, 10
	if opts.Fine {
		step, maxRetries = 0.01, 80
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		l, d, err = FactorizeIC(a, alpha)
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
