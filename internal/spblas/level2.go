package spblas

import (
	"runtime"
	"sync"
)

// Dusmv computes y <- alpha*A*x + y (transA == false) or
// y <- alpha*A^T*x + y (transA == true), where A is a row-oriented
// sparse matrix given by its CSR arrays (rowStart, colIdx, vals) with
// rowCount rows. x and y are dense.
//
// When transA is false this is a direct row-major accumulation: each
// output row is independent, so the loop may run concurrently across
// rows (see DusmvConcurrent). When transA is true, rows of A scatter
// into every element of y, so the computation is run sequentially.
func Dusmv(transA bool, alpha float64, rowStart, colIdx []int, vals []float64, rowCount int, x, y []float64) {
	if alpha == 0 {
		return
	}
	if transA {
		for i := 0; i < rowCount; i++ {
			begin, end := rowStart[i], rowStart[i+1]
			Dusaxpy(alpha*x[i], vals[begin:end], colIdx[begin:end], y)
		}
		return
	}
	for i := 0; i < rowCount; i++ {
		begin, end := rowStart[i], rowStart[i+1]
		y[i] += alpha * Dusdot(vals[begin:end], colIdx[begin:end], x)
	}
}

// DusmvConcurrent is the row-parallel form of Dusmv(false, ...): it
// partitions rows across GOMAXPROCS goroutines, each writing only to
// the output elements of its own row range, so no synchronisation
// beyond the final WaitGroup.Wait is required.
func DusmvConcurrent(alpha float64, rowStart, colIdx []int, vals []float64, rowCount int, x, y []float64) {
	if alpha == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers <= 1 || rowCount < 2*workers {
		Dusmv(false, alpha, rowStart, colIdx, vals, rowCount, x, y)
		return
	}

	chunk := (rowCount + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < rowCount; lo += chunk {
		hi := lo + chunk
		if hi > rowCount {
			hi = rowCount
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				begin, end := rowStart[i], rowStart[i+1]
				y[i] += alpha * Dusdot(vals[begin:end], colIdx[begin:end], x)
			}
		}(lo, hi)
	}
	wg.Wait()
}
