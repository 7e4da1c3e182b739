package krylov

import "time"

// Stats reports the work a solve call performed, for callers that
// want to profile or compare preconditioner choices.
type Stats struct {
	Iterations int
	MatVecs    int
	PSolves    int
	Elapsed    time.Duration
}

// Result is the outcome of a single solve call.
type Result struct {
	X           []float64
	Converged   bool
	Alpha       float64 // the IC acceleration factor actually used; 0 for SGS-MRTR
	ResidualLog []float64
	Stats       Stats
}

// ResultC is the complex128 counterpart of Result.
type ResultC struct {
	X           []complex128
	Converged   bool
	Alpha       float64
	ResidualLog []float64
	Stats       Stats
}
