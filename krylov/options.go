// Package krylov implements the MRTR family of preconditioned
// Krylov-subspace iterative solvers: SGS-MRTR (split
// Symmetric-Gauss-Seidel preconditioning), IC-MRTR (combined
// Incomplete Cholesky preconditioning), and ILU-MRTR (dual-threshold
// Incomplete LU preconditioning), each a three-term-recurrence
// minimum-residual iteration over a sparse matrix from the root
// sparsesolve package.
package krylov

// NormalizeType selects how the per-iteration residual norm is scaled
// before being compared against ConvCri.
type NormalizeType int

const (
	// NormalizeByRHS normalises by the right-hand side's norm.
	NormalizeByRHS NormalizeType = iota
	// NormalizeByInitialResidual normalises by the initial
	// preconditioned residual's norm.
	NormalizeByInitialResidual
	// NormalizeByConstant normalises by Options.ConvNormalizeConst.
	NormalizeByConstant
)

// DivergeJudgeType selects the divergence-detection policy.
type DivergeJudgeType int

const (
	// DivergeJudgeNone never aborts early for divergence; only the
	// iteration cap terminates a non-converging run.
	DivergeJudgeNone DivergeJudgeType = iota
	// DivergeJudgeCounter aborts once the divergence counter reaches
	// Options.BadDivCountThres.
	DivergeJudgeCounter
)

// earlyExitRatio is the threshold, relative to ConvCri, below which an
// already-small initial residual short-circuits the iteration
// entirely. Both the SGS and IC preconditioning modes share this one
// constant.
const earlyExitRatio = 0.1

// smallAbsConvVal is the floor applied to the absolute convergence
// threshold so that AbsConvCri never collapses to zero for a
// near-zero right-hand side.
const smallAbsConvVal = 1e-20

// Options configures a single solve call. The solver is a pure
// function of (matrix, right-hand side, initial guess, Options); no
// state persists across calls.
type Options struct {
	// ConvCri is the relative convergence tolerance.
	ConvCri float64
	// MaxIte caps the number of iterations performed.
	MaxIte int
	// IsDiagScale enables the pre-solve diagonal scaling
	// D A D x̂ = D b.
	IsDiagScale bool
	// IsSaveBest enables best-iterate shadow tracking; on
	// non-convergence the returned solution is the shadow rather than
	// the final iterate.
	IsSaveBest bool
	// IsSaveResidualLog enables per-iteration residual logging,
	// retrievable from Result.ResidualLog.
	IsSaveResidualLog bool
	// DivergeJudgeType selects the divergence-detection policy.
	DivergeJudgeType DivergeJudgeType
	// BadDivVal is the multiple of the best-so-far normalised residual
	// beyond which an iteration counts toward divergence.
	BadDivVal float64
	// BadDivCountThres is the number of consecutive bad iterations
	// that triggers a diverged abort.
	BadDivCountThres int
	// ConvNormalizeType selects the residual normalisation policy.
	ConvNormalizeType NormalizeType
	// ConvNormalizeConst is the normaliser used when
	// ConvNormalizeType is NormalizeByConstant.
	ConvNormalizeConst float64
	// Concurrent enables row-partitioned concurrent SpMV against the
	// system matrix A. Triangular solves always run sequentially.
	Concurrent bool
}

// DefaultOptions returns reasonable defaults: relative tolerance
// 1e-10, a 1000-iteration cap, best-iterate tracking on, and
// divergence detection on with a bad-iteration multiple of 1e3 over
// 50 consecutive iterations.
func DefaultOptions() Options {
	return Options{
		ConvCri:           1e-10,
		MaxIte:            1000,
		IsSaveBest:        true,
		DivergeJudgeType:  DivergeJudgeCounter,
		BadDivVal:         1e3,
		BadDivCountThres:  50,
		ConvNormalizeType: NormalizeByRHS,
	}
}
