package sparsesolve

import "errors"

// Sentinel errors returned by matrix and preconditioner operations.
// Callers may test for these with errors.Is; operations that detect a
// programmer error (a shape mismatch that should have been caught
// before the call was made) panic with the same sentinel instead of
// returning it, matching the mat.ErrShape convention gonum/mat uses.
var (
	// ErrMissingDiagonal is returned when an operation that presumes a
	// stored diagonal entry (diag_scaling, IC factorisation) finds a row
	// with no entry at column i.
	ErrMissingDiagonal = errors.New("sparsesolve: matrix is missing a stored diagonal entry")

	// ErrNonPositiveDiagonal is returned by IC factorisation when a
	// computed pivot L[i,i]^2 is not strictly positive.
	ErrNonPositiveDiagonal = errors.New("sparsesolve: incomplete Cholesky factorisation produced a non-positive diagonal")

	// ErrZeroRow is returned by ILU-T factorisation when a row of the
	// (permuted, accelerated) matrix has zero norm.
	ErrZeroRow = errors.New("sparsesolve: ILU-T factorisation encountered a zero row")

	// ErrDimensionMismatch is returned (or panicked with) when the
	// dimensions of matrices or vectors passed to an operator are
	// incompatible.
	ErrDimensionMismatch = errors.New("sparsesolve: dimension mismatch")
)
