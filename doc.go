/*
Package sparsesolve provides the sparse matrix core of a family of
preconditioned Krylov-subspace iterative solvers for large sparse
systems A x = b, over real (float64) and complex (complex128) scalars.

The package is organised the way sparse matrix formats usually are: a
creational format (Builder/BuilderC) suited to incremental construction,
and an operational format (CSR/CSRC, Compressed Sparse Row) suited to
the arithmetic the solvers need — SpMV, transpose, triangular
extraction and diagonal scaling. A typical pipeline builds a matrix
incrementally with a Builder and finalises it to a CSR for use with the
preconditioners in the precond subpackage and the iterative drivers in
the krylov subpackage.

CSR and CSRC implement gonum's mat.Matrix interface, so they may be
used with gonum/mat functions that accept Matrix types, e.g. for
comparison against a dense reference in tests.
*/
package sparsesolve
