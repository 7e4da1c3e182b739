/*
Package spblas provides the sparse BLAS-style kernels that the CSR
matrix's SpMV is built from: sparse·dense dot products, sparse AXPY
updates, and sparse-matrix-times-dense-vector multiply, for both real
(float64) and complex (complex128) scalars. The triangular solve
primitives are direct row loops and do not call these kernels.

Naming follows the Sparse BLAS Toolkit convention the originating
routines were modelled on (Dus- prefix for real double precision,
Zus- for complex double precision): Dusdot, Dusaxpy, Dusmv and their
Zus- counterparts.
*/
package spblas
