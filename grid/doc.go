// Package grid describes structured nx × ny × nz point grids flattened with
// x fastest, the inclusive index extents kernels iterate, and the analytic
// fields used to fill them.
//
// The flat index of cell (i, j, k) is k*nx*ny + j*nx + i.
package grid
