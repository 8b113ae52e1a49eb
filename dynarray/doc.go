// Package dynarray models the capability-style dynamic arrays of an external
// data-processing toolkit: containers reached only through virtual-style
// calls that exchange float64 values, regardless of the stored scalar type.
//
// VectorTemplate is the mapped three-component container over caller-owned
// planar buffers. DataArray is the conventional interleaved container. Both
// satisfy Container, and Adapter is the thin wrapper kernels use to reach
// them.
//
// GetTuple returns a scratch buffer owned by the container that is
// overwritten by the next GetTuple on the same container. Adapter.Tuple
// copies out of that buffer before returning, and Shard gives every
// goroutine a container with its own scratch.
package dynarray
