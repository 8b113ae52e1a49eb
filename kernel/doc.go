// Package kernel implements vector magnitude and central-difference gradient
// once per access shape, so the same arithmetic runs over raw planar
// buffers, interleaved buffers, facade iterators, and capability containers.
//
// Kernels are single-threaded pure functions of their inputs. They write
// only the output at indices derived from their range, and they perform no
// bounds checks beyond Go's own. Shard runs any span-form kernel over
// disjoint sub-ranges in parallel.
//
// The magnitude loops come in two shapes, a plain loop and a four-way
// unrolled one, selected once at init from the host ISA. Both do the same
// per-element arithmetic and produce identical results.
package kernel
