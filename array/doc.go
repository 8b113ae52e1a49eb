// Package array provides tuple-indexed storage facades over caller-owned
// buffers and the compile-time tag dispatch that lets generic algorithms
// iterate any storage without knowing its physical layout.
//
// # Storages
//
//   - Planar: one buffer per component (structure of arrays)
//   - Interleaved: one buffer of consecutive tuples (array of structures)
//
// Storages never allocate, copy or resize. The caller owns every buffer and
// must keep it alive, unchanged in length, while iteration is in flight.
//
// # Tags
//
// A storage declares the dispatch protocol it supports through
// StorageTag(). Dispatch is constrained on IteratorPairStorage, so the
// selection happens when the generic call is instantiated, not at run time:
//
//	array.Dispatch(storage, func(begin, end array.PlanarIterator[float32, tuple.Three]) {
//	    for it := begin; !it.Equal(end); it = it.Next() {
//	        _ = it.At(0)
//	    }
//	})
package array
