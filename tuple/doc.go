// Package tuple provides the fixed-size value type produced by dereferencing
// tuple-producing iterators.
//
// A Tuple is parameterized by its scalar type and by an arity marker. Go
// generics cannot size arrays by a type parameter, so every tuple carries a
// backing array of MaxComponents values and uses the first A.Components().
//
// # Usage
//
//	t := tuple.Of[float32, tuple.Three](1, 2, 2)
//	n := t.Norm() // 3
package tuple
