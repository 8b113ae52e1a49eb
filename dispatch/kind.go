package dispatch

import (
	"fmt"

	"github.com/hupe1980/agnostic/array"
	"github.com/hupe1980/agnostic/tuple"
)

// Kind identifies a member of the closed storage set.
type Kind uint8

const (
	// KindUnknown is not a member.
	KindUnknown Kind = iota
	PlanarFloat32x1
	PlanarFloat32x3
	PlanarFloat64x1
	PlanarFloat64x3
	InterleavedFloat32x3
	InterleavedFloat64x3
)

var kindNames = [...]string{
	KindUnknown:          "unknown",
	PlanarFloat32x1:      "planar<float32,1>",
	PlanarFloat32x3:      "planar<float32,3>",
	PlanarFloat64x1:      "planar<float64,1>",
	PlanarFloat64x3:      "planar<float64,3>",
	InterleavedFloat32x3: "interleaved<float32,3>",
	InterleavedFloat64x3: "interleaved<float64,3>",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns the closed set in match order.
func Kinds() []Kind {
	return []Kind{
		PlanarFloat32x1,
		PlanarFloat32x3,
		PlanarFloat64x1,
		PlanarFloat64x3,
		InterleavedFloat32x3,
		InterleavedFloat64x3,
	}
}

// Resolve reports which member a is, without invoking anything.
func Resolve(a array.Array) (Kind, bool) {
	switch a.(type) {
	case *array.Planar[float32, tuple.One]:
		return PlanarFloat32x1, true
	case *array.Planar[float32, tuple.Three]:
		return PlanarFloat32x3, true
	case *array.Planar[float64, tuple.One]:
		return PlanarFloat64x1, true
	case *array.Planar[float64, tuple.Three]:
		return PlanarFloat64x3, true
	case *array.Interleaved[float32, tuple.Three]:
		return InterleavedFloat32x3, true
	case *array.Interleaved[float64, tuple.Three]:
		return InterleavedFloat64x3, true
	default:
		return KindUnknown, false
	}
}
