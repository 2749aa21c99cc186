// Package geom provides 3D rigid-body transform algebra for placement
// computations: axis-aligned boxes, rotation+translation transforms with a
// fixed innermost-first composition convention, and orthonormal frame
// construction.
//
// Vectors are [r3.Vec] values and rotations are unit quaternions. A
// [Transform] never scales or shears; composing any sequence of rigid
// transforms yields a rigid transform.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Unit axis vectors.
var (
	XAxis = r3.Vec{X: 1}
	YAxis = r3.Vec{Y: 1}
	ZAxis = r3.Vec{Z: 1}
)

// Axis selects one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Vector returns the unit vector along a.
func (a Axis) Vector() r3.Vec {
	switch a {
	case AxisX:
		return XAxis
	case AxisY:
		return YAxis
	default:
		return ZAxis
	}
}

// Component returns the component of v along a.
func Component(v r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its component along a replaced by f.
func WithComponent(v r3.Vec, a Axis, f float64) r3.Vec {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// NearZero reports whether v has magnitude below eps.
func NearZero(v r3.Vec, eps float64) bool {
	return r3.Norm2(v) < eps*eps
}

// IsNaN reports whether at least one component of v is NaN.
func IsNaN(v r3.Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}
