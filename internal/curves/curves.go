// Package curves models the two 1D-parameter curves the keyboard surface is
// built from: a circular arc placing keys within a row, and a logarithmic
// golden spiral placing rows. Both expose position, unit tangent, and unit
// outward normal at a scalar parameter, and the spiral additionally supports
// arc-length measurement and inversion.
//
// All parameter→geometry mappings are pure functions of the parameter and
// the curve's constants.
package curves

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a sample of a curve: position, unit tangent in the direction of
// increasing parameter, and unit outward normal.
type Point struct {
	Pos     r3.Vec
	Tangent r3.Vec
	Normal  r3.Vec
}

// Curve is a 1D-parameter curve embedded in 3D. The parameter is an angle in
// radians; its zero convention is curve-specific.
type Curve interface {
	PointAt(theta float64) Point
}
