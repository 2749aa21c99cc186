package curves

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
	"keyforge/pkg/geom"
)

// Arc is a circular arc of constant radius. The parameter θ is measured from
// the arc's reference point, which sits at the bottom of the circle: the
// position is
//
//	origin + R·(sin θ · tangentAxis − (1 − cos θ) · radialAxis)
//
// where RadialAxis is the outward normal at θ=0. A component placed at θ
// receives a pure roll: a rotation by θ about the arc's sweep axis.
type Arc struct {
	Radius float64
	Origin r3.Vec

	// TangentAxis is the sweep direction at θ=0 and RadialAxis the outward
	// normal there. Both must be unit and orthogonal.
	TangentAxis r3.Vec
	RadialAxis  r3.Vec
}

// NewArc returns an arc with the keyboard-row convention: the row runs along
// x and the surface bowls upward, so the outward normal at the bottom of the
// circle points down.
func NewArc(radius float64, origin r3.Vec) (Arc, error) {
	if radius <= 0 {
		return Arc{}, errors.New(errors.CodeInvalidConfig, "arc radius must be positive, got %g", radius)
	}
	return Arc{
		Radius:      radius,
		Origin:      origin,
		TangentAxis: geom.XAxis,
		RadialAxis:  r3.Scale(-1, geom.ZAxis),
	}, nil
}

// SweepAxis returns the rotation axis of the arc.
func (a Arc) SweepAxis() r3.Vec {
	return r3.Cross(a.RadialAxis, a.TangentAxis)
}

// PointAt returns the arc sample at parameter theta.
func (a Arc) PointAt(theta float64) Point {
	sin, cos := math.Sincos(theta)
	pos := r3.Add(a.Origin, r3.Add(
		r3.Scale(a.Radius*sin, a.TangentAxis),
		r3.Scale(-a.Radius*(1-cos), a.RadialAxis),
	))
	return Point{
		Pos:     pos,
		Tangent: r3.Sub(r3.Scale(cos, a.TangentAxis), r3.Scale(sin, a.RadialAxis)),
		Normal:  r3.Add(r3.Scale(cos, a.RadialAxis), r3.Scale(sin, a.TangentAxis)),
	}
}

// Roll returns the rotation a component anchored at theta receives: the roll
// about the sweep axis that carries the θ=0 frame onto the frame at θ.
func (a Arc) Roll(theta float64) geom.Transform {
	return geom.FromAxisAngle(a.SweepAxis(), theta)
}

// Placement returns the full rigid transform for a component at theta: the
// roll about the sweep axis followed by the translation to the arc position.
func (a Arc) Placement(theta float64) geom.Transform {
	t := a.Roll(theta)
	t.T = a.PointAt(theta).Pos
	return t
}
