// Package assembly canonicalizes authored shapes and composes the per-instance
// transform stack: centering → intra-assembly offset → orientation tilt →
// curve placement. Shapes are never deformed; the package only ever returns
// placements for the consumer to apply.
package assembly

import (
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/geom"
)

// Flush selects which extremum of the flush axis is aligned to zero.
type Flush int

const (
	// FlushMax puts the maximum face at zero; the body extends below. This
	// is the keycap convention: the cap top is the canonical origin plane.
	FlushMax Flush = iota
	// FlushMin puts the minimum face at zero; the body extends above.
	FlushMin
)

func (f Flush) String() string {
	if f == FlushMin {
		return "min"
	}
	return "max"
}

// Conventions fixes a component's canonical local frame: centered in two
// axes, one extremum of the remaining axis flush with zero.
type Conventions struct {
	FlushAxis geom.Axis
	Flush     Flush
}

// DefaultConventions centers x/y and puts the top face at z=0.
var DefaultConventions = Conventions{FlushAxis: geom.AxisZ, Flush: FlushMax}

// Canonicalize computes the translation that maps a shape's authored origin
// to its canonical local origin. It inspects nothing beyond the six scalars
// of the box, and reapplying it to an already-canonical box yields the zero
// vector.
func Canonicalize(box geom.Box, conv Conventions) r3.Vec {
	offset := r3.Scale(-1, box.Center())
	switch conv.Flush {
	case FlushMin:
		offset = geom.WithComponent(offset, conv.FlushAxis, -geom.Component(box.Min, conv.FlushAxis))
	default:
		offset = geom.WithComponent(offset, conv.FlushAxis, -geom.Component(box.Max, conv.FlushAxis))
	}
	return offset
}
