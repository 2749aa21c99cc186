package assembly

import (
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/geom"
)

// PlaceInstance produces the final transform for every component of one
// logical instance.
//
// The primary's transform is Compose(centering, orientation, curvePlacement).
// Each attached component shares the primary's combined rotation exactly;
// only its translation differs, by the attachment offset expressed in the
// primary's local frame and rotated by the combined rotation before being
// added to the curve position. Applying the offset in world axes instead
// breaks rigid attachment as soon as the instance tilts.
func PlaceInstance(primary Component, attached []Component, orientation, curvePlacement geom.Transform) map[string]geom.Transform {
	anchor := geom.Compose(orientation, curvePlacement)

	out := make(map[string]geom.Transform, 1+len(attached))
	out[primary.ID] = geom.Compose(geom.Translate(primary.Centering), anchor)
	for _, dep := range attached {
		attach := geom.Transform{
			R: anchor.R,
			T: r3.Add(anchor.T, anchor.RotateVec(dep.Offset)),
		}
		out[dep.ID] = geom.Compose(geom.Translate(dep.Centering), attach)
	}
	return out
}
