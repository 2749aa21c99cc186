package assembly

import (
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
	"keyforge/pkg/geom"
)

// Shape is an opaque external geometry asset. The placement engine only ever
// sees its axis-aligned bounding box; loading, meshing, and boolean work are
// someone else's job.
type Shape interface {
	// Bounds returns the shape's axis-aligned bounding box in authored
	// coordinates. It fails when the external collaborator cannot supply
	// the box, in which case no canonicalization can proceed.
	Bounds() (geom.Box, error)
}

// StaticShape is a shape whose bounding box is known up front, as produced
// by the external geometry loader.
type StaticShape struct {
	ID  string
	Box geom.Box
}

func (s StaticShape) Bounds() (geom.Box, error) {
	if s.Box.IsEmpty() {
		return geom.Box{}, errors.New(errors.CodeGeometryUnavailable, "shape %q has an empty bounding box", s.ID)
	}
	return s.Box, nil
}

// ComponentSpec names a component, the shape it instantiates, its canonical
// frame conventions, and, for dependents, the local-frame attachment
// offset to its primary.
type ComponentSpec struct {
	ID     string
	Shape  Shape
	Conv   Conventions
	Offset r3.Vec
}

// Component is a prepared component: its canonicalizing translation is
// computed exactly once here and shared by every instance placed afterwards.
type Component struct {
	ID        string
	Centering r3.Vec
	Offset    r3.Vec

	box  geom.Box
	conv Conventions
}

// Prepare canonicalizes the spec's shape. Bounding-box failures propagate;
// nothing can be placed without the box.
func Prepare(spec ComponentSpec) (Component, error) {
	box, err := spec.Shape.Bounds()
	if err != nil {
		return Component{}, errors.Wrap(errors.CodeGeometryUnavailable, err, "preparing component %q", spec.ID)
	}
	return Component{
		ID:        spec.ID,
		Centering: Canonicalize(box, spec.Conv),
		Offset:    spec.Offset,
		box:       box,
		conv:      spec.Conv,
	}, nil
}

// CanonicalBox returns the component's bounding box in its canonical frame.
func (c Component) CanonicalBox() geom.Box {
	return c.box.Translate(c.Centering)
}

// AttachBelow derives the local offset that hangs dep below c along the
// flush axis, leaving gap between c's bottom face and dep's top face. The
// offset is read off both shapes' own boxes, so it stays correct whichever
// flush convention either side uses.
func (c Component) AttachBelow(dep Component, gap float64) r3.Vec {
	axis := c.conv.FlushAxis
	primaryBottom := geom.Component(c.CanonicalBox().Min, axis)
	depTop := geom.Component(dep.CanonicalBox().Max, axis)
	return geom.WithComponent(r3.Vec{}, axis, primaryBottom-gap-depTop)
}
