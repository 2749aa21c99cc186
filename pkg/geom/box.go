package geom

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis-aligned bounding box. It is the only view of a shape's
// geometry this package ever needs: positioning is done exclusively by
// returning transforms, never by editing vertices.
type Box struct {
	Min r3.Vec
	Max r3.Vec
}

// NewBox returns the box spanning the two corner points, normalizing the
// corners so that Min ≤ Max holds per axis.
func NewBox(a, b r3.Vec) Box {
	return Box{
		Min: r3.Vec{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: r3.Vec{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

func (b Box) String() string {
	return fmt.Sprintf("X[%g, %g] Y[%g, %g] Z[%g, %g]",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}

// Center returns the center point of the box.
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Size returns the extent of the box along each axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Translate returns the box moved by v.
func (b Box) Translate(v r3.Vec) Box {
	return Box{
		Min: r3.Add(b.Min, v),
		Max: r3.Add(b.Max, v),
	}
}

// IsEmpty reports whether the box has zero or negative extent on any axis.
func (b Box) IsEmpty() bool {
	s := b.Size()
	return s.X <= 0 || s.Y <= 0 || s.Z <= 0
}
