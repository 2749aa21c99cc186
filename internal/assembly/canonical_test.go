package assembly

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/geom"
)

func assertNear(t *testing.T, got, want r3.Vec, epsilon float64) {
	t.Helper()
	if d := r3.Norm(r3.Sub(got, want)); d > epsilon {
		t.Fatalf("got %v, expected %v (off by %g)", got, want, d)
	}
}

func TestCanonicalize(t *testing.T) {
	// The keycap mesh from the original asset: authored well away from the
	// origin, canonicalized by centering x/y and flushing the top to z=0.
	box := geom.NewBox(r3.Vec{X: 2, Y: -4, Z: 1}, r3.Vec{X: 20, Y: 14, Z: 6})

	off := Canonicalize(box, DefaultConventions)
	assertNear(t, off, r3.Vec{X: -11, Y: -5, Z: -6}, 1e-12)

	canon := box.Translate(off)
	assertNear(t, canon.Min, r3.Vec{X: -9, Y: -9, Z: -5}, 1e-12)
	assertNear(t, canon.Max, r3.Vec{X: 9, Y: 9, Z: 0}, 1e-12)
}

func TestCanonicalizeFlushMin(t *testing.T) {
	box := geom.NewBox(r3.Vec{X: -3, Y: 1, Z: 2}, r3.Vec{X: 5, Y: 9, Z: 10})
	off := Canonicalize(box, Conventions{FlushAxis: geom.AxisZ, Flush: FlushMin})
	canon := box.Translate(off)
	if canon.Min.Z != 0 {
		t.Errorf("got min z = %g, expected 0", canon.Min.Z)
	}
	assertNear(t, canon.Center(), r3.Vec{Z: 4}, 1e-12)
}

func TestCanonicalizeOtherFlushAxis(t *testing.T) {
	box := geom.NewBox(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 7, Y: 10, Z: 5})
	off := Canonicalize(box, Conventions{FlushAxis: geom.AxisX, Flush: FlushMax})
	canon := box.Translate(off)
	if canon.Max.X != 0 {
		t.Errorf("got max x = %g, expected 0", canon.Max.X)
	}
	if c := canon.Center(); c.Y != 0 || c.Z != 0 {
		t.Errorf("got center %v, expected y and z centered", c)
	}
}

// Canonicalizing an already-canonical box must yield the zero vector.
func TestCanonicalizeIdempotent(t *testing.T) {
	boxes := []geom.Box{
		geom.NewBox(r3.Vec{X: 2, Y: -4, Z: 1}, r3.Vec{X: 20, Y: 14, Z: 6}),
		geom.NewBox(r3.Vec{X: -50, Y: -50, Z: -3}, r3.Vec{X: -10, Y: 30, Z: 3}),
	}
	convs := []Conventions{
		DefaultConventions,
		{FlushAxis: geom.AxisZ, Flush: FlushMin},
		{FlushAxis: geom.AxisY, Flush: FlushMax},
	}
	for _, box := range boxes {
		for _, conv := range convs {
			canon := box.Translate(Canonicalize(box, conv))
			assertNear(t, Canonicalize(canon, conv), r3.Vec{}, 1e-12)
		}
	}
}
