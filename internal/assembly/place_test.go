package assembly

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
	"keyforge/pkg/geom"
)

func prepared(t *testing.T, id string, box geom.Box, conv Conventions, offset r3.Vec) Component {
	t.Helper()
	c, err := Prepare(ComponentSpec{ID: id, Shape: StaticShape{ID: id, Box: box}, Conv: conv, Offset: offset})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPrepareComputesCenteringOnce(t *testing.T) {
	box := geom.NewBox(r3.Vec{X: 2, Y: -4, Z: 1}, r3.Vec{X: 20, Y: 14, Z: 6})
	c := prepared(t, "keycap", box, DefaultConventions, r3.Vec{})
	assertNear(t, c.Centering, r3.Vec{X: -11, Y: -5, Z: -6}, 1e-12)
	if got := c.CanonicalBox().Max.Z; got != 0 {
		t.Errorf("got canonical max z = %g, expected 0", got)
	}
}

func TestPreparePropagatesGeometryFailure(t *testing.T) {
	_, err := Prepare(ComponentSpec{ID: "ghost", Shape: StaticShape{ID: "ghost"}})
	if !errors.Is(err, errors.CodeGeometryUnavailable) {
		t.Errorf("got %v, expected GEOMETRY_UNAVAILABLE", err)
	}
}

// Rigid attachment: the dependent's world position must equal T + R·Δ, and
// its rotation must equal the primary's, across the rotation grid the layout
// actually uses.
func TestPlaceInstanceRigidAttachment(t *testing.T) {
	const epsilon = 1e-12

	delta := r3.Vec{X: 0.5, Y: -2, Z: -7.3}

	orientations := []geom.Transform{
		geom.Identity,
		geom.RotateX(math.Pi / 4),
		geom.RotateX(math.Pi / 2),
		geom.Compose(geom.RotateX(math.Pi/4), geom.RotateY(math.Pi/6)),  // pitch 45°, roll 30°
		geom.Compose(geom.RotateX(math.Pi/4), geom.RotateY(-math.Pi/6)), // pitch 45°, roll −30°
	}
	curvePlacements := []geom.Transform{
		geom.Translate(r3.Vec{X: 30, Y: 4, Z: -12}),
		geom.Compose(geom.RotateY(0.2083), geom.Translate(r3.Vec{X: 20, Z: 2})),
		geom.Compose(geom.FromAxisAngle(r3.Vec{X: 1, Y: 1, Z: 1}, 1.1), geom.Translate(r3.Vec{Y: -96})),
	}

	for _, orient := range orientations {
		for _, curve := range curvePlacements {
			// Zero centering isolates the attachment math.
			primary := Component{ID: "keycap"}
			dep := Component{ID: "switch", Offset: delta}

			got := PlaceInstance(primary, []Component{dep}, orient, curve)

			p := got["keycap"]
			d := got["switch"]

			if p.R != d.R {
				// Quaternions are composed identically for both, so this
				// must hold bit for bit, not just within tolerance.
				t.Fatalf("dependent rotation differs from primary: %v vs %v", d.R, p.R)
			}
			want := r3.Add(p.T, p.RotateVec(delta))
			assertNear(t, d.T, want, epsilon)
		}
	}
}

func TestPlaceInstanceIncludesCentering(t *testing.T) {
	const epsilon = 1e-12
	capBox := geom.NewBox(r3.Vec{X: -9, Y: -9, Z: 10}, r3.Vec{X: 9, Y: 9, Z: 15})
	primary := prepared(t, "keycap", capBox, DefaultConventions, r3.Vec{})

	curve := geom.Translate(r3.Vec{X: 5})
	got := PlaceInstance(primary, nil, geom.Identity, curve)

	// The authored top-center of the cap lands on the curve point.
	topCenter := r3.Vec{Z: 15}
	assertNear(t, got["keycap"].Apply(topCenter), r3.Vec{X: 5}, epsilon)
}

func TestAttachBelowDerivesOffsetFromBoxes(t *testing.T) {
	const epsilon = 1e-12
	capBox := geom.NewBox(r3.Vec{X: -9, Y: -9, Z: 0}, r3.Vec{X: 9, Y: 9, Z: 5})
	swBox := geom.NewBox(r3.Vec{X: -7, Y: -7, Z: 0}, r3.Vec{X: 7, Y: 7, Z: 11})

	cap := prepared(t, "keycap", capBox, DefaultConventions, r3.Vec{})

	// Whatever flush convention the switch was authored with, the derived
	// offset must put its top face the same gap below the cap's bottom.
	for _, conv := range []Conventions{
		{FlushAxis: geom.AxisZ, Flush: FlushMax},
		{FlushAxis: geom.AxisZ, Flush: FlushMin},
	} {
		sw := prepared(t, "switch", swBox, conv, r3.Vec{})
		off := cap.AttachBelow(sw, 2)

		swTop := geom.Component(sw.CanonicalBox().Max, geom.AxisZ) + off.Z
		capBottom := geom.Component(cap.CanonicalBox().Min, geom.AxisZ)
		if got := capBottom - swTop; math.Abs(got-2) > epsilon {
			t.Errorf("flush %v: gap %g, expected 2", conv.Flush, got)
		}
		if off.X != 0 || off.Y != 0 {
			t.Errorf("flush %v: offset %v leaks into non-flush axes", conv.Flush, off)
		}
	}
}

func TestPlacementsStayRigid(t *testing.T) {
	primary := Component{ID: "keycap"}
	dep := Component{ID: "switch", Offset: r3.Vec{Z: -10}}
	orient := geom.Compose(geom.RotateX(math.Pi/4), geom.RotateY(math.Pi/6))
	curve := geom.Compose(geom.FromAxisAngle(r3.Vec{X: 0.3, Y: 1, Z: -2}, 0.77), geom.Translate(r3.Vec{X: 1, Y: 2, Z: 3}))

	for id, tr := range PlaceInstance(primary, []Component{dep}, orient, curve) {
		if !tr.IsRigid(1e-9) {
			t.Errorf("%s: placement is not rigid", id)
		}
		if quat.Abs(tr.R) == 0 {
			t.Errorf("%s: zero rotation", id)
		}
	}
}
