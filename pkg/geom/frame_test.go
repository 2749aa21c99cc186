package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
)

func TestFromBasisOrthonormalizes(t *testing.T) {
	const epsilon = 1e-9
	// Deliberately non-orthogonal, non-normalized inputs.
	x := r3.Vec{X: 2, Y: 0.1, Z: -0.3}
	y := r3.Vec{X: 0.5, Y: 3, Z: 0.2}

	fr, err := FromBasis(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !fr.IsRigid(1e-12) {
		t.Error("frame rotation is not rigid")
	}

	ex := fr.RotateVec(XAxis)
	ey := fr.RotateVec(YAxis)
	ez := fr.RotateVec(ZAxis)

	assertNear(t, ex, r3.Unit(x), epsilon)
	if d := r3.Dot(ex, ey); math.Abs(d) > epsilon {
		t.Errorf("ex·ey = %g, expected 0", d)
	}
	assertNear(t, ez, r3.Cross(ex, ey), epsilon)
}

func TestFromBasisDegenerate(t *testing.T) {
	if _, err := FromBasis(r3.Vec{}, YAxis); !errors.Is(err, errors.CodeDegenerateFrame) {
		t.Errorf("got %v, expected DEGENERATE_FRAME", err)
	}
	if _, err := FromBasis(XAxis, r3.Scale(3, XAxis)); !errors.Is(err, errors.CodeDegenerateFrame) {
		t.Errorf("got %v, expected DEGENERATE_FRAME", err)
	}
	// NaN inputs must be rejected, not propagated into the rotation.
	if _, err := FromBasis(r3.Vec{X: math.NaN()}, YAxis); !errors.Is(err, errors.CodeDegenerateFrame) {
		t.Errorf("got %v, expected DEGENERATE_FRAME for NaN input", err)
	}
	if _, err := FromBasis(XAxis, r3.Vec{Y: math.NaN()}); !errors.Is(err, errors.CodeDegenerateFrame) {
		t.Errorf("got %v, expected DEGENERATE_FRAME for NaN hint", err)
	}
}

func TestFrameFromFallback(t *testing.T) {
	const epsilon = 1e-9
	// Up hint parallel to the direction forces the fallback reference.
	fr, err := FrameFrom(XAxis, r3.Scale(-2, XAxis), ZAxis)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, fr.RotateVec(XAxis), XAxis, epsilon)
	assertNear(t, fr.RotateVec(YAxis), ZAxis, epsilon)

	// Both hints parallel: nothing left to span a frame with.
	if _, err := FrameFrom(XAxis, XAxis, r3.Scale(0.5, XAxis)); err == nil {
		t.Error("expected error when ref is parallel too")
	}
}
