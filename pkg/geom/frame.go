package geom

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
)

// frameEps is the squared-magnitude threshold below which two frame vectors
// are considered parallel.
const frameEps = 1e-9

// FromBasis returns the rotation that maps the standard basis onto the frame
// spanned by x and y: the first basis vector becomes the unit direction of
// x, the second the component of y orthogonal to it, and the third their
// cross product. The inputs need not be orthogonal or normalized;
// Gram–Schmidt re-orthogonalization absorbs the floating rounding left by
// upstream cross products.
//
// If x is near zero or y is near parallel to x, FromBasis fails with a
// DEGENERATE_FRAME error; callers recover by substituting a fallback
// reference axis.
func FromBasis(x, y r3.Vec) (Transform, error) {
	// NaN compares false against every threshold, so it has to be caught
	// before the magnitude checks.
	if IsNaN(x) || IsNaN(y) {
		return Transform{}, errors.New(errors.CodeDegenerateFrame, "frame vectors contain NaN")
	}
	if NearZero(x, frameEps) {
		return Transform{}, errors.New(errors.CodeDegenerateFrame, "frame x vector is near zero")
	}
	ex := r3.Unit(x)
	ey := r3.Sub(y, r3.Scale(r3.Dot(y, ex), ex))
	if NearZero(ey, frameEps) {
		return Transform{}, errors.New(errors.CodeDegenerateFrame, "frame vectors are near parallel")
	}
	ey = r3.Unit(ey)
	ez := r3.Cross(ex, ey)

	// Columns of the rotation matrix are the images of the basis vectors.
	m := mat.NewDense(3, 3, []float64{
		ex.X, ey.X, ez.X,
		ex.Y, ey.Y, ez.Y,
		ex.Z, ey.Z, ez.Z,
	})
	return Transform{R: quatFromMatrix(m)}, nil
}

// FrameFrom builds a full orthonormal frame rotation from a primary
// direction and an up hint, falling back to ref when the hint is parallel to
// the primary direction. It never fails for a nonzero primary direction as
// long as ref is not parallel to it as well.
func FrameFrom(dir, up, ref r3.Vec) (Transform, error) {
	t, err := FromBasis(dir, up)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, errors.CodeDegenerateFrame) {
		return Transform{}, err
	}
	return FromBasis(dir, ref)
}
