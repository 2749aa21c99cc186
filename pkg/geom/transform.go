package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
)

// Transform is a rigid-body transform: a rotation followed by a translation.
// The rotation is stored as a unit quaternion, which keeps compositions free
// of the shear and scale drift that accumulates in naive matrix products.
//
// Composition order is innermost-first throughout this package:
// Compose(A, B, C) applies A, then B, then C, i.e. the algebraic product
// C·B·A.
type Transform struct {
	R quat.Number
	T r3.Vec
}

// Identity is the identity transform.
var Identity = Transform{R: quat.Number{Real: 1}}

// Translate returns a pure translation by v.
func Translate(v r3.Vec) Transform {
	return Transform{R: quat.Number{Real: 1}, T: v}
}

// FromAxisAngle returns a rotation of angle radians about axis. The axis
// need not be normalized. The convention is right-handed: with the axis
// pointing at the viewer, positive angles rotate anti-clockwise.
func FromAxisAngle(axis r3.Vec, angle float64) Transform {
	u := r3.Unit(axis)
	sin, cos := math.Sincos(0.5 * angle)
	return Transform{R: quat.Number{
		Real: cos,
		Imag: u.X * sin,
		Jmag: u.Y * sin,
		Kmag: u.Z * sin,
	}}
}

// RotateX returns a rotation of angle radians about the x axis.
func RotateX(angle float64) Transform { return FromAxisAngle(XAxis, angle) }

// RotateY returns a rotation of angle radians about the y axis.
func RotateY(angle float64) Transform { return FromAxisAngle(YAxis, angle) }

// RotateZ returns a rotation of angle radians about the z axis.
func RotateZ(angle float64) Transform { return FromAxisAngle(ZAxis, angle) }

// Then returns the transform that applies t first and next second.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		R: quat.Mul(next.R, t.R),
		T: r3.Add(next.RotateVec(t.T), next.T),
	}
}

// Compose composes transforms innermost-first: the first argument is applied
// first. Compose() returns the identity.
func Compose(ts ...Transform) Transform {
	out := Identity
	for _, t := range ts {
		out = out.Then(t)
	}
	return out
}

// RotateVec applies only the rotation part of t to v.
func (t Transform) RotateVec(v r3.Vec) r3.Vec {
	return r3.Rotation(t.R).Rotate(v)
}

// Apply maps the point p through t.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.RotateVec(p), t.T)
}

// Rotation returns t with its translation removed.
func (t Transform) Rotation() Transform {
	return Transform{R: t.R}
}

// Normalize returns t with its rotation quaternion scaled back to unit
// magnitude. Float accumulation across many compositions drifts the
// magnitude slightly; normalizing restores rigidity.
func (t Transform) Normalize() Transform {
	n := quat.Abs(t.R)
	if n == 0 || math.IsNaN(n) {
		return Transform{R: quat.Number{Real: 1}, T: t.T}
	}
	return Transform{R: quat.Scale(1/n, t.R), T: t.T}
}

// RotationMatrix returns the 3×3 rotation matrix of t.
func (t Transform) RotationMatrix() *mat.Dense {
	q := t.Normalize().R
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

// IsRigid reports whether the rotation block of t is orthonormal with
// determinant +1, within tol.
func (t Transform) IsRigid(tol float64) bool {
	m := t.RotationMatrix()
	var mtm mat.Dense
	mtm.Mul(m.T(), m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(mtm.At(i, j)-want) > tol {
				return false
			}
		}
	}
	return math.Abs(mat.Det(m)-1) <= tol
}

// Placement is the engine-native placement representation: a position and a
// proper rotation expressed as axis-angle.
type Placement struct {
	Position r3.Vec
	Axis     r3.Vec
	Angle    float64
}

// ToPlacement extracts the translation and rotation of t. The rotation is
// renormalized first so the result is always a proper orthonormal rotation;
// a transform whose rotation has collapsed to zero magnitude is rejected.
func (t Transform) ToPlacement() (Placement, error) {
	if n := quat.Abs(t.R); n == 0 || math.IsNaN(n) {
		return Placement{}, errors.New(errors.CodeInternal, "rotation has zero magnitude, cannot extract placement")
	}
	q := t.Normalize().R
	// Keep the scalar part non-negative so the reported angle is in [0, π].
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	angle := 2 * math.Acos(math.Min(q.Real, 1))
	axis := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	if NearZero(axis, 1e-12) {
		axis = ZAxis // identity rotation, any axis will do
	} else {
		axis = r3.Unit(axis)
	}
	return Placement{Position: t.T, Axis: axis, Angle: angle}, nil
}

// Transform converts the placement back to a transform.
func (p Placement) Transform() Transform {
	t := FromAxisAngle(p.Axis, p.Angle)
	t.T = p.Position
	return t
}

// FromMatrix builds a rotation transform from a 3×3 matrix. Matrices with
// small numerical drift are projected onto the nearest proper rotation via
// SVD; matrices that are not close to a rotation (negative determinant after
// projection, or non-finite entries) are rejected.
func FromMatrix(m mat.Matrix) (Transform, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return Transform{}, errors.New(errors.CodeInternal, "rotation matrix must be 3×3, got %d×%d", r, c)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return Transform{}, errors.New(errors.CodeInternal, "SVD of rotation matrix failed")
	}
	var u, v, proj mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	proj.Mul(&u, v.T())

	if d := mat.Det(&proj); d < 0 {
		return Transform{}, errors.New(errors.CodeInternal, "matrix is a reflection, not a rotation (det %g)", d)
	}

	return Transform{R: quatFromMatrix(&proj)}, nil
}

// quatFromMatrix converts a proper rotation matrix to a unit quaternion
// using Shepperd's method: branch on the largest diagonal term to keep the
// divisor well away from zero.
func quatFromMatrix(m *mat.Dense) quat.Number {
	m00, m01, m02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m10, m11, m12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m20, m21, m22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	var q quat.Number
	if tr := m00 + m11 + m22; tr > 0 {
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{
			Real: 0.25 * s,
			Imag: (m21 - m12) / s,
			Jmag: (m02 - m20) / s,
			Kmag: (m10 - m01) / s,
		}
	} else if m00 > m11 && m00 > m22 {
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: 0.25 * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	} else if m11 > m22 {
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: 0.25 * s,
			Kmag: (m12 + m21) / s,
		}
	} else {
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: 0.25 * s,
		}
	}
	return quat.Scale(1/quat.Abs(q), q)
}
