package curves

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
	"keyforge/pkg/geom"
)

// GoldenRatio is φ, the decay base of the spiral.
const GoldenRatio = 1.618033988749895

// decay is the per-radian exponential decay rate: r(θ) = r₀·φ^(−θ/(π/2))
// differentiates to r′ = −decay·r.
var decay = math.Log(GoldenRatio) / (math.Pi / 2)

// Spiral is a logarithmic spiral embedded in the x–z plane whose radius
// shrinks by a factor of φ every quarter turn:
//
//	r(θ) = r₀ · φ^(−θ / (π/2))
//	position(θ) = origin + (−r cos θ, 0, r sin θ)
//
// θ is unbounded upward; r₀ is a design constant, not derived. The plane
// normal is fixed per run.
type Spiral struct {
	R0     float64
	Origin r3.Vec

	// PlaneAxis is the normal of the embedding plane and Fallback the
	// reference axis used for the outward normal when the tangent is
	// parallel to PlaneAxis (degenerate only for non-default planes).
	PlaneAxis r3.Vec
	Fallback  r3.Vec
}

// NewSpiral returns a spiral with the default x–z embedding plane.
func NewSpiral(r0 float64, origin r3.Vec) (Spiral, error) {
	if r0 <= 0 {
		return Spiral{}, errors.New(errors.CodeInvalidConfig, "spiral start radius must be positive, got %g", r0)
	}
	return Spiral{
		R0:        r0,
		Origin:    origin,
		PlaneAxis: geom.YAxis,
		Fallback:  geom.ZAxis,
	}, nil
}

// RadiusAt returns r(θ).
func (s Spiral) RadiusAt(theta float64) float64 {
	return s.R0 * math.Pow(GoldenRatio, -theta/(math.Pi/2))
}

// PointAt returns the spiral sample at parameter theta.
func (s Spiral) PointAt(theta float64) Point {
	r := s.RadiusAt(theta)
	sin, cos := math.Sincos(theta)

	pos := r3.Add(s.Origin, r3.Vec{X: -r * cos, Z: r * sin})

	// d/dθ of (−r cos θ, 0, r sin θ) with r′ = −decay·r.
	d := r3.Vec{
		X: r * (decay*cos + sin),
		Z: r * (cos - decay*sin),
	}
	tangent := r3.Unit(d)

	normal := r3.Cross(tangent, s.PlaneAxis)
	if geom.NearZero(normal, 1e-9) {
		normal = r3.Cross(tangent, s.Fallback)
	}
	return Point{
		Pos:     pos,
		Tangent: tangent,
		Normal:  r3.Unit(normal),
	}
}
