package curves

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/pkg/errors"
)

// arclenSamples is the number of uniform sub-samples used for the
// piecewise-linear arc-length estimate. 50 is the accuracy/cost tradeoff
// this layout needs: at row-spacing scales the chord error is far below the
// solve tolerance.
const arclenSamples = 50

// DefaultTolerance is the absolute arc-length tolerance used when callers
// don't have a better one, in the same length unit as the radius.
const DefaultTolerance = 0.01

// DefaultMaxIterations caps the bisection in SolveForArclen.
const DefaultMaxIterations = 100

// Arclen estimates the arc length of a curve between the two parameters by
// summing chord lengths over uniform sub-samples. The result is symmetric
// in its arguments.
func Arclen(c Curve, theta0, theta1 float64) float64 {
	if theta1 < theta0 {
		theta0, theta1 = theta1, theta0
	}
	step := (theta1 - theta0) / arclenSamples
	sum := 0.0
	prev := c.PointAt(theta0).Pos
	for i := 1; i <= arclenSamples; i++ {
		p := c.PointAt(theta0 + float64(i)*step).Pos
		sum += r3.Norm(r3.Sub(p, prev))
		prev = p
	}
	return sum
}

// Arclen estimates the spiral's arc length between the two parameters.
func (s Spiral) Arclen(theta0, theta1 float64) float64 {
	return Arclen(s, theta0, theta1)
}

// SolveForArclen finds the parameter that lies the given arc length past
// thetaStart, by bisection over a window of one full turn. Arc length is
// monotonically increasing in θ for this spiral, so bisection cannot
// misconverge.
//
// The solve succeeds when the re-integrated length is within tolerance of
// the target. If the iteration cap is reached first, the best estimate is
// returned together with a NON_CONVERGENCE error; the angle is still usable
// for layout, with bounded error. A target of zero returns thetaStart
// exactly.
func (s Spiral) SolveForArclen(thetaStart, length, tolerance float64, maxIterations int) (float64, error) {
	if length < 0 {
		return thetaStart, errors.New(errors.CodeInvalidConfig, "arc length target must be non-negative, got %g", length)
	}
	if length == 0 {
		return thetaStart, nil
	}

	lo, hi := thetaStart, thetaStart+2*math.Pi
	mid := hi
	for iter := 0; iter < maxIterations; iter++ {
		mid = 0.5 * (lo + hi)
		got := s.Arclen(thetaStart, mid)
		if math.Abs(got-length) <= tolerance {
			return mid, nil
		}
		if got < length {
			lo = mid
		} else {
			hi = mid
		}
	}
	off := math.Abs(s.Arclen(thetaStart, mid) - length)
	return mid, errors.New(errors.CodeNonConvergence,
		"arc length %g from θ=%g not matched within %d iterations (off by %g)",
		length, thetaStart, maxIterations, off)
}
