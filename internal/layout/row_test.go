package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPlanRowUniform(t *testing.T) {
	got := PlanRow([]float64{1, 1, 1}, 20)
	want := []float64{-20, 0, 20}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Error(d)
	}
}

// Non-uniform widths still sum to zero, but the magnitudes shift with the
// widths.
func TestPlanRowNonUniform(t *testing.T) {
	got := PlanRow([]float64{2, 1, 1}, 1)
	sum := 0.0
	for _, o := range got {
		sum += o
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("offsets sum to %g, expected 0", sum)
	}
	if math.Abs(got[0]) == math.Abs(got[2]) {
		t.Errorf("got %v, expected asymmetric magnitudes for non-uniform widths", got)
	}
	// Gaps between adjacent key centers follow the widths: 1.5 then 1.
	if d := got[1] - got[0]; math.Abs(d-1.5) > 1e-12 {
		t.Errorf("got first gap %g, expected 1.5", d)
	}
	if d := got[2] - got[1]; math.Abs(d-1) > 1e-12 {
		t.Errorf("got second gap %g, expected 1", d)
	}
}

func TestPlanRowSymmetry(t *testing.T) {
	got := PlanRow([]float64{1, 1, 1, 1, 1, 1}, 20)
	for i := range got {
		if d := got[i] + got[len(got)-1-i]; math.Abs(d) > 1e-12 {
			t.Errorf("offsets %d and %d are not mirrored: %g and %g", i, len(got)-1-i, got[i], got[len(got)-1-i])
		}
	}
}

func TestPlanRowEmpty(t *testing.T) {
	if got := PlanRow(nil, 20); got != nil {
		t.Errorf("got %v, expected nil", got)
	}
}

// The reference scenario: 18mm keys with 2mm spacing on a 96mm arc give
// adjacent keys an angular pitch of 20/96 rad; ten keys span ±0.9375 rad.
func TestRowAnglesScenario(t *testing.T) {
	widths := make([]float64, 10)
	for i := range widths {
		widths[i] = 1
	}
	offsets := PlanRow(widths, 18+2)
	angles := RowAngles(offsets, 96)

	step := (18.0 + 2.0) / 96.0
	for i := 1; i < len(angles); i++ {
		if d := angles[i] - angles[i-1]; math.Abs(d-step) > 1e-12 {
			t.Errorf("adjacent angle %g, expected %g", d, step)
		}
	}
	if math.Abs(angles[0]+0.9375) > 1e-12 || math.Abs(angles[9]-0.9375) > 1e-12 {
		t.Errorf("got extremes %g and %g, expected ±0.9375", angles[0], angles[9])
	}
	if span := angles[9] - angles[0]; math.Abs(span-9*step) > 1e-12 {
		t.Errorf("got span %g, expected %g", span, 9*step)
	}
}
