// Package layout plans key positions within rows and orchestrates emission
// of one placement per component instance. Two nested curves are in play:
// the outer spiral places rows, and each row's own roll arc places its keys.
package layout

// PlanRow maps an ordered list of key widths (in abstract units) to centered
// 1D offsets along the row axis. Each key is placed at the center of its
// span of cumulative widths, and the whole row is then re-centered so the
// offsets sum to zero: a uniform row is symmetric about zero, while
// non-uniform widths shift keys by amounts consistent with their widths.
func PlanRow(widths []float64, unit float64) []float64 {
	if len(widths) == 0 {
		return nil
	}
	offsets := make([]float64, len(widths))
	total := 0.0
	for i, w := range widths {
		offsets[i] = (total + w/2) * unit
		total += w
	}
	mean := 0.0
	for _, o := range offsets {
		mean += o
	}
	mean /= float64(len(offsets))
	for i := range offsets {
		offsets[i] -= mean
	}
	return offsets
}

// RowAngles converts row offsets to angular displacements on the row's roll
// arc: angle = offset / radius. This is independent of where the row sits
// on the outer spiral.
func RowAngles(offsets []float64, radius float64) []float64 {
	angles := make([]float64, len(offsets))
	for i, o := range offsets {
		angles[i] = o / radius
	}
	return angles
}
