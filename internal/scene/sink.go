// Package scene carries placements from the engine to an external consumer.
// A placement pairs an untouched shape handle with the rigid transform that
// positions an instance of it; the transform is never baked into geometry,
// the consumer applies it.
package scene

// Placement is one emitted component instance.
type Placement struct {
	Shape     string // shape handle the consumer resolves (e.g. "keycap")
	Component string // component id within the instance
	Row, Col  int
	Label     string

	Position [3]float64
	// Rotation as axis-angle; the axis is unit and the angle in radians.
	Axis  [3]float64
	Angle float64
	// The same rotation as a row-major 3×3 matrix, for consumers that
	// prefer not to rebuild it.
	Matrix [9]float64
}

// Sink receives placements in emission order. Close is called exactly once,
// and only after every placement was delivered; a failed or cancelled run
// abandons the sink unclosed, so sinks that materialize their document on
// Close never produce a partial scene.
type Sink interface {
	Put(Placement) error
	Close() error
}

// Memory is an in-memory sink for tests and for the plan command.
type Memory struct {
	Placements []Placement
	Closed     bool
}

func (m *Memory) Put(p Placement) error {
	m.Placements = append(m.Placements, p)
	return nil
}

func (m *Memory) Close() error {
	m.Closed = true
	return nil
}
