package layout

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"keyforge/internal/assembly"
	"keyforge/internal/config"
	"keyforge/internal/curves"
	"keyforge/internal/scene"
	"keyforge/pkg/errors"
	"keyforge/pkg/geom"
)

// Component names within an instance. Each is also the shape handle emitted
// to the sink.
const (
	ComponentKeycap = "keycap"
	ComponentSwitch = "switch"
	ComponentPlate  = "plate"
)

// Emitter walks rows × keys and produces one rigid transform per emitted
// component. All shapes are canonicalized once at construction time; the
// per-instance work afterwards is pure and shares only read-only state, so
// rows are computed in parallel.
type Emitter struct {
	cfg    config.Config
	spiral curves.Spiral
	arc    curves.Arc

	keycap assembly.Component
	deps   []assembly.Component

	logger  *log.Logger
	workers int
}

// New prepares an emitter: it validates the configuration, builds the two
// curve models, and canonicalizes every shape exactly once.
func New(cfg config.Config, logger *log.Logger) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	spiral, err := curves.NewSpiral(cfg.SpiralRadius, r3.Vec{})
	if err != nil {
		return nil, err
	}
	arc, err := curves.NewArc(cfg.RollArcRadius(), r3.Vec{})
	if err != nil {
		return nil, err
	}

	keycap, err := assembly.Prepare(assembly.ComponentSpec{
		ID:    ComponentKeycap,
		Shape: assembly.StaticShape{ID: ComponentKeycap, Box: cfg.Shapes[ComponentKeycap].Box()},
		Conv:  assembly.DefaultConventions,
	})
	if err != nil {
		return nil, err
	}
	sw, err := assembly.Prepare(assembly.ComponentSpec{
		ID:    ComponentSwitch,
		Shape: assembly.StaticShape{ID: ComponentSwitch, Box: cfg.Shapes[ComponentSwitch].Box()},
		Conv:  assembly.Conventions{FlushAxis: geom.AxisZ, Flush: assembly.FlushMin},
	})
	if err != nil {
		return nil, err
	}
	plate, err := assembly.Prepare(assembly.ComponentSpec{
		ID:    ComponentPlate,
		Shape: assembly.StaticShape{ID: ComponentPlate, Box: cfg.Shapes[ComponentPlate].Box()},
		Conv:  assembly.DefaultConventions,
	})
	if err != nil {
		return nil, err
	}

	// Attachment offsets are derived from the boxes, never hard-coded: the
	// switch hangs below the cap, the plate below the switch.
	sw.Offset = keycap.AttachBelow(sw, cfg.SwitchOffset)
	plate.Offset = r3.Add(sw.Offset, geom.WithComponent(r3.Vec{}, geom.AxisZ,
		geom.Component(sw.CanonicalBox().Min, geom.AxisZ)-cfg.MountOffset-geom.Component(plate.CanonicalBox().Max, geom.AxisZ)))

	return &Emitter{
		cfg:     cfg,
		spiral:  spiral,
		arc:     arc,
		keycap:  keycap,
		deps:    []assembly.Component{sw, plate},
		logger:  logger,
		workers: runtime.GOMAXPROCS(0),
	}, nil
}

// SetWorkers caps the number of rows computed concurrently. Values below
// one restore the default.
func (e *Emitter) SetWorkers(n int) {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	e.workers = n
}

// RowAngle resolves the outer-spiral parameter of a row: row 0 sits at the
// configured start angle, row i the arc length i×rowSpacing past it. A
// non-converged solve is recovered with the best estimate and a warning; an
// approximate row position is acceptable, a missing row is not.
func (e *Emitter) RowAngle(row int) float64 {
	if row == 0 {
		return e.cfg.SpiralStartAngle
	}
	length := float64(row) * e.cfg.RowSpacing
	theta, err := e.spiral.SolveForArclen(e.cfg.SpiralStartAngle, length,
		curves.DefaultTolerance, curves.DefaultMaxIterations)
	if err != nil {
		if errors.Is(err, errors.CodeNonConvergence) {
			e.logger.Warn("arc-length solve did not converge, using best estimate",
				"row", row, "theta", theta)
			return theta
		}
		// Validation guarantees a positive length; nothing else can fail.
		panic(fmt.Sprintf("unreachable arc-length failure: %v", err))
	}
	return theta
}

// rowFrame builds the row's world transform from the spiral sample: the
// along-row axis is the spiral plane normal, and the spiral tangent supplies
// the second direction. The tangent lies in the embedding plane, so it is
// exactly orthogonal to the plane normal and carries into the frame
// unchanged; an axis chosen inside the plane would instead have the
// orthogonalization absorb the tangent's variation and leave every row with
// one constant rotation. The spiral fallback axis serves as the reference
// if the tangent ever degenerates.
func (e *Emitter) rowFrame(theta float64) (geom.Transform, error) {
	p := e.spiral.PointAt(theta)
	fr, err := geom.FrameFrom(e.spiral.PlaneAxis, p.Tangent, e.spiral.Fallback)
	if err != nil {
		return geom.Transform{}, err
	}
	fr.T = p.Pos
	return fr, nil
}

// emitRow computes the placements of every component in one row.
func (e *Emitter) emitRow(row int, keys []config.Key) ([]scene.Placement, error) {
	theta := e.RowAngle(row)
	frame, err := e.rowFrame(theta)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "frame of row %d", row)
	}

	widths := make([]float64, len(keys))
	for i, k := range keys {
		widths[i] = k.Width
	}
	offsets := PlanRow(widths, e.cfg.UnitSize+e.cfg.HorizontalSpace)
	angles := RowAngles(offsets, e.arc.Radius)

	pitch := geom.RotateX(e.cfg.Pitch())

	placements := make([]scene.Placement, 0, len(keys)*(1+len(e.deps)))
	for col, keyTheta := range angles {
		// Key placement on the row's own roll arc, carried into the row's
		// world frame.
		curvePlacement := geom.Compose(e.arc.Placement(keyTheta), frame)
		instance := assembly.PlaceInstance(e.keycap, e.deps, pitch, curvePlacement)

		for _, comp := range componentOrder {
			pl, err := instance[comp].ToPlacement()
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "row %d col %d %s", row, col, comp)
			}
			placements = append(placements, toScene(comp, row, col, keys[col].Label, instance[comp], pl))
		}
	}
	return placements, nil
}

var componentOrder = []string{ComponentKeycap, ComponentSwitch, ComponentPlate}

func toScene(comp string, row, col int, label string, tr geom.Transform, pl geom.Placement) scene.Placement {
	m := tr.RotationMatrix()
	var flat [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			flat[3*i+j] = m.At(i, j)
		}
	}
	return scene.Placement{
		Shape:     comp,
		Component: comp,
		Row:       row,
		Col:       col,
		Label:     label,
		Position:  [3]float64{pl.Position.X, pl.Position.Y, pl.Position.Z},
		Axis:      [3]float64{pl.Axis.X, pl.Axis.Y, pl.Axis.Z},
		Angle:     pl.Angle,
		Matrix:    flat,
	}
}

// Emit computes all placements and hands them to the sink in row/column
// order. Rows are independent, so they are computed concurrently; the sink
// itself is fed sequentially and needs no locking. On a row error or
// cancellation the sink is abandoned per the [scene.Sink] contract: nothing
// is delivered and Close is not called.
func (e *Emitter) Emit(ctx context.Context, sink scene.Sink) error {
	rows := e.cfg.Rows()
	results := make([][]scene.Placement, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := e.emitRow(i, row.Keys)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	n := 0
	for _, out := range results {
		for _, p := range out {
			if err := sink.Put(p); err != nil {
				return err
			}
			n++
		}
	}
	e.logger.Info("emitted placements", "rows", len(rows), "placements", n)
	return sink.Close()
}
