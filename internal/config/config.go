// Package config loads and validates the generation parameters. A run is
// fully described by one TOML document: the curve constants, the row/key
// layout, and the bounding boxes the external geometry loader reported for
// each shape.
package config

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"keyforge/pkg/errors"
	"keyforge/pkg/geom"

	"gonum.org/v1/gonum/spatial/r3"
)

// Key is one key position within a row: a width in abstract units and a
// label for the scene description.
type Key struct {
	Width float64 `toml:"width"`
	Label string  `toml:"label"`
}

// Row is an ordered sequence of keys.
type Row struct {
	Keys []Key `toml:"keys"`
}

// Shape is a bounding box reported by the external geometry loader, in
// authored coordinates.
type Shape struct {
	Min [3]float64 `toml:"min"`
	Max [3]float64 `toml:"max"`
}

// Box converts the configured bounds to a geometry box.
func (s Shape) Box() geom.Box {
	return geom.NewBox(
		r3.Vec{X: s.Min[0], Y: s.Min[1], Z: s.Min[2]},
		r3.Vec{X: s.Max[0], Y: s.Max[1], Z: s.Max[2]},
	)
}

// Config is the recognized parameter set. Lengths are millimeters, angles
// radians unless the name says otherwise.
type Config struct {
	UnitSize         float64 `toml:"unit_size"`
	KeyCount         int     `toml:"key_count"`
	RowCount         int     `toml:"row_count"`
	RowSpacing       float64 `toml:"row_spacing"`
	SpiralStartAngle float64 `toml:"spiral_start_angle"`
	SpiralRadius     float64 `toml:"spiral_radius"`
	PitchDegrees     float64 `toml:"pitch_degrees"`
	HandRadius       float64 `toml:"hand_radius"`
	RollRadius       float64 `toml:"roll_radius"`
	SwitchOffset     float64 `toml:"switch_offset"`
	MountOffset      float64 `toml:"mount_offset"`
	HorizontalSpace  float64 `toml:"horizontal_space"`

	// Layout overrides the uniform RowCount×KeyCount grid when present.
	Layout []Row `toml:"layout"`

	Shapes map[string]Shape `toml:"shapes"`
}

// Default returns the configuration of the reference build: 18mm 1u keys
// with 2mm spacing on a 96mm hand arc, rows on a golden spiral starting a
// half turn in at 192mm, 30mm apart, pitched 45°.
func Default() Config {
	return Config{
		UnitSize:         18,
		KeyCount:         10,
		RowCount:         3,
		RowSpacing:       30,
		SpiralStartAngle: math.Pi,
		SpiralRadius:     192,
		PitchDegrees:     45,
		HandRadius:       96,
		SwitchOffset:     2,
		MountOffset:      5,
		HorizontalSpace:  2,
		Shapes: map[string]Shape{
			"keycap": {Min: [3]float64{-8.75, -8.25, 0}, Max: [3]float64{8.75, 8.25, 5.2}},
			"switch": {Min: [3]float64{-6.9, -6.9, 0}, Max: [3]float64{6.9, 6.9, 11}},
			"plate":  {Min: [3]float64{-9.5, -9.5, 0}, Max: [3]float64{9.5, 9.5, 1.5}},
		},
	}
}

// Load reads and validates a TOML configuration file. Missing parameters
// fall back to the defaults; the layout table, when present, overrides the
// uniform grid.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.CodeInvalidConfig, err, "reading config %q", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.CodeInvalidConfig, err, "parsing config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Rows resolves the effective layout: the explicit layout table if present,
// otherwise RowCount rows of KeyCount 1u keys.
func (c Config) Rows() []Row {
	if len(c.Layout) > 0 {
		return c.Layout
	}
	rows := make([]Row, c.RowCount)
	for i := range rows {
		keys := make([]Key, c.KeyCount)
		for j := range keys {
			keys[j] = Key{Width: 1}
		}
		rows[i] = Row{Keys: keys}
	}
	return rows
}

// RollArcRadius returns the radius of the per-row roll arc. RollRadius
// overrides it when set; it defaults to the hand radius.
func (c Config) RollArcRadius() float64 {
	if c.RollRadius > 0 {
		return c.RollRadius
	}
	return c.HandRadius
}

// Pitch returns the pitch tilt in radians.
func (c Config) Pitch() float64 {
	return c.PitchDegrees * math.Pi / 180
}

// Validate fails fast on missing or out-of-domain parameters. The curve
// math is undefined for non-positive radii, so those are rejected here
// rather than deep in the solve.
func (c Config) Validate() error {
	switch {
	case c.UnitSize <= 0:
		return errors.New(errors.CodeInvalidConfig, "unit_size must be positive, got %g", c.UnitSize)
	case c.HandRadius <= 0:
		return errors.New(errors.CodeInvalidConfig, "hand_radius must be positive, got %g", c.HandRadius)
	case c.RollRadius < 0:
		return errors.New(errors.CodeInvalidConfig, "roll_radius must not be negative, got %g", c.RollRadius)
	case c.SpiralRadius <= 0:
		return errors.New(errors.CodeInvalidConfig, "spiral_radius must be positive, got %g", c.SpiralRadius)
	case c.RowCount < 0:
		return errors.New(errors.CodeInvalidConfig, "row_count must not be negative, got %d", c.RowCount)
	case c.KeyCount < 0:
		return errors.New(errors.CodeInvalidConfig, "key_count must not be negative, got %d", c.KeyCount)
	case c.RowSpacing <= 0:
		return errors.New(errors.CodeInvalidConfig, "row_spacing must be positive, got %g", c.RowSpacing)
	case c.HorizontalSpace < 0:
		return errors.New(errors.CodeInvalidConfig, "horizontal_space must not be negative, got %g", c.HorizontalSpace)
	case c.SwitchOffset < 0:
		return errors.New(errors.CodeInvalidConfig, "switch_offset must not be negative, got %g", c.SwitchOffset)
	case c.MountOffset < 0:
		return errors.New(errors.CodeInvalidConfig, "mount_offset must not be negative, got %g", c.MountOffset)
	}

	rows := c.Rows()
	if len(rows) == 0 {
		return errors.New(errors.CodeInvalidConfig, "layout has no rows (row_count %d)", c.RowCount)
	}
	for i, row := range rows {
		if len(row.Keys) == 0 {
			return errors.New(errors.CodeInvalidConfig, "row %d has no keys", i)
		}
		for j, k := range row.Keys {
			if k.Width <= 0 {
				return errors.New(errors.CodeInvalidConfig, "row %d key %d: width must be positive, got %g", i, j, k.Width)
			}
		}
	}

	for _, name := range []string{"keycap", "switch", "plate"} {
		s, ok := c.Shapes[name]
		if !ok {
			return errors.New(errors.CodeInvalidConfig, "missing shape bounds for %q", name)
		}
		if s.Box().IsEmpty() {
			return errors.New(errors.CodeInvalidConfig, "shape %q has an empty bounding box", name)
		}
	}
	return nil
}
