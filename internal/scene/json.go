package scene

import (
	"encoding/json"
	"io"
)

// JSONSink buffers placements and writes a single JSON scene description on
// Close. The document is self-contained: each entry names its shape handle
// and carries the full rigid transform.
type JSONSink struct {
	w   io.Writer
	doc jsonScene
}

type jsonScene struct {
	Unit       string          `json:"unit"`
	Placements []jsonPlacement `json:"placements"`
}

type jsonPlacement struct {
	Shape     string     `json:"shape"`
	Component string     `json:"component"`
	Row       int        `json:"row"`
	Col       int        `json:"col"`
	Label     string     `json:"label,omitempty"`
	Position  [3]float64 `json:"position"`
	Axis      [3]float64 `json:"axis"`
	Angle     float64    `json:"angle"`
	Matrix    [9]float64 `json:"matrix"`
}

// NewJSONSink returns a sink that writes a JSON scene to w on Close. All
// coordinates are millimeters.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w, doc: jsonScene{Unit: "mm"}}
}

func (s *JSONSink) Put(p Placement) error {
	s.doc.Placements = append(s.doc.Placements, jsonPlacement{
		Shape:     p.Shape,
		Component: p.Component,
		Row:       p.Row,
		Col:       p.Col,
		Label:     p.Label,
		Position:  p.Position,
		Axis:      p.Axis,
		Angle:     p.Angle,
		Matrix:    p.Matrix,
	})
	return nil
}

func (s *JSONSink) Close() error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.doc)
}
