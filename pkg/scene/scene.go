// Package scene defines the diagram model: shapes, connectors, styles, a
// legend and a title placed on an explicit grid.
//
// A [Scene] is assembled through a [Builder], which validates every call as
// it is made and refuses further work after the first error. Once built, a
// scene is immutable; accessors hand out copies.
//
//	b := scene.NewBuilder(geom.Size{W: 10, H: 12.5})
//	b.AddShape(scene.Shape{ID: "start", Kind: scene.Terminator,
//	    Center: geom.Pt(5, 11.5), Size: geom.Size{W: 2.4, H: 0.6}, Label: "Start"})
//	b.AddShape(scene.Shape{ID: "check", Kind: scene.Decision,
//	    Center: geom.Pt(5, 10.2), Size: geom.Size{W: 1.8, H: 1.2}, Label: "Data exists?"})
//	b.AddConnector(scene.Connector{
//	    From: scene.End{Shape: "start", Anchor: geom.Bottom},
//	    To:   scene.End{Shape: "check", Anchor: geom.Top},
//	})
//	s, err := b.Build()
//
// Scenes render in a fixed order: shapes in declaration order (later over
// earlier), lifelines, connectors, legend, title.
package scene

import (
	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/geom"
)

// Scene is a validated, immutable diagram.
type Scene struct {
	canvas     geom.Size
	styleNames []string
	styles     map[string]Style
	shapes     []Shape
	index      map[string]int
	connectors []Connector
	legend     *Legend
	title      *Title
}

// Canvas returns the drawing area in grid units.
func (s *Scene) Canvas() geom.Size { return s.canvas }

// Shapes returns the shapes in declaration order.
func (s *Scene) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh.clone()
	}
	return out
}

// Shape looks up a shape by id.
func (s *Scene) Shape(id string) (Shape, bool) {
	i, ok := s.index[id]
	if !ok {
		return Shape{}, false
	}
	return s.shapes[i].clone(), true
}

// Connectors returns the connectors in declaration order.
func (s *Scene) Connectors() []Connector {
	return append([]Connector(nil), s.connectors...)
}

// Style returns the named style registered on the builder.
func (s *Scene) Style(ref StyleRef) (Style, bool) {
	st, ok := s.styles[string(ref)]
	return st, ok
}

// StyleNames returns the registered style names in definition order.
func (s *Scene) StyleNames() []string {
	return append([]string(nil), s.styleNames...)
}

// Legend returns the legend, if one was set.
func (s *Scene) Legend() (Legend, bool) {
	if s.legend == nil {
		return Legend{}, false
	}
	return s.legend.clone(), true
}

// Title returns the title, if one was set.
func (s *Scene) Title() (Title, bool) {
	if s.title == nil {
		return Title{}, false
	}
	return s.title.clone(), true
}

// Anchor resolves a connector end to a grid position.
func (s *Scene) Anchor(e End) (geom.Point, error) {
	i, ok := s.index[e.Shape]
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeUnknownShapeReference, "unknown shape %q", e.Shape)
	}
	return resolveAnchor(s.shapes[i], e)
}

// Validate re-runs every structural check on the scene. Scenes produced by
// a Builder always pass; it exists for scenes that crossed a process
// boundary.
func (s *Scene) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil scene")
	}
	_, err := Replay(s.canvas, s.Calls())
	return err
}

// resolveAnchor maps an end onto sh. Decisions use the rhombus outline,
// every other kind its bounding rectangle. Lifeline anchors are only valid
// on actors with a lifeline, between the lifeline end and the box bottom.
func resolveAnchor(sh Shape, e End) (geom.Point, error) {
	if e.Anchor == geom.Lifeline {
		if !sh.HasLifeline() {
			return geom.Point{}, errors.New(errors.ErrCodeInvalidAnchor,
				"shape %q (%s) has no lifeline", sh.ID, sh.Kind)
		}
		bottom, end := sh.Center.Y-sh.Size.H/2, *sh.Lifeline
		if e.At < end-geom.Epsilon || e.At > bottom+geom.Epsilon {
			return geom.Point{}, errors.New(errors.ErrCodeInvalidAnchor,
				"lifeline depth %v outside [%v, %v] on %q", e.At, end, bottom, sh.ID)
		}
		return geom.Pt(sh.Center.X, e.At), nil
	}
	if !e.Anchor.Valid() {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidAnchor, "unknown anchor %d on %q", int(e.Anchor), sh.ID)
	}
	if sh.Kind == Decision {
		return geom.RhombusAnchor(sh.Center, sh.Size, e.Anchor)
	}
	return geom.RectAnchor(sh.Center, sh.Size, e.Anchor)
}
