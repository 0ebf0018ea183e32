// Package layout turns a validated scene into frozen, absolute geometry.
//
// [Build] resolves every anchor, routes every connector, measures and places
// every label and positions the legend and title. The resulting [Layout] is
// a plain value: renderers read it without consulting the scene again, and
// it serializes to JSON for inspection or caching.
//
// Layout never moves shapes. Coordinates stay in grid units with the origin
// at the bottom-left.
package layout

import (
	"github.com/matzehuels/schematic/pkg/fonts"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Align is the horizontal alignment of text within its box.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Text is a positioned, measured block of text. Lines are split on "\n" and
// stacked from the top of the content area, which is Box shrunk by Pad.
// When Frame is set the box is filled and outlined before the text is drawn.
type Text struct {
	Value string       `json:"value"`
	Box   geom.Box     `json:"box"`
	Pad   float64      `json:"pad,omitempty"`
	Align Align        `json:"align,omitempty"`
	Style scene.Style  `json:"style"`
	Frame *scene.Style `json:"frame,omitempty"`
}

// Content returns the area the text lines occupy.
func (t Text) Content() geom.Box { return t.Box.Expand(-t.Pad) }

// Band is the header strip of an entity table.
type Band struct {
	Box   geom.Box    `json:"box"`
	Style scene.Style `json:"style"`
	Label Text        `json:"label"`
}

// Node is a shape with resolved style and text.
type Node struct {
	ID      string       `json:"id"`
	Kind    scene.Kind   `json:"kind"`
	Box     geom.Box     `json:"box"`
	Outline []geom.Point `json:"outline,omitempty"`
	Radius  float64      `json:"radius,omitempty"`
	Style   scene.Style  `json:"style"`
	Label   *Text        `json:"label,omitempty"`
	Header  *Band        `json:"header,omitempty"`
	Rows    []Text       `json:"rows,omitempty"`
	Framed  bool         `json:"framed"`
}

// Lifeline is the dashed vertical line below an actor.
type Lifeline struct {
	Actor string      `json:"actor"`
	Line  geom.Segment `json:"line"`
	Alpha float64     `json:"alpha"`
	Style scene.Style `json:"style"`
}

// LegendItem is one legend row.
type LegendItem struct {
	Swatch scene.Swatch `json:"swatch"`
	Marker geom.Box     `json:"marker"`
	Color  scene.Color  `json:"color"`
	Label  Text         `json:"label"`
}

// Warning reports a layout problem that does not prevent rendering.
type Warning struct {
	Code    string   `json:"code"`
	Shapes  []string `json:"shapes"`
	Message string   `json:"message"`
}

// WarnOverlap is the code of partial-overlap warnings.
const WarnOverlap = "SHAPE_OVERLAP"

// Layout is the frozen geometry of a scene, in rendering order.
type Layout struct {
	Canvas    geom.Size    `json:"canvas"`
	Nodes     []Node       `json:"nodes"`
	Lifelines []Lifeline   `json:"lifelines,omitempty"`
	Routes    []Route      `json:"routes"`
	Legend    []LegendItem `json:"legend,omitempty"`
	Title     *Text        `json:"title,omitempty"`
	Warnings  []Warning    `json:"warnings,omitempty"`
}

// TextMeasurer returns the extent of text in grid units.
type TextMeasurer interface {
	Measure(text string, style fonts.Style, pt float64) (w, h float64)
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, style fonts.Style, pt float64) (w, h float64)

// Measure calls f.
func (f MeasureFunc) Measure(text string, style fonts.Style, pt float64) (w, h float64) {
	return f(text, style, pt)
}

// DefaultMeasurer measures with the embedded fonts.
var DefaultMeasurer TextMeasurer = MeasureFunc(fonts.Measure)

// Option configures Build.
type Option func(*builder)

// WithMeasurer replaces the text measurer.
func WithMeasurer(m TextMeasurer) Option {
	return func(b *builder) {
		if m != nil {
			b.measure = m
		}
	}
}

// WithoutOverlapCheck disables overlap warnings.
func WithoutOverlapCheck() Option {
	return func(b *builder) { b.checkOverlap = false }
}

// Geometry constants in grid units.
const (
	// LabelMargin separates a connector label box from its line.
	LabelMargin = 0.15
	// LabelPad surrounds text inside a framed label.
	LabelPad = 0.06
	// CornerRadius rounds process boxes, actors and entity tables.
	CornerRadius = 0.08
	// RowInset is the left margin of entity table rows.
	RowInset = 0.1
	// TitleInset is the default gap between the canvas top and the title.
	TitleInset = 0.2
	// ContainerInset is the gap between a container top and its title.
	ContainerInset = 0.12
	// SwatchSize is the side of a legend marker.
	SwatchSize = 0.2
	// SwatchGap separates a legend marker from its text.
	SwatchGap = 0.15
)

type builder struct {
	s            *scene.Scene
	measure      TextMeasurer
	checkOverlap bool
	placed       []geom.Box
}

// Build validates s and freezes its geometry.
func Build(s *scene.Scene, opts ...Option) (Layout, error) {
	if err := s.Validate(); err != nil {
		return Layout{}, err
	}
	b := &builder{s: s, measure: DefaultMeasurer, checkOverlap: true}
	for _, opt := range opts {
		opt(b)
	}

	l := Layout{Canvas: s.Canvas()}
	shapes := s.Shapes()
	for _, sh := range shapes {
		l.Nodes = append(l.Nodes, b.node(sh))
		if sh.HasLifeline() {
			bottom := sh.Center.Y - sh.Size.H/2
			l.Lifelines = append(l.Lifelines, Lifeline{
				Actor: sh.ID,
				Line:  geom.Segment{A: geom.Pt(sh.Center.X, bottom), B: geom.Pt(sh.Center.X, *sh.Lifeline)},
				Alpha: styles.LifelineAlpha,
				Style: styles.Lifeline(),
			})
		}
	}
	for _, c := range s.Connectors() {
		r, err := b.route(c)
		if err != nil {
			return Layout{}, err
		}
		l.Routes = append(l.Routes, r)
	}
	if lg, ok := s.Legend(); ok {
		l.Legend = b.legend(lg)
	}
	if t, ok := s.Title(); ok && t.Text != "" {
		title := b.title(t)
		l.Title = &title
	}
	if b.checkOverlap {
		l.Warnings = overlapWarnings(shapes)
	}
	return l, nil
}

// text measures value and returns a box of that size centered on c.
func (b *builder) text(value string, st scene.Style, c geom.Point, pad float64) Text {
	w, h := b.measure.Measure(value, styles.FontStyle(st), st.FontSize)
	return Text{
		Value: value,
		Box:   geom.BoxAt(c, geom.Size{W: w + 2*pad, H: h + 2*pad}),
		Pad:   pad,
		Style: st,
	}
}

func (b *builder) node(sh scene.Shape) Node {
	st := styles.ForShape(b.s, sh)
	n := Node{
		ID:     sh.ID,
		Kind:   sh.Kind,
		Box:    sh.Box(),
		Style:  st,
		Framed: sh.Kind != scene.Note || st.Stroke.IsSet(),
	}
	switch sh.Kind {
	case scene.Terminator:
		n.Radius = sh.Size.H / 2
	case scene.Process, scene.ActorBox, scene.EntityTable:
		n.Radius = CornerRadius
	case scene.Decision:
		n.Outline = geom.RhombusOutline(sh.Center, sh.Size)
	}

	switch sh.Kind {
	case scene.EntityTable:
		b.table(&n, sh)
	case scene.Container:
		if sh.Label != "" {
			t := b.text(sh.Label, st, sh.Center, 0)
			h := t.Box.Size().H
			t.Box = geom.BoxAt(geom.Pt(sh.Center.X, n.Box.Max.Y-ContainerInset-h/2), t.Box.Size())
			n.Label = &t
		}
	default:
		if sh.Label != "" {
			t := b.text(sh.Label, st, sh.Center, 0)
			n.Label = &t
		}
	}
	return n
}

func (b *builder) table(n *Node, sh scene.Shape) {
	top := n.Box.Max.Y
	hs := styles.Header(n.Style)
	header := geom.Box{
		Min: geom.Pt(n.Box.Min.X, top-scene.DefaultHeaderHeight),
		Max: geom.Pt(n.Box.Max.X, top),
	}
	n.Header = &Band{
		Box:   header,
		Style: hs,
		Label: b.text(sh.Label, hs, header.Center(), 0),
	}
	rowStyle := scene.Style{Text: n.Style.Text, FontSize: n.Style.FontSize, Weight: n.Style.Weight}
	left := n.Box.Min.X + RowInset
	for i, f := range sh.Fields {
		cy := top - scene.DefaultHeaderHeight - (float64(i)+0.5)*scene.DefaultRowHeight
		t := b.text(f.Display(), rowStyle, geom.Pt(left, cy), 0)
		w := t.Box.Size().W
		t.Box = t.Box.Translate(geom.Pt(w/2, 0))
		t.Align = AlignLeft
		n.Rows = append(n.Rows, t)
	}
}

func (b *builder) legend(lg scene.Legend) []LegendItem {
	st := styles.Legend(lg.FontSize)
	items := make([]LegendItem, 0, len(lg.Entries))
	for i, e := range lg.Entries {
		y := lg.Origin.Y - float64(i)*lg.Spacing
		x := lg.Origin.X
		item := LegendItem{Swatch: e.Swatch, Color: e.Color.Or(styles.Ink)}
		if e.Swatch != scene.SwatchNone {
			item.Marker = geom.BoxAt(geom.Pt(x+SwatchSize/2, y), geom.Size{W: SwatchSize, H: SwatchSize})
			x += SwatchSize + SwatchGap
		}
		t := b.text(e.Text, st, geom.Pt(x, y), 0)
		t.Box = t.Box.Translate(geom.Pt(t.Box.Size().W/2, 0))
		t.Align = AlignLeft
		item.Label = t
		items = append(items, item)
	}
	return items
}

func (b *builder) title(t scene.Title) Text {
	canvas := b.s.Canvas()
	at := geom.Pt(canvas.W/2, canvas.H-TitleInset)
	if t.At != nil {
		at = *t.At
	}
	out := b.text(t.Text, styles.Title(t.FontSize), at, 0)
	h := out.Box.Size().H
	out.Box = out.Box.Translate(geom.Pt(0, -h/2))
	return out
}
