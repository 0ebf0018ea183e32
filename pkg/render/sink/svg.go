package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/fonts"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/layout"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// DefaultSVGScale is the number of SVG user units per grid unit.
const DefaultSVGScale = 100.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	height float64
	canvas *svg.SVG
}

// WithSVGScale sets the number of SVG user units per grid unit.
func WithSVGScale(s float64) SVGOption {
	return func(r *svgRenderer) { r.scale = s }
}

// RenderSVG writes l as a standalone SVG document. Geometry is identical to
// the raster output; text uses the Go font family with generic fallbacks.
func RenderSVG(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{scale: DefaultSVGScale, height: l.Canvas.H}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "svg scale must be positive, got %v", r.scale)
	}
	if !l.Canvas.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidDimensions, "canvas %vx%v is not drawable", l.Canvas.W, l.Canvas.H)
	}

	var buf bytes.Buffer
	r.canvas = svg.New(&buf)
	r.canvas.Start(r.i(l.Canvas.W), r.i(l.Canvas.H))
	if l.Title != nil {
		r.canvas.Title(strings.ReplaceAll(l.Title.Value, "\n", " "))
	}
	r.canvas.Rect(0, 0, r.i(l.Canvas.W), r.i(l.Canvas.H), "fill:#ffffff")
	r.canvas.Gstyle(fmt.Sprintf("font-family:%s", fonts.FallbackFontFamily))

	for _, n := range l.Nodes {
		r.node(n)
	}
	for _, ll := range l.Lifelines {
		r.canvas.Line(r.x(ll.Line.A.X), r.y(ll.Line.A.Y), r.x(ll.Line.B.X), r.y(ll.Line.B.Y),
			r.stroke(ll.Style, ll.Alpha)+";fill:none")
	}
	for _, rt := range l.Routes {
		r.route(rt)
	}
	for _, item := range l.Legend {
		r.legendItem(item)
	}
	if l.Title != nil {
		r.text(*l.Title)
	}

	r.canvas.Gend()
	r.canvas.End()
	return buf.Bytes(), nil
}

func (r *svgRenderer) i(v float64) int { return int(math.Round(v * r.scale)) }
func (r *svgRenderer) x(v float64) int { return r.i(v) }
func (r *svgRenderer) y(v float64) int { return r.i(r.height - v) }
func (r *svgRenderer) pt(v float64) float64 { return v * r.scale / fonts.PointsPerUnit }

func (r *svgRenderer) points(pts []geom.Point) (xs, ys []int) {
	xs, ys = make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = r.x(p.X), r.y(p.Y)
	}
	return xs, ys
}

func (r *svgRenderer) stroke(st scene.Style, alpha float64) string {
	lw := r.pt(st.LineWidth)
	s := fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-linecap:round;stroke-linejoin:round", st.Stroke.Hex(), lw)
	if alpha < 1 {
		s += fmt.Sprintf(";stroke-opacity:%.2f", alpha)
	}
	if st.Dashed {
		s += fmt.Sprintf(";stroke-dasharray:%.2f,%.2f", 3.7*lw, 1.6*lw)
	}
	return s
}

func (r *svgRenderer) fill(c scene.Color, alpha float64) string {
	if !c.IsSet() || alpha <= 0 {
		return "fill:none"
	}
	if alpha < 1 {
		return fmt.Sprintf("fill:%s;fill-opacity:%.2f", c.Hex(), alpha)
	}
	return "fill:" + c.Hex()
}

func (r *svgRenderer) box(b geom.Box, radius float64, style string) {
	x, y := r.x(b.Min.X), r.y(b.Max.Y)
	w, h := r.i(b.Size().W), r.i(b.Size().H)
	if radius > 0 {
		rr := r.i(radius)
		r.canvas.Roundrect(x, y, w, h, rr, rr, style)
		return
	}
	r.canvas.Rect(x, y, w, h, style)
}

func (r *svgRenderer) node(n layout.Node) {
	if n.Framed {
		fill := r.fill(n.Style.Fill, n.Style.FillAlpha)
		if len(n.Outline) > 0 {
			xs, ys := r.points(n.Outline)
			r.canvas.Polygon(xs, ys, fill)
		} else {
			r.box(n.Box, n.Radius, fill)
		}
		if n.Header != nil {
			r.box(n.Header.Box, 0, r.fill(n.Header.Style.Fill, n.Header.Style.FillAlpha))
		}
		if n.Style.Stroke.IsSet() && n.Style.LineWidth > 0 {
			st := r.stroke(n.Style, 1) + ";fill:none"
			if len(n.Outline) > 0 {
				xs, ys := r.points(n.Outline)
				r.canvas.Polygon(xs, ys, st)
			} else {
				r.box(n.Box, n.Radius, st)
			}
		}
	}
	if n.Header != nil {
		r.text(n.Header.Label)
	}
	for _, row := range n.Rows {
		r.text(row)
	}
	if n.Label != nil {
		r.text(*n.Label)
	}
}

func (r *svgRenderer) route(rt layout.Route) {
	xs, ys := r.points(rt.Path)
	r.canvas.Polyline(xs, ys, r.stroke(rt.Style, 1)+";fill:none")

	solid := rt.Style
	solid.Dashed = false
	st := r.stroke(solid, 1) + ";fill:none"
	for _, hd := range rt.Heads {
		a, b := hd.Wings()
		xs, ys := r.points([]geom.Point{a, hd.Tip, b})
		r.canvas.Polyline(xs, ys, st)
	}
	for _, s := range append(append([]geom.Segment{}, rt.Ticks...), rt.Prongs...) {
		r.canvas.Line(r.x(s.A.X), r.y(s.A.Y), r.x(s.B.X), r.y(s.B.Y), st)
	}
	if rt.Label != nil {
		r.text(*rt.Label)
	}
}

func (r *svgRenderer) legendItem(item layout.LegendItem) {
	m := item.Marker
	switch item.Swatch {
	case scene.SwatchFilled:
		r.box(m, 0, r.fill(item.Color, 1))
	case scene.SwatchOutlined:
		r.box(m, 0, r.stroke(scene.Style{Stroke: item.Color, LineWidth: 1.5}, 1)+";fill:none")
	case scene.SwatchDiamond:
		xs, ys := r.points(geom.RhombusOutline(m.Center(), m.Size()))
		r.canvas.Polygon(xs, ys, r.fill(item.Color, 1))
	case scene.SwatchLine:
		c := m.Center()
		r.canvas.Line(r.x(m.Min.X), r.y(c.Y), r.x(m.Max.X), r.y(c.Y),
			r.stroke(scene.Style{Stroke: item.Color, LineWidth: 2.25}, 1))
	}
	r.text(item.Label)
}

func (r *svgRenderer) text(t layout.Text) {
	if t.Frame != nil {
		r.box(t.Box, 0, r.fill(t.Frame.Fill.Or(styles.White), 1)+";"+r.stroke(*t.Frame, 1))
	}
	if t.Value == "" || t.Style.FontSize <= 0 {
		return
	}

	content := t.Content()
	anchor, x := "middle", content.Center().X
	switch t.Align {
	case layout.AlignLeft:
		anchor, x = "start", content.Min.X
	case layout.AlignRight:
		anchor, x = "end", content.Max.X
	}
	weight := "normal"
	if t.Style.Weight == scene.WeightBold {
		weight = "bold"
	}
	style := fmt.Sprintf("font-size:%.2fpx;font-weight:%s;fill:%s;text-anchor:%s;dominant-baseline:central",
		r.pt(t.Style.FontSize), weight, t.Style.Text.Or(styles.Ink).Hex(), anchor)

	slot := t.Style.FontSize * fonts.LineSpacing / fonts.PointsPerUnit
	lines := strings.Split(t.Value, "\n")
	top := content.Center().Y + slot*float64(len(lines))/2
	for i, line := range lines {
		r.canvas.Text(r.x(x), r.y(top-(float64(i)+0.5)*slot), line, style)
	}
}
