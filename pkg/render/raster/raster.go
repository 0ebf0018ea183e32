// Package raster draws a frozen [layout.Layout] onto an RGBA image.
//
// The renderer maps grid units to pixels with a single scale (pixels per
// unit) and flips the Y axis so the layout origin sits at the bottom-left of
// the image. Line widths and font sizes are in points, where one grid unit
// is 72 points, so a diagram keeps its proportions at every scale.
//
// Draw never validates the layout again and never touches the file system;
// encoding and persistence live in the sink and pipeline packages.
//
// [layout.Layout]: github.com/matzehuels/schematic/pkg/layout.Layout
package raster

import (
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/fonts"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/layout"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Dash pattern of dashed strokes, as multiples of the line width.
const (
	dashOn  = 3.7
	dashOff = 1.6
)

// Legend marker line width in points.
const swatchLineWidth = 1.5

// MaxPixels bounds the size of a drawn image (about 256 MiB of RGBA).
const MaxPixels = 1 << 26

// PixelSize returns the image dimensions of a canvas drawn at scale.
func PixelSize(canvas geom.Size, scale float64) (w, h int) {
	return int(math.Round(canvas.W * scale)), int(math.Round(canvas.H * scale))
}

// Draw renders l at scale pixels per grid unit. The background is opaque
// white and elements are painted in layout order: nodes, lifelines, routes,
// legend, title.
func Draw(l layout.Layout, scale float64) (*image.RGBA, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", scale)
	}
	if px := l.Canvas.W * scale * l.Canvas.H * scale; px > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %vx%v at scale %v needs %.0f pixels, limit is %d", l.Canvas.W, l.Canvas.H, scale, px, MaxPixels)
	}
	w, h := PixelSize(l.Canvas, scale)
	if w < 1 || h < 1 {
		return nil, errors.New(errors.ErrCodeInvalidDimensions, "canvas %vx%v at scale %v has no pixels", l.Canvas.W, l.Canvas.H, scale)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p := &painter{
		dc:     gg.NewContextForRGBA(img),
		scale:  scale,
		height: l.Canvas.H,
		faces:  make(map[faceKey]font.Face),
	}
	p.dc.SetRGB(1, 1, 1)
	p.dc.Clear()
	p.dc.SetLineCapRound()
	p.dc.SetLineJoinRound()

	for _, n := range l.Nodes {
		p.node(n)
	}
	for _, ll := range l.Lifelines {
		p.lifeline(ll)
	}
	for _, r := range l.Routes {
		p.route(r)
	}
	for _, item := range l.Legend {
		p.legendItem(item)
	}
	if l.Title != nil {
		p.text(*l.Title)
	}
	if p.err != nil {
		return nil, p.err
	}
	return img, nil
}

type faceKey struct {
	style fonts.Style
	px    float64
}

// painter holds per-call drawing state. The first font error is kept and
// reported by Draw; drawing continues so the image stays well formed.
type painter struct {
	dc     *gg.Context
	scale  float64
	height float64
	faces  map[faceKey]font.Face
	err    error
}

func (p *painter) x(v float64) float64 { return v * p.scale }
func (p *painter) y(v float64) float64 { return (p.height - v) * p.scale }

// pt converts points to pixels.
func (p *painter) pt(v float64) float64 { return v * p.scale / fonts.PointsPerUnit }

func (p *painter) setColor(c scene.Color, alpha float64) {
	r, g, b := c.RGB()
	p.dc.SetRGBA(r, g, b, alpha)
}

func (p *painter) setStroke(st scene.Style, alpha float64) {
	p.setColor(st.Stroke, alpha)
	lw := p.pt(st.LineWidth)
	p.dc.SetLineWidth(lw)
	if st.Dashed {
		p.dc.SetDash(dashOn*lw, dashOff*lw)
	} else {
		p.dc.SetDash()
	}
}

func (p *painter) rectPath(b geom.Box, radius float64) {
	x, y := p.x(b.Min.X), p.y(b.Max.Y)
	w, h := b.Size().W*p.scale, b.Size().H*p.scale
	if radius > 0 {
		p.dc.DrawRoundedRectangle(x, y, w, h, radius*p.scale)
		return
	}
	p.dc.DrawRectangle(x, y, w, h)
}

func (p *painter) polygonPath(pts []geom.Point) {
	p.dc.NewSubPath()
	for i, q := range pts {
		if i == 0 {
			p.dc.MoveTo(p.x(q.X), p.y(q.Y))
		} else {
			p.dc.LineTo(p.x(q.X), p.y(q.Y))
		}
	}
	p.dc.ClosePath()
}

func (p *painter) line(a, b geom.Point) {
	p.dc.DrawLine(p.x(a.X), p.y(a.Y), p.x(b.X), p.y(b.Y))
	p.dc.Stroke()
}

func (p *painter) shapePath(n layout.Node) {
	if len(n.Outline) > 0 {
		p.polygonPath(n.Outline)
		return
	}
	p.rectPath(n.Box, n.Radius)
}

func (p *painter) node(n layout.Node) {
	if n.Framed {
		if n.Style.Fill.IsSet() && n.Style.FillAlpha > 0 {
			p.shapePath(n)
			p.setColor(n.Style.Fill, n.Style.FillAlpha)
			p.dc.Fill()
		}
		if n.Header != nil {
			p.rectPath(n.Header.Box, 0)
			p.setColor(n.Header.Style.Fill, n.Header.Style.FillAlpha)
			p.dc.Fill()
		}
		if n.Style.Stroke.IsSet() && n.Style.LineWidth > 0 {
			p.shapePath(n)
			p.setStroke(n.Style, 1)
			p.dc.Stroke()
		}
	}
	if n.Header != nil {
		p.text(n.Header.Label)
	}
	for _, row := range n.Rows {
		p.text(row)
	}
	if n.Label != nil {
		p.text(*n.Label)
	}
}

func (p *painter) lifeline(ll layout.Lifeline) {
	p.setStroke(ll.Style, ll.Alpha)
	p.line(ll.Line.A, ll.Line.B)
}

func (p *painter) route(r layout.Route) {
	p.setStroke(r.Style, 1)
	for i, q := range r.Path {
		if i == 0 {
			p.dc.MoveTo(p.x(q.X), p.y(q.Y))
		} else {
			p.dc.LineTo(p.x(q.X), p.y(q.Y))
		}
	}
	p.dc.Stroke()

	// Decorations are always solid.
	p.dc.SetDash()
	for _, hd := range r.Heads {
		a, b := hd.Wings()
		p.dc.MoveTo(p.x(a.X), p.y(a.Y))
		p.dc.LineTo(p.x(hd.Tip.X), p.y(hd.Tip.Y))
		p.dc.LineTo(p.x(b.X), p.y(b.Y))
		p.dc.Stroke()
	}
	for _, s := range r.Ticks {
		p.line(s.A, s.B)
	}
	for _, s := range r.Prongs {
		p.line(s.A, s.B)
	}
	if r.Label != nil {
		p.text(*r.Label)
	}
}

func (p *painter) legendItem(item layout.LegendItem) {
	m := item.Marker
	switch item.Swatch {
	case scene.SwatchFilled:
		p.rectPath(m, 0)
		p.setColor(item.Color, 1)
		p.dc.Fill()
	case scene.SwatchOutlined:
		p.rectPath(m, 0)
		p.setStroke(scene.Style{Stroke: item.Color, LineWidth: swatchLineWidth}, 1)
		p.dc.Stroke()
	case scene.SwatchDiamond:
		p.polygonPath(geom.RhombusOutline(m.Center(), m.Size()))
		p.setColor(item.Color, 1)
		p.dc.Fill()
	case scene.SwatchLine:
		c := m.Center()
		p.setStroke(scene.Style{Stroke: item.Color, LineWidth: swatchLineWidth * 1.5}, 1)
		p.line(geom.Pt(m.Min.X, c.Y), geom.Pt(m.Max.X, c.Y))
	}
	p.text(item.Label)
}

func (p *painter) face(st scene.Style) font.Face {
	k := faceKey{style: styles.FontStyle(st), px: p.pt(st.FontSize)}
	if f, ok := p.faces[k]; ok {
		return f
	}
	f, err := fonts.Face(k.style, k.px)
	if err != nil {
		if p.err == nil {
			p.err = errors.Wrap(errors.ErrCodeRender, err, "load font")
		}
		return nil
	}
	p.faces[k] = f
	return f
}

// text draws t's frame, if any, and its lines stacked from the top of the
// content box. Each line is vertically centered in its slot.
func (p *painter) text(t layout.Text) {
	if t.Frame != nil {
		p.rectPath(t.Box, 0)
		p.setColor(t.Frame.Fill.Or(styles.White), 1)
		p.dc.FillPreserve()
		p.setStroke(*t.Frame, 1)
		p.dc.Stroke()
	}
	if t.Value == "" || t.Style.FontSize <= 0 {
		return
	}
	f := p.face(t.Style)
	if f == nil {
		return
	}
	p.dc.SetFontFace(f)
	p.setColor(t.Style.Text.Or(styles.Ink), 1)

	content := t.Content()
	slot := t.Style.FontSize * fonts.LineSpacing / fonts.PointsPerUnit
	lines := strings.Split(t.Value, "\n")
	top := content.Center().Y + slot*float64(len(lines))/2

	var x, ax float64
	switch t.Align {
	case layout.AlignLeft:
		x, ax = content.Min.X, 0
	case layout.AlignRight:
		x, ax = content.Max.X, 1
	default:
		x, ax = content.Center().X, 0.5
	}
	for i, line := range lines {
		cy := top - (float64(i)+0.5)*slot
		p.dc.DrawStringAnchored(line, p.x(x), p.y(cy), ax, 0.35)
	}
}
