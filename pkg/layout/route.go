package layout

import (
	"math"

	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/render/styles"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Connector geometry in grid units.
const (
	HeadLength = 0.18
	HeadWidth  = 0.14

	// FootSize is the half-length of crow's-foot ticks and the spread of
	// the prongs at the many end.
	FootSize = 0.15
	// FootOffset is the distance from an end to its crow's-foot tick,
	// clamped to a quarter of the connector length.
	FootOffset = 0.3

	// LoopRX and LoopRY are the radii of a single-anchor self-loop.
	LoopRX = 0.4
	LoopRY = 0.2
	// LoopLabelGap separates a self-loop label from the loop.
	LoopLabelGap = 0.1

	loopSamples  = 32
	labelRetries = 4
)

// Head is an arrowhead at Tip pointing along Angle (radians).
type Head struct {
	Tip   geom.Point `json:"tip"`
	Angle float64    `json:"angle"`
}

// Wings returns the two barb ends of an open arrowhead.
func (h Head) Wings() (geom.Point, geom.Point) {
	u := geom.Polar(h.Angle, 1)
	n := geom.Polar(h.Angle+math.Pi/2, HeadWidth/2)
	base := h.Tip.Sub(u.Scale(HeadLength))
	return base.Add(n), base.Sub(n)
}

// Route is a connector ready to draw. Path is a polyline from the From
// anchor to the To anchor. Ticks are crow's-foot bars perpendicular to the
// line; Prongs splay from the many-end bar to the To anchor.
type Route struct {
	From   geom.Point     `json:"from"`
	To     geom.Point     `json:"to"`
	Path   []geom.Point   `json:"path"`
	Heads  []Head         `json:"heads,omitempty"`
	Ticks  []geom.Segment `json:"ticks,omitempty"`
	Prongs []geom.Segment `json:"prongs,omitempty"`
	Label  *Text          `json:"label,omitempty"`
	Style  scene.Style    `json:"style"`
}

func (b *builder) route(c scene.Connector) (Route, error) {
	from, err := b.s.Anchor(c.From)
	if err != nil {
		return Route{}, err
	}
	to, err := b.s.Anchor(c.To)
	if err != nil {
		return Route{}, err
	}
	r := Route{From: from, To: to, Style: styles.ForConnector(b.s, c)}

	if c.Routing == scene.SelfLoop {
		b.selfLoop(&r, c)
		return r, nil
	}

	r.Path = []geom.Point{from, to}
	seg := geom.Segment{A: from, B: to}
	if c.Decoration == scene.CrowsFoot {
		r.Ticks, r.Prongs = CrowsFoot(seg)
	} else {
		r.Heads = heads(r.Path, c.Heads)
	}
	if c.Label != "" {
		r.Label = b.segmentLabel(c, seg, r.Style)
	}
	return r, nil
}

// CrowsFoot returns the perpendicular ticks for a one-to-many relationship
// along s (one at A, many at B) and the prongs of the foot at B.
func CrowsFoot(s geom.Segment) (ticks, prongs []geom.Segment) {
	angle := s.Angle()
	u := geom.Polar(angle, 1)
	perp := geom.Polar(angle+math.Pi/2, FootSize)
	d := math.Min(FootOffset, 0.25*s.Length())

	one := s.A.Add(u.Scale(d))
	foot := s.B.Sub(u.Scale(d))
	ticks = []geom.Segment{
		{A: one.Sub(perp), B: one.Add(perp)},
		{A: foot.Sub(perp), B: foot.Add(perp)},
	}
	prongs = []geom.Segment{
		{A: foot, B: s.B.Add(perp)},
		{A: foot, B: s.B},
		{A: foot, B: s.B.Sub(perp)},
	}
	return ticks, prongs
}

// heads places arrowheads on a polyline.
func heads(path []geom.Point, mode scene.Heads) []Head {
	n := len(path)
	if n < 2 || mode == scene.HeadNone {
		return nil
	}
	out := []Head{{Tip: path[n-1], Angle: geom.Angle(path[n-2], path[n-1])}}
	if mode == scene.HeadBoth {
		out = append(out, Head{Tip: path[0], Angle: geom.Angle(path[1], path[0])})
	}
	return out
}

func (b *builder) selfLoop(r *Route, c scene.Connector) {
	if c.From.Anchor == c.To.Anchor && r.From.Eq(r.To) {
		b.halfEllipse(r, c)
	} else {
		b.curve(r, c)
	}
	if c.Decoration != scene.CrowsFoot {
		r.Heads = heads(r.Path, c.Heads)
	}
}

// halfEllipse loops out of a single anchor: the arc is centered on the
// anchor, bulges along the anchor normal and returns to the line through
// the anchor.
func (b *builder) halfEllipse(r *Route, c scene.Connector) {
	p := r.From
	n := geom.Normal(c.From.Anchor)
	t := geom.Pt(n.Y, -n.X)

	r.Path = make([]geom.Point, 0, loopSamples+1)
	for i := 0; i <= loopSamples; i++ {
		th := math.Pi * float64(i) / loopSamples
		r.Path = append(r.Path, p.Add(t.Scale(LoopRX*math.Cos(th))).Add(n.Scale(LoopRY*math.Sin(th))))
	}

	if c.Label == "" {
		return
	}
	lbl := b.text(c.Label, labelStyle(r.Style), p, LabelPad)
	lbl.Frame = labelFrame(r.Style)
	lbl.Align = AlignLeft
	corner := p.Add(t.Scale(LoopRX + LoopLabelGap)).Add(n.Scale(LabelMargin))
	size := lbl.Box.Size()
	far := corner.Add(t.Scale(size.W)).Add(n.Scale(size.H))
	lbl.Box = geom.Box{
		Min: geom.Pt(math.Min(corner.X, far.X), math.Min(corner.Y, far.Y)),
		Max: geom.Pt(math.Max(corner.X, far.X), math.Max(corner.Y, far.Y)),
	}
	b.settle(&lbl, n)
	r.Label = &lbl
}

// curve joins two different anchors of one shape with a cubic Bezier whose
// control points leave each anchor along its normal.
func (b *builder) curve(r *Route, c scene.Connector) {
	n1, n2 := geom.Normal(c.From.Anchor), geom.Normal(c.To.Anchor)
	reach := math.Max(0.8, r.From.Sub(r.To).Len())
	p0, p3 := r.From, r.To
	p1, p2 := p0.Add(n1.Scale(reach)), p3.Add(n2.Scale(reach))

	r.Path = make([]geom.Point, 0, loopSamples+1)
	for i := 0; i <= loopSamples; i++ {
		r.Path = append(r.Path, cubic(p0, p1, p2, p3, float64(i)/loopSamples))
	}

	if c.Label == "" {
		return
	}
	out := n1.Add(n2).Unit()
	if out.Len() == 0 {
		out = n1
	}
	mid := r.Path[loopSamples/2]
	lbl := b.text(c.Label, labelStyle(r.Style), mid, LabelPad)
	lbl.Frame = labelFrame(r.Style)
	lbl.Box = offsetBox(mid, lbl.Box.Size(), out, LabelMargin)
	b.settle(&lbl, out)
	r.Label = &lbl
}

func cubic(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	mt := 1 - t
	a, bb, cc, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return geom.Pt(
		a*p0.X+bb*p1.X+cc*p2.X+d*p3.X,
		a*p0.Y+bb*p1.Y+cc*p2.Y+d*p3.Y,
	)
}

// segmentLabel places a label at the midpoint of s, offset to the requested
// side of the direction of travel so that the near edge of the label box is
// LabelMargin away from the line.
func (b *builder) segmentLabel(c scene.Connector, s geom.Segment, st scene.Style) *Text {
	mid := s.Midpoint()
	lbl := b.text(c.Label, labelStyle(st), mid, LabelPad)
	lbl.Frame = labelFrame(st)

	left := LeftNormal(s)
	var dir geom.Point
	switch c.LabelSide {
	case scene.LabelLeft:
		dir = left
		lbl.Box = offsetBox(mid, lbl.Box.Size(), dir, LabelMargin)
	case scene.LabelRight:
		dir = left.Scale(-1)
		lbl.Box = offsetBox(mid, lbl.Box.Size(), dir, LabelMargin)
	default:
		dir = left
	}
	b.settle(&lbl, dir)
	return &lbl
}

// LeftNormal is the unit vector to the left of the direction of travel
// along s: (-dy, dx) normalized.
func LeftNormal(s geom.Segment) geom.Point {
	v := s.Vector().Unit()
	return geom.Pt(-v.Y, v.X)
}

// offsetBox returns a box of size sz whose nearest point along dir is
// margin away from p.
func offsetBox(p geom.Point, sz geom.Size, dir geom.Point, margin float64) geom.Box {
	extent := math.Abs(dir.X)*sz.W/2 + math.Abs(dir.Y)*sz.H/2
	return geom.BoxAt(p.Add(dir.Scale(margin+extent)), sz)
}

// settle pushes a label along dir until it clears previously placed labels,
// then records it.
func (b *builder) settle(t *Text, dir geom.Point) {
	step := dir.Scale(LabelMargin + t.Box.Size().H/2)
	for try := 0; try < labelRetries && b.collides(t.Box); try++ {
		t.Box = t.Box.Translate(step)
	}
	b.placed = append(b.placed, t.Box)
}

func (b *builder) collides(box geom.Box) bool {
	for _, p := range b.placed {
		if p.Overlaps(box) {
			return true
		}
	}
	return false
}

func labelStyle(route scene.Style) scene.Style {
	return scene.Style{Text: route.Text, FontSize: route.FontSize, Weight: route.Weight}
}

func labelFrame(route scene.Style) *scene.Style {
	return &scene.Style{Stroke: route.Stroke, Fill: styles.White, FillAlpha: 1, LineWidth: 1}
}
