package scene

import (
	"math"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/geom"
)

// Builder assembles a Scene. Every method validates its input immediately;
// after the first failure the builder keeps returning that error and Build
// reports it.
type Builder struct {
	s   *Scene
	err error
}

// NewBuilder starts a scene on a canvas of the given size.
func NewBuilder(canvas geom.Size) *Builder {
	b := &Builder{s: &Scene{
		canvas: canvas,
		styles: make(map[string]Style),
		index:  make(map[string]int),
	}}
	if !canvas.Valid() {
		b.err = errors.New(errors.ErrCodeInvalidDimensions, "canvas %vx%v must be positive", canvas.W, canvas.H)
	}
	return b
}

// Err returns the error that poisoned the builder, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) error {
	b.err = err
	return err
}

// DefineStyle registers a named style for shapes and connectors to
// reference. Names are unique within a scene.
func (b *Builder) DefineStyle(name string, st Style) error {
	if b.err != nil {
		return b.err
	}
	if name == "" {
		return b.fail(errors.New(errors.ErrCodeInvalidStyle, "style name cannot be empty"))
	}
	if _, dup := b.s.styles[name]; dup {
		return b.fail(errors.New(errors.ErrCodeInvalidStyle, "style %q already defined", name))
	}
	if err := st.validate(name); err != nil {
		return b.fail(err)
	}
	b.s.styles[name] = st
	b.s.styleNames = append(b.s.styleNames, name)
	return nil
}

// AddShape places a shape. Entity tables get their height from the number
// of fields; any height the caller supplied is replaced.
func (b *Builder) AddShape(sh Shape) error {
	if b.err != nil {
		return b.err
	}
	if sh.ID == "" {
		return b.fail(errors.New(errors.ErrCodeInvalidInput, "shape id cannot be empty"))
	}
	if !sh.Kind.Valid() {
		return b.fail(errors.New(errors.ErrCodeInvalidInput, "shape %q: unknown kind %d", sh.ID, int(sh.Kind)))
	}
	if _, dup := b.s.index[sh.ID]; dup {
		return b.fail(errors.New(errors.ErrCodeDuplicateShapeID, "duplicate shape id %q", sh.ID))
	}
	if sh.Kind == EntityTable {
		sh.Size.H = TableHeight(len(sh.Fields))
	} else if len(sh.Fields) > 0 {
		return b.fail(errors.New(errors.ErrCodeInvalidInput, "shape %q: fields are only allowed on entity tables", sh.ID))
	}
	if !sh.Size.Valid() {
		return b.fail(errors.New(errors.ErrCodeInvalidDimensions, "shape %q: size %vx%v must be positive", sh.ID, sh.Size.W, sh.Size.H))
	}
	if !finite(sh.Center.X) || !finite(sh.Center.Y) {
		return b.fail(errors.New(errors.ErrCodeInvalidInput, "shape %q: center is not finite", sh.ID))
	}
	if sh.Lifeline != nil {
		if sh.Kind != ActorBox {
			return b.fail(errors.New(errors.ErrCodeInvalidInput, "shape %q: lifelines are only allowed on actors", sh.ID))
		}
		end := *sh.Lifeline
		if !finite(end) {
			return b.fail(errors.New(errors.ErrCodeInvalidInput, "shape %q: lifeline end is not finite", sh.ID))
		}
		if bottom := sh.Center.Y - sh.Size.H/2; end >= bottom {
			return b.fail(errors.New(errors.ErrCodeInvalidDimensions, "shape %q: lifeline end %v must lie below the box bottom %v", sh.ID, end, bottom))
		}
	}
	if err := b.checkStyle(sh.Style); err != nil {
		return b.fail(err)
	}
	b.s.index[sh.ID] = len(b.s.shapes)
	b.s.shapes = append(b.s.shapes, sh.clone())
	return nil
}

// AddConnector links two anchors. Both shapes must already exist.
func (b *Builder) AddConnector(c Connector) error {
	if b.err != nil {
		return b.err
	}
	from, err := b.end(c.From)
	if err != nil {
		return b.fail(err)
	}
	to, err := b.end(c.To)
	if err != nil {
		return b.fail(err)
	}
	switch c.Routing {
	case Straight:
		if from.Eq(to) {
			return b.fail(errors.New(errors.ErrCodeDegenerateConnector,
				"connector %s.%s -> %s.%s has zero length", c.From.Shape, c.From.Anchor, c.To.Shape, c.To.Anchor))
		}
	case SelfLoop:
		if c.From.Shape != c.To.Shape {
			return b.fail(errors.New(errors.ErrCodeInvalidConnector,
				"self-loop must start and end on one shape, got %q and %q", c.From.Shape, c.To.Shape))
		}
		if c.Decoration == CrowsFoot {
			return b.fail(errors.New(errors.ErrCodeInvalidConnector, "self-loop on %q cannot carry crow's-foot ends", c.From.Shape))
		}
	default:
		return b.fail(errors.New(errors.ErrCodeInvalidConnector, "unknown routing %d", int(c.Routing)))
	}
	if c.Decoration < NoDecoration || c.Decoration > CrowsFoot {
		return b.fail(errors.New(errors.ErrCodeInvalidConnector, "unknown decoration %d", int(c.Decoration)))
	}
	if c.LabelSide < LabelLeft || c.LabelSide > LabelCenter {
		return b.fail(errors.New(errors.ErrCodeInvalidConnector, "unknown label side %d", int(c.LabelSide)))
	}
	if c.Heads < HeadEnd || c.Heads > HeadNone {
		return b.fail(errors.New(errors.ErrCodeInvalidConnector, "unknown heads %d", int(c.Heads)))
	}
	if err := b.checkStyle(c.Style); err != nil {
		return b.fail(err)
	}
	b.s.connectors = append(b.s.connectors, c)
	return nil
}

// SetLegend replaces the legend. A zero spacing selects DefaultLegendSpacing.
func (b *Builder) SetLegend(l Legend) {
	if b.err != nil {
		return
	}
	if l.Spacing <= 0 {
		l.Spacing = DefaultLegendSpacing
	}
	l = l.clone()
	b.s.legend = &l
}

// SetTitle replaces the title.
func (b *Builder) SetTitle(t Title) {
	if b.err != nil {
		return
	}
	if t.FontSize <= 0 {
		t.FontSize = DefaultTitleSize
	}
	t = t.clone()
	b.s.title = &t
}

// Build returns the finished scene, or the first error encountered.
// The builder must not be used afterwards.
func (b *Builder) Build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := b.s
	b.s = nil
	b.err = errors.New(errors.ErrCodeInternal, "builder already built")
	return s, nil
}

func (b *Builder) end(e End) (geom.Point, error) {
	i, ok := b.s.index[e.Shape]
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeUnknownShapeReference, "connector references unknown shape %q", e.Shape)
	}
	return resolveAnchor(b.s.shapes[i], e)
}

func (b *Builder) checkStyle(ref StyleRef) error {
	if ref == "" {
		return nil
	}
	if _, ok := b.s.styles[string(ref)]; !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", ref)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
