package diagrams

import (
	"fmt"

	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Note is free-standing annotation text. A set Border draws an opaque box
// behind the text.
type Note struct {
	ID       string
	Text     string
	Center   geom.Point
	Size     geom.Size
	Color    scene.Color
	Border   scene.Color
	FontSize float64
	Bold     bool
}

// Header holds the title and legend shared by every diagram type.
type Header struct {
	Title  string
	Canvas geom.Size

	// TitleAt overrides the default top-center title position.
	TitleAt   *geom.Point
	TitleSize float64

	Legend *scene.Legend
}

// draft wraps a scene builder and names styles as they are first used.
type draft struct {
	b      *scene.Builder
	styles map[scene.Style]scene.StyleRef
}

func newDraft(h Header) *draft {
	return &draft{b: scene.NewBuilder(h.Canvas), styles: make(map[scene.Style]scene.StyleRef)}
}

// style registers st under a generated name and returns its ref. Equal
// styles share one registration.
func (d *draft) style(prefix string, st scene.Style) scene.StyleRef {
	if st == (scene.Style{}) {
		return ""
	}
	if ref, ok := d.styles[st]; ok {
		return ref
	}
	ref := scene.StyleRef(fmt.Sprintf("%s-%d", prefix, len(d.styles)+1))
	if d.b.DefineStyle(string(ref), st) != nil {
		return ""
	}
	d.styles[st] = ref
	return ref
}

func (d *draft) shape(sh scene.Shape) {
	_ = d.b.AddShape(sh)
}

func (d *draft) connect(c scene.Connector) {
	_ = d.b.AddConnector(c)
}

func (d *draft) note(n Note) {
	st := scene.Style{Text: n.Color, Stroke: n.Border, FontSize: n.FontSize}
	if n.Border.IsSet() {
		st.Fill = scene.MustColor("white")
		st.LineWidth = 1.5
	}
	if n.Bold {
		st.Weight = scene.WeightBold
	}
	d.shape(scene.Shape{
		ID:     n.ID,
		Kind:   scene.Note,
		Center: n.Center,
		Size:   n.Size,
		Label:  n.Text,
		Style:  d.style("note", st),
	})
}

// finish sets title and legend and builds. The builder keeps the first
// error, so every call above may ignore its result.
func (d *draft) finish(h Header) (*scene.Scene, error) {
	if h.Title != "" {
		d.b.SetTitle(scene.Title{Text: h.Title, At: h.TitleAt, FontSize: h.TitleSize})
	}
	if h.Legend != nil {
		d.b.SetLegend(*h.Legend)
	}
	return d.b.Build()
}

// Stroke returns a style that only sets stroke color and width.
func Stroke(c scene.Color, width float64) scene.Style {
	return scene.Style{Stroke: c, LineWidth: width}
}
