package diagrams

import (
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Layer is a translucent container with a bold title near its top edge.
type Layer struct {
	ID    string
	Title string
	Box   geom.Box
	Color scene.Color

	// Alpha is the fill opacity; zero selects 0.15.
	Alpha float64

	// TitleSize defaults to 14pt.
	TitleSize  float64
	Components []Component
}

// Component is a white box inside a layer, outlined in the layer color.
type Component struct {
	ID       string
	Label    string
	Center   geom.Point
	Size     geom.Size
	FontSize float64
}

// Link is an arrow between two components or layers.
type Link struct {
	From, To scene.End
	Label    string
	Side     scene.LabelSide
	Heads    scene.Heads
	Color    scene.Color
	Width    float64
	FontSize float64
}

// LayeredDiagram describes a stack of layers.
type LayeredDiagram struct {
	Header
	Layers []Layer
	Links  []Link
	Notes  []Note
}

// Layered builds a layered architecture diagram. Layers are drawn first,
// then every component, so components always sit on top of their layer.
func Layered(d LayeredDiagram) (*scene.Scene, error) {
	dr := newDraft(d.Header)

	for _, l := range d.Layers {
		dr.shape(scene.Shape{
			ID:     l.ID,
			Kind:   scene.Container,
			Center: l.Box.Center(),
			Size:   l.Box.Size(),
			Label:  l.Title,
			Style:  dr.style("layer", scene.Style{Stroke: l.Color, FillAlpha: l.Alpha, FontSize: l.TitleSize}),
		})
	}
	// Components use the rounded actor box without a lifeline.
	for _, l := range d.Layers {
		for _, c := range l.Components {
			dr.shape(scene.Shape{
				ID:     c.ID,
				Kind:   scene.ActorBox,
				Center: c.Center,
				Size:   c.Size,
				Label:  c.Label,
				Style: dr.style("component", scene.Style{
					Stroke:    l.Color,
					LineWidth: 1.5,
					FontSize:  c.FontSize,
					Weight:    scene.WeightNormal,
				}),
			})
		}
	}
	for _, n := range d.Notes {
		dr.note(n)
	}
	for _, k := range d.Links {
		dr.connect(scene.Connector{
			From:      k.From,
			To:        k.To,
			Label:     k.Label,
			LabelSide: k.Side,
			Heads:     k.Heads,
			Style: dr.style("link", scene.Style{
				Stroke:    k.Color,
				LineWidth: k.Width,
				FontSize:  k.FontSize,
				Weight:    scene.WeightBold,
			}),
		})
	}
	return dr.finish(d.Header)
}
