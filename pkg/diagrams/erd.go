package diagrams

import (
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

// DefaultTableWidth is the width of an entity table when none is given.
const DefaultTableWidth = 2.2

// Table is an entity table. Its height follows from the number of fields;
// the ID doubles as the relationship endpoint name.
type Table struct {
	ID     string
	Name   string
	Center geom.Point
	Width  float64
	Fields []scene.Field
}

// Relationship is a one-to-many link drawn with crow's-foot ends. From is
// the "one" side, To the "many" side. Label defaults to "1:M".
type Relationship struct {
	From, To             string
	FromAnchor, ToAnchor geom.Anchor
	Label                string
}

// ERDDiagram describes an entity relationship diagram.
type ERDDiagram struct {
	Header
	TableColor scene.Color
	LineColor  scene.Color
	Tables     []Table
	Relations  []Relationship
}

// ERD builds an entity relationship diagram. Relationship lines carry no
// arrowheads and a centered label box.
func ERD(d ERDDiagram) (*scene.Scene, error) {
	dr := newDraft(d.Header)

	tableStyle := dr.style("table", scene.Style{Stroke: d.TableColor})
	for _, t := range d.Tables {
		w := t.Width
		if w == 0 {
			w = DefaultTableWidth
		}
		dr.shape(scene.Shape{
			ID:     t.ID,
			Kind:   scene.EntityTable,
			Center: t.Center,
			Size:   geom.Size{W: w, H: scene.TableHeight(len(t.Fields))},
			Label:  t.Name,
			Style:  tableStyle,
			Fields: t.Fields,
		})
	}

	lineStyle := dr.style("relation", scene.Style{Stroke: d.LineColor, FontSize: 9})
	for _, r := range d.Relations {
		label := r.Label
		if label == "" {
			label = "1:M"
		}
		dr.connect(scene.Connector{
			From:       scene.End{Shape: r.From, Anchor: r.FromAnchor},
			To:         scene.End{Shape: r.To, Anchor: r.ToAnchor},
			Label:      label,
			Decoration: scene.CrowsFoot,
			LabelSide:  scene.LabelCenter,
			Heads:      scene.HeadNone,
			Style:      lineStyle,
		})
	}
	return dr.finish(d.Header)
}
