package diagrams

import (
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

// StepKind is the role of a flowchart step.
type StepKind int

const (
	StepProcess StepKind = iota
	StepTerminal
	StepDecision
)

// Step is one flowchart node.
type Step struct {
	ID     string
	Kind   StepKind
	Label  string
	Center geom.Point
	Size   geom.Size
}

// Flow is an arrow between two steps. A set Color colors the label text,
// as for the "Yes"/"No" branches of a decision.
type Flow struct {
	From, To scene.End
	Label    string
	Side     scene.LabelSide
	Color    scene.Color
}

// FlowPalette colors each step kind and the arrows.
type FlowPalette struct {
	Terminal scene.Color
	Process  scene.Color
	Decision scene.Color
	Arrow    scene.Color
}

// FlowchartDiagram describes a flowchart.
type FlowchartDiagram struct {
	Header
	Palette FlowPalette
	Steps   []Step
	Flows   []Flow
	Notes   []Note
}

// Flowchart builds a flowchart. Terminals are translucent rounded boxes,
// processes white boxes and decisions white rhombi.
func Flowchart(d FlowchartDiagram) (*scene.Scene, error) {
	dr := newDraft(d.Header)

	refs := map[StepKind]scene.StyleRef{
		StepTerminal: dr.style("terminal", scene.Style{Stroke: d.Palette.Terminal}),
		StepProcess:  dr.style("process", scene.Style{Stroke: d.Palette.Process, LineWidth: 2}),
		StepDecision: dr.style("decision", scene.Style{Stroke: d.Palette.Decision, FontSize: 8.5}),
	}
	kinds := map[StepKind]scene.Kind{
		StepTerminal: scene.Terminator,
		StepProcess:  scene.Process,
		StepDecision: scene.Decision,
	}
	for _, s := range d.Steps {
		dr.shape(scene.Shape{
			ID:     s.ID,
			Kind:   kinds[s.Kind],
			Center: s.Center,
			Size:   s.Size,
			Label:  s.Label,
			Style:  refs[s.Kind],
		})
	}
	for _, n := range d.Notes {
		dr.note(n)
	}
	for _, f := range d.Flows {
		st := scene.Style{Stroke: d.Palette.Arrow, Text: f.Color}
		if f.Color.IsSet() {
			st.Weight = scene.WeightBold
		}
		dr.connect(scene.Connector{
			From:      f.From,
			To:        f.To,
			Label:     f.Label,
			LabelSide: f.Side,
			Style:     dr.style("flow", st),
		})
	}
	return dr.finish(d.Header)
}
