package diagrams

import (
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Actor is a participant: a box at the top with a dashed lifeline below.
type Actor struct {
	ID    string
	Label string
	X     float64
}

// MessageKind selects how a message is drawn.
type MessageKind int

const (
	// Call points from sender to receiver.
	Call MessageKind = iota
	// Return carries a response back as a dashed arrow from From to To, so
	// From is the responder.
	Return
	// Self loops on the sender's lifeline.
	Self
)

// Message is an arrow between two lifelines at depth Y. To may be empty
// for Self messages.
type Message struct {
	From, To string
	Y        float64
	Label    string
	Kind     MessageKind
}

// SequenceDiagram describes a sequence diagram. Every actor box is centered
// at height Top; lifelines run down to LifelineEnd.
type SequenceDiagram struct {
	Header
	Top         float64
	ActorSize   geom.Size
	LifelineEnd float64
	Color       scene.Color
	Actors      []Actor
	Messages    []Message
}

// Sequence builds a sequence diagram. Message labels sit above their
// arrows whichever way the arrow points.
func Sequence(d SequenceDiagram) (*scene.Scene, error) {
	dr := newDraft(d.Header)

	actorStyle := dr.style("actor", scene.Style{Stroke: d.Color})
	for _, a := range d.Actors {
		dr.shape(scene.Shape{
			ID:       a.ID,
			Kind:     scene.ActorBox,
			Center:   geom.Pt(a.X, d.Top),
			Size:     d.ActorSize,
			Label:    a.Label,
			Style:    actorStyle,
			Lifeline: scene.LifelineTo(d.LifelineEnd),
		})
	}

	x := make(map[string]float64, len(d.Actors))
	for _, a := range d.Actors {
		x[a.ID] = a.X
	}
	msgStyle := dr.style("message", scene.Style{Stroke: d.Color, LineWidth: 2})
	for _, m := range d.Messages {
		c := scene.Connector{
			From:  scene.End{Shape: m.From, Anchor: geom.Lifeline, At: m.Y},
			To:    scene.End{Shape: m.To, Anchor: geom.Lifeline, At: m.Y},
			Label: m.Label,
			Style: msgStyle,
		}
		switch m.Kind {
		case Return:
			c.Style = dr.style("reply", scene.Style{Stroke: d.Color, LineWidth: 2, Dashed: true})
			c.LabelSide = above(x[m.From], x[m.To])
		case Self:
			if m.To == "" {
				c.To.Shape = m.From
			}
			c.Routing = scene.SelfLoop
		default:
			c.LabelSide = above(x[m.From], x[m.To])
		}
		dr.connect(c)
	}
	return dr.finish(d.Header)
}

// above returns the label side that lies above a horizontal arrow.
func above(from, to float64) scene.LabelSide {
	if to < from {
		return scene.LabelRight
	}
	return scene.LabelLeft
}
