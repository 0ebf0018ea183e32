package scene

import (
	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/geom"
)

// Op names a builder method.
type Op string

const (
	OpDefineStyle  Op = "define_style"
	OpAddShape     Op = "add_shape"
	OpAddConnector Op = "add_connector"
	OpSetLegend    Op = "set_legend"
	OpSetTitle     Op = "set_title"
)

// Call is one recorded builder invocation. Exactly one payload field is set,
// matching Op.
type Call struct {
	Op        Op         `json:"op"`
	Name      string     `json:"name,omitempty"`
	Style     *Style     `json:"style,omitempty"`
	Shape     *Shape     `json:"shape,omitempty"`
	Connector *Connector `json:"connector,omitempty"`
	Legend    *Legend    `json:"legend,omitempty"`
	Title     *Title     `json:"title,omitempty"`
}

// Calls returns a builder call sequence that reproduces s when replayed on
// its canvas: styles, shapes, connectors, legend, then title.
func (s *Scene) Calls() []Call {
	calls := make([]Call, 0, len(s.styleNames)+len(s.shapes)+len(s.connectors)+2)
	for _, name := range s.styleNames {
		st := s.styles[name]
		calls = append(calls, Call{Op: OpDefineStyle, Name: name, Style: &st})
	}
	for _, sh := range s.shapes {
		sh := sh.clone()
		calls = append(calls, Call{Op: OpAddShape, Shape: &sh})
	}
	for _, c := range s.connectors {
		calls = append(calls, Call{Op: OpAddConnector, Connector: &c})
	}
	if l, ok := s.Legend(); ok {
		calls = append(calls, Call{Op: OpSetLegend, Legend: &l})
	}
	if t, ok := s.Title(); ok {
		calls = append(calls, Call{Op: OpSetTitle, Title: &t})
	}
	return calls
}

// Replay runs calls against a fresh builder on canvas.
func Replay(canvas geom.Size, calls []Call) (*Scene, error) {
	b := NewBuilder(canvas)
	for _, c := range calls {
		if err := b.Apply(c); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Apply dispatches a single recorded call.
func (b *Builder) Apply(c Call) error {
	if b.err != nil {
		return b.err
	}
	switch c.Op {
	case OpDefineStyle:
		if c.Style == nil {
			return b.fail(missingPayload(c.Op))
		}
		return b.DefineStyle(c.Name, *c.Style)
	case OpAddShape:
		if c.Shape == nil {
			return b.fail(missingPayload(c.Op))
		}
		return b.AddShape(*c.Shape)
	case OpAddConnector:
		if c.Connector == nil {
			return b.fail(missingPayload(c.Op))
		}
		return b.AddConnector(*c.Connector)
	case OpSetLegend:
		if c.Legend == nil {
			return b.fail(missingPayload(c.Op))
		}
		b.SetLegend(*c.Legend)
		return b.err
	case OpSetTitle:
		if c.Title == nil {
			return b.fail(missingPayload(c.Op))
		}
		b.SetTitle(*c.Title)
		return b.err
	}
	return b.fail(errors.New(errors.ErrCodeInvalidInput, "unknown builder op %q", c.Op))
}

func missingPayload(op Op) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s call has no payload", op)
}
