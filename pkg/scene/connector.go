package scene

import "github.com/matzehuels/schematic/pkg/geom"

// End is one endpoint of a connector. At is the lifeline depth and is only
// read for geom.Lifeline anchors.
type End struct {
	Shape  string      `json:"shape"`
	Anchor geom.Anchor `json:"anchor"`
	At     float64     `json:"at,omitempty"`
}

// Routing selects the connector path.
type Routing int

const (
	// Straight is a single segment between the two anchors.
	Straight Routing = iota
	// SelfLoop returns to the shape it starts from.
	SelfLoop
)

var routingNames = []string{"straight", "self-loop"}

func (r Routing) String() string { return enumName(routingNames, r) }

// MarshalText encodes the routing by name.
func (r Routing) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText decodes a routing name.
func (r *Routing) UnmarshalText(b []byte) error {
	v, err := parseEnum[Routing](routingNames, "routing", string(b))
	*r = v
	return err
}

// Decoration selects end markers drawn instead of arrowheads.
type Decoration int

const (
	NoDecoration Decoration = iota
	// CrowsFoot draws a one-end tick at From and a many-end foot at To.
	CrowsFoot
)

var decorationNames = []string{"none", "crows-foot"}

func (d Decoration) String() string { return enumName(decorationNames, d) }

// MarshalText encodes the decoration by name.
func (d Decoration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText decodes a decoration name.
func (d *Decoration) UnmarshalText(b []byte) error {
	v, err := parseEnum[Decoration](decorationNames, "decoration", string(b))
	*d = v
	return err
}

// LabelSide places a connector label relative to the direction of travel.
type LabelSide int

const (
	LabelLeft LabelSide = iota
	LabelRight
	LabelCenter
)

var labelSideNames = []string{"left", "right", "center"}

func (s LabelSide) String() string { return enumName(labelSideNames, s) }

// MarshalText encodes the side by name.
func (s LabelSide) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a side name.
func (s *LabelSide) UnmarshalText(b []byte) error {
	v, err := parseEnum[LabelSide](labelSideNames, "label side", string(b))
	*s = v
	return err
}

// Heads selects which ends carry arrowheads.
type Heads int

const (
	HeadEnd Heads = iota
	HeadBoth
	HeadNone
)

var headsNames = []string{"end", "both", "none"}

func (h Heads) String() string { return enumName(headsNames, h) }

// MarshalText encodes the head mode by name.
func (h Heads) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText decodes a head mode name.
func (h *Heads) UnmarshalText(b []byte) error {
	v, err := parseEnum[Heads](headsNames, "heads", string(b))
	*h = v
	return err
}

// Connector is a directed line between two shape anchors. Crow's-foot
// connectors never carry arrowheads; the foot marks the many end.
type Connector struct {
	From       End        `json:"from"`
	To         End        `json:"to"`
	Label      string     `json:"label,omitempty"`
	Routing    Routing    `json:"routing,omitempty"`
	Decoration Decoration `json:"decoration,omitempty"`
	LabelSide  LabelSide  `json:"label_side,omitempty"`
	Heads      Heads      `json:"heads,omitempty"`
	Style      StyleRef   `json:"style,omitempty"`
}
