package scene

import "github.com/matzehuels/schematic/pkg/geom"

// Swatch is the marker drawn before a legend entry.
type Swatch int

const (
	SwatchFilled Swatch = iota
	SwatchOutlined
	SwatchDiamond
	SwatchLine
	// SwatchNone renders the entry as text only.
	SwatchNone
)

var swatchNames = []string{"filled", "outlined", "diamond", "line", "none"}

func (s Swatch) String() string { return enumName(swatchNames, s) }

// MarshalText encodes the swatch by name.
func (s Swatch) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a swatch name.
func (s *Swatch) UnmarshalText(b []byte) error {
	v, err := parseEnum[Swatch](swatchNames, "swatch", string(b))
	*s = v
	return err
}

// LegendEntry is one row of a legend.
type LegendEntry struct {
	Swatch Swatch `json:"swatch"`
	Color  Color  `json:"color"`
	Text   string `json:"text"`
}

// DefaultLegendSpacing is the vertical distance between legend rows.
const DefaultLegendSpacing = 0.3

// Legend lists entries downward from Origin, the left end of the first row.
type Legend struct {
	Origin   geom.Point    `json:"origin"`
	Spacing  float64       `json:"spacing,omitempty"`
	FontSize float64       `json:"font_size,omitempty"`
	Entries  []LegendEntry `json:"entries"`
}

// DefaultTitleSize is the title font size in points.
const DefaultTitleSize = 16

// Title is drawn centered on At, or at the top center of the canvas when
// At is nil.
type Title struct {
	Text     string      `json:"text"`
	At       *geom.Point `json:"at,omitempty"`
	FontSize float64     `json:"font_size,omitempty"`
}

func (l Legend) clone() Legend {
	l.Entries = append([]LegendEntry(nil), l.Entries...)
	return l
}

func (t Title) clone() Title {
	if t.At != nil {
		at := *t.At
		t.At = &at
	}
	return t
}
