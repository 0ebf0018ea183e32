// Package styles resolves the effective visual style of every scene element.
//
// Each shape kind has a default look taken from the documentation palette.
// A named style registered on the scene is layered over that default, so a
// style only needs to carry the fields it changes. The result is fully
// populated: renderers never have to guess a color or width.
package styles

import (
	"github.com/matzehuels/schematic/pkg/fonts"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Palette colors shared by the built-in defaults and the catalog diagrams.
var (
	Blue      = scene.MustColor("#3498DB")
	Red       = scene.MustColor("#E74C3C")
	Orange    = scene.MustColor("#F39C12")
	Green     = scene.MustColor("#27AE60")
	Purple    = scene.MustColor("#9B59B6")
	SkyBlue   = scene.MustColor("#4A90E2")
	SteelBlue = scene.MustColor("#5B9BD5")
	Slate     = scene.MustColor("#34495E")
	Ink       = scene.MustColor("#2C3E50")
	Gray      = scene.MustColor("#7F8C8D")
	White     = scene.MustColor("#FFFFFF")
	Black     = scene.MustColor("#000000")
)

// Label sizes in points.
const (
	LabelSize     = 9.0
	FieldSize     = 8.0
	HeaderSize    = 11.0
	ConnectorSize = 8.0
	ContainerSize = 14.0
	LegendSize    = 9.0
)

// LifelineAlpha is the opacity of actor lifelines.
const LifelineAlpha = 0.5

var kindDefaults = map[scene.Kind]scene.Style{
	scene.Terminator:  {Stroke: Blue, Fill: Blue, Text: Ink, FillAlpha: 0.3, LineWidth: 2, FontSize: 10, Weight: scene.WeightBold},
	scene.Process:     {Stroke: Ink, Fill: White, Text: Ink, FillAlpha: 1, LineWidth: 1.5, FontSize: LabelSize, Weight: scene.WeightBold},
	scene.Decision:    {Stroke: Orange, Fill: White, Text: Ink, FillAlpha: 1, LineWidth: 2, FontSize: LabelSize, Weight: scene.WeightBold},
	scene.EntityTable: {Stroke: Blue, Fill: White, Text: Ink, FillAlpha: 1, LineWidth: 2, FontSize: FieldSize, Weight: scene.WeightNormal},
	scene.ActorBox:    {Stroke: Ink, Fill: White, Text: Ink, FillAlpha: 1, LineWidth: 2, FontSize: LabelSize, Weight: scene.WeightBold},
	scene.Container:   {Stroke: Slate, Fill: Slate, Text: Ink, FillAlpha: 0.15, LineWidth: 2, FontSize: ContainerSize, Weight: scene.WeightBold},
	scene.Note:        {Text: Ink, FillAlpha: 1, LineWidth: 1, FontSize: LabelSize, Weight: scene.WeightNormal},
}

// fillFollowsStroke lists kinds whose translucent fill is the stroke color
// unless a style names a fill explicitly.
var fillFollowsStroke = map[scene.Kind]bool{
	scene.Terminator: true,
	scene.Container:  true,
}

var connectorDefault = scene.Style{
	Stroke: Gray, Text: Ink, FillAlpha: 1, LineWidth: 2, FontSize: ConnectorSize, Weight: scene.WeightNormal,
}

// Default returns the built-in style for k.
func Default(k scene.Kind) scene.Style {
	return kindDefaults[k]
}

// ForShape returns the effective style of sh within s.
func ForShape(s *scene.Scene, sh scene.Shape) scene.Style {
	base := Default(sh.Kind)
	if sh.Style == "" {
		return base
	}
	named, ok := s.Style(sh.Style)
	if !ok {
		return base
	}
	out := named.Over(base)
	if fillFollowsStroke[sh.Kind] && !named.Fill.IsSet() && named.Stroke.IsSet() {
		out.Fill = named.Stroke
	}
	return out
}

// ForConnector returns the effective style of c within s.
func ForConnector(s *scene.Scene, c scene.Connector) scene.Style {
	if c.Style == "" {
		return connectorDefault
	}
	named, ok := s.Style(c.Style)
	if !ok {
		return connectorDefault
	}
	return named.Over(connectorDefault)
}

// Header returns the style of an entity table header band: filled with the
// table's stroke color and lettered in bold white.
func Header(table scene.Style) scene.Style {
	return scene.Style{
		Stroke:    table.Stroke,
		Fill:      table.Stroke,
		Text:      White,
		FillAlpha: 1,
		LineWidth: table.LineWidth,
		FontSize:  HeaderSize,
		Weight:    scene.WeightBold,
	}
}

// Lifeline returns the dashed lifeline style for an actor. Lifelines are
// stroked at LifelineAlpha.
func Lifeline() scene.Style {
	return scene.Style{Stroke: Gray, LineWidth: 1.5, Dashed: true}
}

// Legend returns the text style of legend entries.
func Legend(size float64) scene.Style {
	if size <= 0 {
		size = LegendSize
	}
	return scene.Style{Text: Ink, FontSize: size, Weight: scene.WeightNormal}
}

// Title returns the style of the diagram title.
func Title(size float64) scene.Style {
	if size <= 0 {
		size = scene.DefaultTitleSize
	}
	return scene.Style{Text: Ink, FontSize: size, Weight: scene.WeightBold}
}

// FontStyle maps a label weight to an embedded face.
func FontStyle(st scene.Style) fonts.Style {
	if st.Weight == scene.WeightBold {
		return fonts.Bold
	}
	return fonts.Regular
}
