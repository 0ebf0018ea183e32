package scene

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/schematic/pkg/errors"
)

// Color is an opaque sRGB color. The zero value means "not set" and lets
// the renderer fall back to the kind default.
type Color struct {
	c   colorful.Color
	set bool
}

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

// ParseColor parses "#rrggbb", "#rgb" or one of the names white and black.
// The empty string yields the unset color.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse color %q", s)
	}
	return Color{c: c, set: true}, nil
}

// MustColor is like ParseColor but panics on error. It is meant for
// package-level palettes.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsSet reports whether c carries a color.
func (c Color) IsSet() bool { return c.set }

// RGB returns the channels in [0, 1].
func (c Color) RGB() (r, g, b float64) { return c.c.R, c.c.G, c.c.B }

// Hex returns "#rrggbb", or "" when unset.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	return c.c.Clamped().Hex()
}

// Over composites c at the given alpha over bg and returns the opaque result.
func (c Color) Over(bg Color, alpha float64) Color {
	return Color{c: bg.c.BlendRgb(c.c, alpha), set: true}
}

// Or returns c when set and fallback otherwise.
func (c Color) Or(fallback Color) Color {
	if c.set {
		return c
	}
	return fallback
}

// MarshalText encodes the color as hex.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText decodes a value accepted by ParseColor.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Weight selects the font weight of a label.
type Weight int

const (
	WeightDefault Weight = iota
	WeightNormal
	WeightBold
)

var weightNames = []string{"", "normal", "bold"}

func (w Weight) String() string { return enumName(weightNames, w) }

// MarshalText encodes the weight by name.
func (w Weight) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText decodes a weight name.
func (w *Weight) UnmarshalText(b []byte) error {
	v, err := parseEnum[Weight](weightNames, "weight", string(b))
	*w = v
	return err
}

// StyleRef names a style registered on the builder. The empty ref selects
// the kind default.
type StyleRef string

// Style is a set of visual overrides. Zero fields inherit from the base
// style they are layered over.
type Style struct {
	Stroke    Color   `json:"stroke"`
	Fill      Color   `json:"fill"`
	Text      Color   `json:"text"`
	FillAlpha float64 `json:"fill_alpha,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
	Weight    Weight  `json:"weight,omitempty"`
	Dashed    bool    `json:"dashed,omitempty"`
}

// Over layers s on top of base: every field set in s wins.
func (s Style) Over(base Style) Style {
	out := base
	if s.Stroke.IsSet() {
		out.Stroke = s.Stroke
	}
	if s.Fill.IsSet() {
		out.Fill = s.Fill
	}
	if s.Text.IsSet() {
		out.Text = s.Text
	}
	if s.FillAlpha > 0 {
		out.FillAlpha = s.FillAlpha
	}
	if s.LineWidth > 0 {
		out.LineWidth = s.LineWidth
	}
	if s.FontSize > 0 {
		out.FontSize = s.FontSize
	}
	if s.Weight != WeightDefault {
		out.Weight = s.Weight
	}
	if s.Dashed {
		out.Dashed = true
	}
	return out
}

func (s Style) validate(name string) error {
	switch {
	case s.FillAlpha < 0 || s.FillAlpha > 1:
		return errors.New(errors.ErrCodeInvalidStyle, "style %q: fill alpha %v outside [0, 1]", name, s.FillAlpha)
	case s.LineWidth < 0:
		return errors.New(errors.ErrCodeInvalidStyle, "style %q: negative line width", name)
	case s.FontSize < 0:
		return errors.New(errors.ErrCodeInvalidStyle, "style %q: negative font size", name)
	case s.Weight < WeightDefault || s.Weight > WeightBold:
		return errors.New(errors.ErrCodeInvalidStyle, "style %q: unknown weight %d", name, s.Weight)
	}
	return nil
}
