package geom

import (
	"strings"

	"github.com/matzehuels/schematic/pkg/errors"
)

// Anchor names an attachment point on a shape's boundary.
type Anchor int

const (
	Center Anchor = iota
	Top
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	// Lifeline attaches to an actor's lifeline at a caller-supplied depth.
	// It has no boundary position and is resolved by the scene.
	Lifeline
)

var anchorNames = [...]string{
	Center:      "center",
	Top:         "top",
	Bottom:      "bottom",
	Left:        "left",
	Right:       "right",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
	Lifeline:    "lifeline",
}

var anchorAliases = map[string]Anchor{
	"c":  Center,
	"n":  Top,
	"s":  Bottom,
	"w":  Left,
	"e":  Right,
	"nw": TopLeft,
	"ne": TopRight,
	"sw": BottomLeft,
	"se": BottomRight,
}

// String returns the canonical lower-case name.
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return "unknown"
	}
	return anchorNames[a]
}

// Valid reports whether a is one of the declared anchors.
func (a Anchor) Valid() bool {
	return a >= Center && a <= Lifeline
}

// ParseAnchor resolves a name such as "top", "ne" or "bottom-left".
func ParseAnchor(name string) (Anchor, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range anchorNames {
		if s == n {
			return Anchor(i), nil
		}
	}
	if a, ok := anchorAliases[n]; ok {
		return a, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAnchor, "unknown anchor %q", name)
}

// MarshalText encodes the anchor by name.
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidAnchor, "unknown anchor %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes a name accepted by ParseAnchor.
func (a *Anchor) UnmarshalText(b []byte) error {
	v, err := ParseAnchor(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// RectAnchor resolves a on the rectangle of size s centered on c.
// Side anchors are edge midpoints and diagonal anchors are corners.
func RectAnchor(c Point, s Size, a Anchor) (Point, error) {
	hw, hh := s.W/2, s.H/2
	switch a {
	case Center:
		return c, nil
	case Top:
		return Point{c.X, c.Y + hh}, nil
	case Bottom:
		return Point{c.X, c.Y - hh}, nil
	case Left:
		return Point{c.X - hw, c.Y}, nil
	case Right:
		return Point{c.X + hw, c.Y}, nil
	case TopLeft:
		return Point{c.X - hw, c.Y + hh}, nil
	case TopRight:
		return Point{c.X + hw, c.Y + hh}, nil
	case BottomLeft:
		return Point{c.X - hw, c.Y - hh}, nil
	case BottomRight:
		return Point{c.X + hw, c.Y - hh}, nil
	}
	return Point{}, errors.New(errors.ErrCodeInvalidAnchor, "anchor %s is not a rectangle boundary anchor", a)
}

// RhombusAnchor resolves a on the rhombus inscribed in the box of size s
// centered on c. Side anchors are the vertices; diagonal anchors are the
// midpoints of the rhombus edges, which lie on the outline rather than at
// the bounding box corners.
func RhombusAnchor(c Point, s Size, a Anchor) (Point, error) {
	hw, hh := s.W/2, s.H/2
	qw, qh := s.W/4, s.H/4
	switch a {
	case Center:
		return c, nil
	case Top:
		return Point{c.X, c.Y + hh}, nil
	case Bottom:
		return Point{c.X, c.Y - hh}, nil
	case Left:
		return Point{c.X - hw, c.Y}, nil
	case Right:
		return Point{c.X + hw, c.Y}, nil
	case TopLeft:
		return Point{c.X - qw, c.Y + qh}, nil
	case TopRight:
		return Point{c.X + qw, c.Y + qh}, nil
	case BottomLeft:
		return Point{c.X - qw, c.Y - qh}, nil
	case BottomRight:
		return Point{c.X + qw, c.Y - qh}, nil
	}
	return Point{}, errors.New(errors.ErrCodeInvalidAnchor, "anchor %s is not a rhombus boundary anchor", a)
}

// RhombusOutline returns the four vertices of the rhombus inscribed in the
// box of size s centered on c, clockwise from the top.
func RhombusOutline(c Point, s Size) []Point {
	hw, hh := s.W/2, s.H/2
	return []Point{
		{c.X, c.Y + hh},
		{c.X + hw, c.Y},
		{c.X, c.Y - hh},
		{c.X - hw, c.Y},
	}
}

// Normal returns the outward unit direction for a. Center and Lifeline
// point up.
func Normal(a Anchor) Point {
	const d = 0.7071067811865476
	switch a {
	case Bottom:
		return Point{0, -1}
	case Left:
		return Point{-1, 0}
	case Right:
		return Point{1, 0}
	case TopLeft:
		return Point{-d, d}
	case TopRight:
		return Point{d, d}
	case BottomLeft:
		return Point{-d, -d}
	case BottomRight:
		return Point{d, -d}
	}
	return Point{0, 1}
}
