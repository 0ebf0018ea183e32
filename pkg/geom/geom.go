// Package geom provides the grid geometry shared by scenes, layouts and
// renderers.
//
// All coordinates are in grid units with the origin at the bottom-left of
// the canvas and Y pointing up. Renderers map units to pixels; nothing in
// this package knows about pixels.
package geom

import "math"

// Point is a position on the grid.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p*k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Len returns the length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Unit returns p scaled to length 1, or the zero vector if p is zero.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Eq reports whether p and q coincide within Epsilon.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// Polar returns the vector of length r pointing at angle (radians).
func Polar(angle, r float64) Point {
	return Point{r * math.Cos(angle), r * math.Sin(angle)}
}

// Angle returns the direction from p to q, atan2(dy, dx).
func Angle(p, q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// Epsilon is the tolerance used when comparing grid positions.
const Epsilon = 1e-9

// Size is a width and height in grid units.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Valid reports whether both dimensions are finite and strictly positive.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0 && !math.IsInf(s.W, 0) && !math.IsInf(s.H, 0)
}

// Box is an axis-aligned rectangle.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// BoxAt returns the box of the given size centered on c.
func BoxAt(c Point, s Size) Box {
	return Box{
		Min: Point{c.X - s.W/2, c.Y - s.H/2},
		Max: Point{c.X + s.W/2, c.Y + s.H/2},
	}
}

// Center returns the midpoint of b.
func (b Box) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Size returns the dimensions of b.
func (b Box) Size() Size {
	return Size{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y}
}

// Contains reports whether o lies entirely inside b (edges included).
func (b Box) Contains(o Box) bool {
	return o.Min.X >= b.Min.X-Epsilon && o.Min.Y >= b.Min.Y-Epsilon &&
		o.Max.X <= b.Max.X+Epsilon && o.Max.Y <= b.Max.Y+Epsilon
}

// Overlaps reports whether the interiors of b and o intersect.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X < o.Max.X-Epsilon && o.Min.X < b.Max.X-Epsilon &&
		b.Min.Y < o.Max.Y-Epsilon && o.Min.Y < b.Max.Y-Epsilon
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Expand grows b by m on every side.
func (b Box) Expand(m float64) Box {
	return Box{
		Min: Point{b.Min.X - m, b.Min.Y - m},
		Max: Point{b.Max.X + m, b.Max.Y + m},
	}
}

// Translate moves b by d.
func (b Box) Translate(d Point) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Segment is a straight line between two points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Vector returns B-A.
func (s Segment) Vector() Point { return s.B.Sub(s.A) }

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return s.Vector().Len() }

// Angle returns the direction of travel from A to B.
func (s Segment) Angle() float64 { return Angle(s.A, s.B) }

// Midpoint returns the point halfway along s.
func (s Segment) Midpoint() Point {
	return Point{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2}
}

// Degenerate reports whether the endpoints coincide.
func (s Segment) Degenerate() bool { return s.A.Eq(s.B) }
