// Package layout holds the geometry types shared by the engine and the
// single-axis flex solver used to size container children.
package layout

// Axis is the main axis of a container.
type Axis uint8

const (
	// Vertical stacks children top to bottom.
	Vertical Axis = iota
	// Horizontal stacks children left to right.
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Point is a position in logical pixels.
type Point struct {
	X, Y float32
}

// Size is a width and height in logical pixels.
type Size struct {
	W, H float32
}

// Main returns the size along axis a.
func (s Size) Main(a Axis) float32 {
	if a == Horizontal {
		return s.W
	}
	return s.H
}

// Cross returns the size across axis a.
func (s Size) Cross(a Axis) float32 {
	if a == Horizontal {
		return s.H
	}
	return s.W
}

// SizeOn builds a Size from main and cross lengths along axis a.
func SizeOn(a Axis, main, cross float32) Size {
	if a == Horizontal {
		return Size{W: main, H: cross}
	}
	return Size{W: cross, H: main}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float32
}

// RectFromSize returns a rect at the origin with size s.
func RectFromSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

// Size returns the rect's size.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Translate offsets r by (dx, dy).
func (r Rect) Translate(dx, dy float32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks r by d on every side, clamping at zero size.
func (r Rect) Inset(d float32) Rect {
	r.X += d
	r.Y += d
	r.W = max(r.W-2*d, 0)
	r.H = max(r.H-2*d, 0)
	return r
}

// Union returns the smallest rect containing both r and o. An empty rect
// (zero width and height) is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.Right(), o.Right())
	y1 := max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersect returns the overlap of r and o. Disjoint rects yield a zero-size
// rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
