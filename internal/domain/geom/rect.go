// Package geom holds the axis-aligned geometry shared by pixel maps and collision tests.
package geom

// Rect is an axis-aligned rectangle: top-left corner plus extents.
// A negative extent grows the rect left or up from X or Y; see Canon.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the X coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Offset returns the rect moved by (dx, dy)
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Canon returns the same area with non-negative Width and Height
func (r Rect) Canon() Rect {
	if r.Width < 0 {
		r.X, r.Width = r.X+r.Width, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = r.Y+r.Height, -r.Height
	}
	return r
}

// Overlaps reports whether r and o share at least one point.
// Edges are closed: rects that only touch along a border overlap.
func (r Rect) Overlaps(o Rect) bool {
	r, o = r.Canon(), o.Canon()
	return !(r.Bottom() < o.Y ||
		r.Y > o.Bottom() ||
		r.Right() < o.X ||
		r.X > o.Right())
}
