// Package geometry provides the axis-aligned rectangle primitive shared
// by the nesting engine and its verification tests.
package geometry

// Rect is an axis-aligned rectangle in sheet coordinates (mm).
// X and Y locate the bottom-left corner. A Rect tracked as free space
// always has Width > 0 and Height > 0.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect returns a Rect with the given origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// X2 returns the right edge coordinate (X + Width).
func (r Rect) X2() float64 {
	return r.X + r.Width
}

// Y2 returns the top edge coordinate (Y + Height).
func (r Rect) Y2() float64 {
	return r.Y + r.Height
}

// Area returns Width * Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Intersects reports whether r and other overlap. Rectangles that only
// touch along an edge or corner do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X2() <= other.X || other.X2() <= r.X ||
		r.Y2() <= other.Y || other.Y2() <= r.Y)
}

// Contains reports whether other lies entirely within r, borders inclusive.
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		other.X2() <= r.X2() && other.Y2() <= r.Y2()
}
