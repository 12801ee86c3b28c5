// Package core provides fundamental types and utilities for the raycaster.
// It imports nothing outside the standard library, and no Bubble Tea.
package core

import "math"

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of two rectangles.
// The result is empty when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// RectFromFloat converts a floating point rectangle to cells.
// Edges are rounded independently so adjacent rectangles share an edge
// without gaps or overlap.
func RectFromFloat(x, y, w, h float64) Rect {
	x0, y0 := RoundInt(x), RoundInt(y)
	x1, y1 := RoundInt(x+w), RoundInt(y+h)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
// NaN is mapped to min.
func ClampF(val, min, max float64) float64 {
	if val < min || math.IsNaN(val) {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// RoundInt rounds half away from zero and saturates at the int32 range,
// which is far beyond any screen coordinate.
func RoundInt(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	v = ClampF(math.Round(v), math.MinInt32, math.MaxInt32)
	return int(v)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
