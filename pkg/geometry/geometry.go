// Package geometry provides the value types used to describe element boxes.
package geometry

// Size represents width and height dimensions in pixels.
//
// Sizes compare with exact field-wise equality. Change detection depends on
// this: two measurements are "the same box" only when both fields match
// bit-for-bit, so fractional pixel values are preserved and never rounded.
type Size struct {
	Width  float64
	Height float64
}

// Insets describes per-edge thickness, such as padding or border widths.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformInsets returns Insets with the same value on all four edges.
func UniformInsets(value float64) Insets {
	return Insets{Top: value, Right: value, Bottom: value, Left: value}
}

// Horizontal returns the combined left and right thickness.
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Vertical returns the combined top and bottom thickness.
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}
