package boxtest

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/boxwatch/pkg/geometry"
)

// TextElement is an intrinsic-geometry element whose bounding box is measured
// from a font face. It models content that resizes for non-structural reasons
// (text mutation, font metrics) - exactly the changes the periodic tick
// fallback exists to catch.
type TextElement struct {
	name     string
	detached bool
	text     string
	face     font.Face
}

// NewTextElement creates an attached text element measured with a fixed
// bitmap face.
func NewTextElement(name, text string) *TextElement {
	return &TextElement{name: name, text: text, face: basicfont.Face7x13}
}

// Name returns the element's scenario name.
func (e *TextElement) Name() string { return e.name }

// Rendered reports whether the element currently produces a layout box.
func (e *TextElement) Rendered() bool { return !e.detached }

// Text returns the current content string.
func (e *TextElement) Text() string { return e.text }

// SetText replaces the content string, changing the measured bounds.
func (e *TextElement) SetText(text string) { e.text = text }

// Detach removes the element from rendering; it measures as {0,0}.
func (e *TextElement) Detach() { e.detached = true }

// Attach restores the element to rendering.
func (e *TextElement) Attach() { e.detached = false }

// BoundingBox measures the text with the element's font face. Width is the
// advance of the string; height is ascent plus descent.
func (e *TextElement) BoundingBox() geometry.Rect {
	advance := font.MeasureString(e.face, e.text)
	metrics := e.face.Metrics()
	width := fixedToFloat(advance)
	height := fixedToFloat(metrics.Ascent) + fixedToFloat(metrics.Descent)
	return geometry.RectFromLTWH(0, 0, width, height)
}

// fixedToFloat converts a 26.6 fixed-point value to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
