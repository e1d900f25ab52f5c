package resize

import (
	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

// boxModel classifies how an element's content box is derived.
//
// The set is closed: elements either carry a conventional box model, expose an
// intrinsic bounding box, or produce no box at all. Classification is an
// explicit step so that measurement never falls back to open-ended type
// inspection.
type boxModel int

const (
	noBox boxModel = iota
	standardBox
	intrinsicBox
)

func classify(target host.Element) boxModel {
	if target == nil || !target.Rendered() {
		return noBox
	}
	if _, ok := target.(host.IntrinsicGeometry); ok {
		return intrinsicBox
	}
	if _, ok := target.(host.BoxModeled); ok {
		return standardBox
	}
	return noBox
}

// ComputeBox returns the current content box of target.
//
// It is pure: it only reads layout state and never writes it. Elements that
// are detached, display-suppressed, or expose no geometry measure as {0,0},
// which is a meaningful value, not an error. Fractional pixel values are
// preserved; no rounding is performed.
func ComputeBox(target host.Element) geometry.Size {
	switch classify(target) {
	case intrinsicBox:
		// Intrinsic bounding geometry has no padding or border concepts;
		// the bounding box is the content box.
		return target.(host.IntrinsicGeometry).BoundingBox().Size()
	case standardBox:
		return contentBox(target.(host.BoxModeled).BoxMetrics())
	default:
		return geometry.Size{}
	}
}

// contentBox reduces box metrics to content dimensions.
//
// Border-box sizing subtracts padding and border on each axis, clamped to
// zero: a border/padding combination wider than the box yields a zero content
// box, never a negative one.
func contentBox(m host.BoxMetrics) geometry.Size {
	width := m.Size.Width
	height := m.Size.Height
	if m.Sizing == host.BorderBox {
		width -= m.Padding.Horizontal() + m.Border.Horizontal()
		height -= m.Padding.Vertical() + m.Border.Vertical()
	}
	return geometry.Size{
		Width:  max(width, 0),
		Height: max(height, 0),
	}
}
