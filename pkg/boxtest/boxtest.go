// Package boxtest provides a scriptable fake host for exercising the resize
// engine in tests and demos.
//
// The fakes are deliberately single-threaded: they are meant to be driven
// from one goroutine, the way a host execution context delivers signals.
package boxtest

import (
	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

// Element is a scriptable box-modeled host element.
type Element struct {
	name     string
	detached bool
	metrics  host.BoxMetrics
}

// NewElement creates an attached element with content-box sizing and no
// padding or border.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// Name returns the element's scenario name.
func (e *Element) Name() string { return e.name }

// Rendered reports whether the element currently produces a layout box.
func (e *Element) Rendered() bool { return !e.detached }

// BoxMetrics returns the element's current layout state.
func (e *Element) BoxMetrics() host.BoxMetrics { return e.metrics }

// SetMetrics replaces the element's layout state wholesale.
func (e *Element) SetMetrics(m host.BoxMetrics) { e.metrics = m }

// Resize sets the declared width and height, keeping the sizing mode,
// padding, and border.
func (e *Element) Resize(width, height float64) {
	e.metrics.Size = geometry.Size{Width: width, Height: height}
}

// Detach removes the element from rendering; it measures as {0,0}.
func (e *Element) Detach() { e.detached = true }

// Attach restores the element to rendering.
func (e *Element) Attach() { e.detached = false }

// VectorElement is a scriptable intrinsic-geometry host element.
type VectorElement struct {
	name     string
	detached bool
	bounds   geometry.Rect
}

// NewVectorElement creates an attached vector element with the given bounds.
func NewVectorElement(name string, bounds geometry.Rect) *VectorElement {
	return &VectorElement{name: name, bounds: bounds}
}

// Name returns the element's scenario name.
func (e *VectorElement) Name() string { return e.name }

// Rendered reports whether the element currently produces a layout box.
func (e *VectorElement) Rendered() bool { return !e.detached }

// BoundingBox returns the element's intrinsic bounds.
func (e *VectorElement) BoundingBox() geometry.Rect { return e.bounds }

// SetBounds replaces the element's intrinsic bounds.
func (e *VectorElement) SetBounds(bounds geometry.Rect) { e.bounds = bounds }

// Detach removes the element from rendering; it measures as {0,0}.
func (e *VectorElement) Detach() { e.detached = true }

// Attach restores the element to rendering.
func (e *VectorElement) Attach() { e.detached = false }

// Signal is a manually fired structural-change signal.
type Signal struct {
	fn func()
}

// Subscribe registers the handler.
func (s *Signal) Subscribe(fn func()) { s.fn = fn }

// Unsubscribe removes the handler.
func (s *Signal) Unsubscribe() { s.fn = nil }

// Subscribed reports whether a handler is attached.
func (s *Signal) Subscribed() bool { return s.fn != nil }

// Fire invokes the handler, if any.
func (s *Signal) Fire() {
	if s.fn != nil {
		s.fn()
	}
}

// ManualTicker is a Ticker advanced explicitly by tests.
type ManualTicker struct {
	fn func()
}

// Start registers the handler.
func (t *ManualTicker) Start(fn func()) { t.fn = fn }

// Stop removes the handler. Safe to call when not started.
func (t *ManualTicker) Stop() { t.fn = nil }

// Running reports whether a handler is attached.
func (t *ManualTicker) Running() bool { return t.fn != nil }

// Tick invokes the handler, if any.
func (t *ManualTicker) Tick() {
	if t.fn != nil {
		t.fn()
	}
}

// NewBinding returns a host binding wired to a manual signal and ticker,
// accepting the element kinds in this package as observable targets.
func NewBinding() (host.Binding, *Signal, *ManualTicker) {
	signal := &Signal{}
	ticker := &ManualTicker{}
	binding := host.Binding{
		Changes:     signal,
		Tick:        ticker,
		ValidTarget: ValidTarget,
	}
	return binding, signal, ticker
}

// ValidTarget is the node-kind predicate for boxtest elements.
func ValidTarget(e host.Element) bool {
	switch e.(type) {
	case *Element, *VectorElement, *TextElement:
		return true
	default:
		return false
	}
}
