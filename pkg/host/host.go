// Package host defines the interfaces a host embedding supplies to the
// box-size observation engine.
//
// The engine never owns host elements; it only references them. An embedding
// (a renderer, a document binding, or the boxtest fakes) provides concrete
// element types plus the change signals that tell the engine when a
// re-measurement pass may be needed.
package host

import "github.com/go-drift/boxwatch/pkg/geometry"

// Element is an opaque handle to a node in the host's element tree.
//
// Element values are used as map keys, so concrete implementations must be
// comparable - in practice, pointers to the host's node type.
//
// An Element alone exposes no geometry. Hosts describe how an element's
// content box is derived by additionally implementing BoxModeled or
// IntrinsicGeometry. Elements implementing neither always measure as {0,0}.
type Element interface {
	// Rendered reports whether the element currently produces a layout box.
	// Detached or display-suppressed elements return false and measure as
	// {0,0}; that is a meaningful value, not an error.
	Rendered() bool
}

// SizingMode selects how a box-modeled element's declared size is interpreted.
type SizingMode int

const (
	// ContentBox means the declared size already is the content box.
	ContentBox SizingMode = iota
	// BorderBox means the declared size includes padding and border, which
	// must be subtracted to reach the content box.
	BorderBox
)

func (m SizingMode) String() string {
	if m == BorderBox {
		return "border-box"
	}
	return "content-box"
}

// BoxMetrics is the layout state of an element with a conventional box model.
type BoxMetrics struct {
	// Size is the declared width/height in the element's sizing mode.
	Size geometry.Size
	// Sizing selects how Size relates to the content box.
	Sizing SizingMode
	// Padding is the per-edge padding thickness.
	Padding geometry.Insets
	// Border is the per-edge border thickness.
	Border geometry.Insets
}

// BoxModeled is implemented by elements with explicit box metrics.
type BoxModeled interface {
	Element
	BoxMetrics() BoxMetrics
}

// IntrinsicGeometry is implemented by elements whose content box comes from
// an intrinsic bounding box rather than a box model - vector graphics and
// similar. Padding and border concepts do not apply to these elements.
type IntrinsicGeometry interface {
	Element
	BoundingBox() geometry.Rect
}

// ChangeSignal is a structural-mutation notification source. It carries no
// payload beyond "something may have changed, re-check".
type ChangeSignal interface {
	// Subscribe registers fn to be invoked on every structural change.
	// A signal has at most one subscriber at a time.
	Subscribe(fn func())
	// Unsubscribe removes the current subscriber.
	Unsubscribe()
}

// Ticker is a periodic timing signal. It is the fallback for size changes the
// structural signal cannot see, such as style recalculation or font loads.
type Ticker interface {
	// Start begins delivering periodic calls to fn.
	Start(fn func())
	// Stop ends delivery. Stop must be safe to call when not started.
	Stop()
}

// Binding is everything a host embedding hands to a controller.
//
// Both signals are optional: a controller with a nil signal simply never
// receives that trigger and relies on the other one, or on explicit Refresh
// calls.
type Binding struct {
	// Changes delivers structural-mutation notifications.
	Changes ChangeSignal
	// Tick delivers the periodic fallback trigger.
	Tick Ticker
	// ValidTarget reports whether a value is an observable node kind.
	//
	// A nil predicate means the host has no node-kind model; observing then
	// degrades to a silent no-op rather than a fault, so callers written
	// against a richer host keep working. A non-nil predicate returning
	// false makes Observe report a usage fault.
	ValidTarget func(Element) bool
}
