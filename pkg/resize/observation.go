package resize

import (
	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

// observation tracks one observed target for one Observer.
//
// broadcasted holds the last content box reported to the callback. Until the
// first broadcast, hasBroadcast is false and acts as a sentinel distinct from
// every real size, including {0,0}: the first measurement of a target is
// always considered a change.
type observation struct {
	target       host.Element
	broadcasted  geometry.Size
	hasBroadcast bool
}

// active reports whether the target's content box differs from the last
// broadcast one. It does not mutate state; repeated calls against an
// unchanged box keep returning false.
func (o *observation) active() bool {
	if !o.hasBroadcast {
		return true
	}
	return ComputeBox(o.target) != o.broadcasted
}

// broadcast computes the current content box, records it as broadcast, and
// returns it. This is the only mutator. Callers invoke it at most once per
// cycle and only for observations confirmed active in the same cycle; the
// two-phase gather/broadcast protocol enforces that, so it is not re-checked
// here.
func (o *observation) broadcast() geometry.Size {
	o.broadcasted = ComputeBox(o.target)
	o.hasBroadcast = true
	return o.broadcasted
}
