package resize

import (
	"slices"
	"sync"

	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

// Entry is one reported size change: the target and its content box at
// broadcast time. Entries are immutable snapshots; layout mutations made by
// the receiving callback are never applied retroactively to entries already
// delivered.
type Entry struct {
	Target     host.Element
	ContentBox geometry.Size
}

// Callback receives one ordered batch of entries per broadcast, together with
// the observer that produced it. Entries are ordered by when their targets
// were first observed.
type Callback func(entries []Entry, obs *Observer)

// Observer holds one callback and the set of targets it watches.
//
// A target is held at most once per observer; re-observing it is a no-op.
// Observations iterate in insertion order, which is also the order of entries
// in delivered batches.
//
// The observation set is guarded by an internal mutex shared with the refresh
// path, so Observe, Unobserve and Disconnect may be called while a ticker or
// change signal drives refreshes from another goroutine. The mutex is never
// held while the callback runs, which keeps re-entrant calls from inside a
// callback safe.
type Observer struct {
	controller *Controller
	callback   Callback

	mu sync.Mutex
	// observations in insertion order, with an identity index for O(1)
	// duplicate and membership checks.
	observations []*observation
	index        map[host.Element]*observation
	// active is the transient gather result for the current cycle.
	active []*observation
}

// Observe starts watching target and requests an immediate refresh, so a late
// joiner does not wait for the next natural trigger.
//
// A nil target is a usage fault. When the host binding carries a node-kind
// predicate, a target failing it is a usage fault too; without a predicate the
// host cannot classify nodes and Observe degrades to a silent no-op. Observing
// an already-watched target is a silent no-op.
func (o *Observer) Observe(target host.Element) error {
	if target == nil {
		return ErrNilTarget
	}
	valid := o.controller.validTarget()
	if valid == nil {
		return nil
	}
	if !valid(target) {
		return ErrInvalidTarget
	}

	o.mu.Lock()
	if _, ok := o.index[target]; ok {
		o.mu.Unlock()
		return nil
	}
	if o.index == nil {
		o.index = make(map[host.Element]*observation)
	}
	obs := &observation{target: target}
	o.index[target] = obs
	o.observations = append(o.observations, obs)
	o.mu.Unlock()

	o.controller.addObserver(o)
	o.controller.Refresh()
	return nil
}

// Unobserve stops watching target. Unknown targets are a silent no-op; the
// usage-fault rules match Observe. When the last observation is removed the
// observer deregisters from its controller.
func (o *Observer) Unobserve(target host.Element) error {
	if target == nil {
		return ErrNilTarget
	}
	valid := o.controller.validTarget()
	if valid == nil {
		return nil
	}
	if !valid(target) {
		return ErrInvalidTarget
	}

	o.mu.Lock()
	obs, ok := o.index[target]
	if !ok {
		o.mu.Unlock()
		return nil
	}
	delete(o.index, target)
	if i := slices.Index(o.observations, obs); i >= 0 {
		o.observations = slices.Delete(o.observations, i, i+1)
	}
	empty := len(o.observations) == 0
	o.mu.Unlock()

	if empty {
		o.controller.removeObserver(o)
	}
	return nil
}

// Disconnect drops every observation and deregisters from the controller.
//
// It is idempotent and safe to call from inside a callback: entries already
// staged for the current cycle are discarded, not delivered.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	o.active = nil
	o.observations = nil
	clear(o.index)
	o.mu.Unlock()

	o.controller.removeObserver(o)
}

// Size returns the number of targets currently observed.
func (o *Observer) Size() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observations)
}

// gatherActive rebuilds the active list from scratch and returns its length:
// every observation whose content box changed since its last broadcast, in
// insertion order.
func (o *Observer) gatherActive() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = o.active[:0]
	for _, obs := range o.observations {
		if obs.active() {
			o.active = append(o.active, obs)
		}
	}
	return len(o.active)
}

// hasActive reports whether the last gather staged any changed observations.
func (o *Observer) hasActive() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.active) > 0
}

// broadcastActive delivers one callback invocation covering every staged
// observation.
//
// The entry batch is snapshotted and the stage cleared before user code runs,
// so a callback mutating the observation set mid-broadcast never affects the
// in-flight batch, and a panicking callback propagates to the host's fault
// handling without leaving this observer's stage populated. Each broadcast box
// is recorded before delivery, so a fault never causes redelivery either.
func (o *Observer) broadcastActive() {
	o.mu.Lock()
	if len(o.active) == 0 {
		o.mu.Unlock()
		return
	}
	entries := make([]Entry, len(o.active))
	for i, obs := range o.active {
		entries[i] = Entry{Target: obs.target, ContentBox: obs.broadcast()}
	}
	o.active = o.active[:0]
	o.mu.Unlock()

	o.callback(entries, o)
}
