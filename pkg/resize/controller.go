package resize

import (
	stderrors "errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-drift/boxwatch/pkg/errors"
	"github.com/go-drift/boxwatch/pkg/host"
)

// DefaultMaxCycles is the convergence bound used when a controller is
// constructed without an explicit one: the number of consecutive
// gather/broadcast cycles allowed within one refresh trigger.
const DefaultMaxCycles = 8

// Controller drives refresh cycles across every registered observer.
//
// It owns the connection to the host's signals with a strict resource
// discipline: listeners attach when the first observer registers and detach
// when the last one leaves, so an idle process holds no host-level listeners.
type Controller struct {
	maxCycles int

	// mu serializes refresh cycles; a refresh runs to completion under it.
	mu sync.Mutex
	// pending coalesces refresh requests arriving while one is in flight,
	// including nested requests from inside callbacks.
	pending atomic.Bool

	regMu     sync.Mutex
	binding   host.Binding
	observers []*Observer
	connected bool

	refreshes  atomic.Uint64
	cycles     atomic.Uint64
	broadcasts atomic.Uint64
	suppressed atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxCycles sets the convergence bound for one refresh trigger.
// Values below one are ignored.
func WithMaxCycles(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.maxCycles = n
		}
	}
}

// NewController creates a controller wired to the given host binding.
func NewController(binding host.Binding, opts ...Option) *Controller {
	c := &Controller{
		maxCycles: DefaultMaxCycles,
		binding:   binding,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	defaultController     *Controller
	defaultControllerOnce sync.Once
)

// Default returns the process-wide controller, constructing it on first use.
// It starts with an empty binding; embeddings install theirs with Bind before
// registering observers.
func Default() *Controller {
	defaultControllerOnce.Do(func() {
		defaultController = NewController(host.Binding{})
	})
	return defaultController
}

// NewObserver creates an observer bound to this controller. The callback is
// required; a nil callback is a usage fault.
func (c *Controller) NewObserver(cb Callback) (*Observer, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}
	return &Observer{controller: c, callback: cb}, nil
}

// NewObserver creates an observer bound to the process-wide controller.
func NewObserver(cb Callback) (*Observer, error) {
	return Default().NewObserver(cb)
}

// Bind replaces the controller's host binding. If listeners are currently
// attached they move to the new binding's signals.
func (c *Controller) Bind(binding host.Binding) {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	wasConnected := c.connected
	if wasConnected {
		c.disconnectLocked()
	}
	c.binding = binding
	if wasConnected {
		c.connectLocked()
	}
}

// validTarget returns the binding's node-kind predicate, or nil when the host
// has no node-kind model.
func (c *Controller) validTarget() func(host.Element) bool {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	return c.binding.ValidTarget
}

// addObserver registers an observer, attaching host listeners on the
// empty-to-populated transition. Registration order is broadcast order.
func (c *Controller) addObserver(o *Observer) {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	if slices.Contains(c.observers, o) {
		return
	}
	c.observers = append(c.observers, o)
	c.connectLocked()
}

// removeObserver deregisters an observer, detaching host listeners when the
// set becomes empty.
func (c *Controller) removeObserver(o *Observer) {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	i := slices.Index(c.observers, o)
	if i < 0 {
		return
	}
	c.observers = slices.Delete(c.observers, i, i+1)
	if len(c.observers) == 0 {
		c.disconnectLocked()
	}
}

func (c *Controller) connectLocked() {
	if c.connected {
		return
	}
	c.connected = true
	if c.binding.Changes == nil && c.binding.Tick == nil {
		errors.Report(&errors.WatchError{
			Op:   "resize.Controller.connect",
			Kind: errors.KindHost,
			Err:  stderrors.New("binding has no change signal or ticker; only explicit Refresh will trigger measurement"),
		})
	}
	if c.binding.Changes != nil {
		c.binding.Changes.Subscribe(c.Refresh)
	}
	if c.binding.Tick != nil {
		c.binding.Tick.Start(c.Refresh)
	}
}

func (c *Controller) disconnectLocked() {
	if !c.connected {
		return
	}
	c.connected = false
	if c.binding.Changes != nil {
		c.binding.Changes.Unsubscribe()
	}
	if c.binding.Tick != nil {
		c.binding.Tick.Stop()
	}
}

// Connected reports whether host listeners are currently attached.
func (c *Controller) Connected() bool {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	return c.connected
}

func (c *Controller) snapshotObservers() []*Observer {
	c.regMu.Lock()
	defer c.regMu.Unlock()
	return slices.Clone(c.observers)
}

// Refresh runs one full refresh trigger: the bounded convergence loop over
// gather, decide, broadcast, re-check.
//
// Refresh is the entry point for every trigger source - host change signals,
// the periodic tick, and Observe's immediate request. Requests arriving while
// a refresh is in flight (including nested requests made by callbacks) are
// coalesced into one follow-up pass rather than recursing; this mirrors the
// frame-request pattern a render loop uses.
func (c *Controller) Refresh() {
	if !c.mu.TryLock() {
		c.pending.Store(true)
		return
	}
	defer c.mu.Unlock()
	for {
		c.refreshLocked()
		if !c.pending.Swap(false) {
			return
		}
	}
}

// refreshLocked runs gather/broadcast cycles until no observation reports a
// change, or until the loop limit cuts the trigger short.
//
// Broadcasting re-enters user code that may itself mutate layout, so each
// broadcast is followed by another gather. The loop limit is a depth counter,
// not a wall-clock timeout: if activity is still detected after maxCycles
// consecutive broadcasts, the controller stops for this trigger, reports the
// suppressed loop, and leaves the remaining work to the next natural trigger.
func (c *Controller) refreshLocked() {
	c.refreshes.Add(1)

	for cycle := 0; ; cycle++ {
		// Snapshot per cycle: observers registered by a callback in the
		// previous cycle take part from this one on; never iterate a live
		// list while invoking user code over it.
		observers := c.snapshotObservers()

		pending := 0
		for _, o := range observers {
			pending += o.gatherActive()
		}
		if pending == 0 {
			return
		}

		if cycle >= c.maxCycles {
			c.suppressed.Add(1)
			errors.ReportLoop(&errors.LoopError{Cycles: cycle, Pending: pending})
			return
		}

		c.cycles.Add(1)
		for _, o := range observers {
			// Re-check per observer: an earlier callback in this cycle may
			// have disconnected a later observer, discarding its stage.
			if o.hasActive() {
				c.broadcasts.Add(1)
				o.broadcastActive()
			}
		}
	}
}

// Stats is a read-only snapshot of controller counters.
type Stats struct {
	// Refreshes is the number of refresh triggers processed.
	Refreshes uint64
	// Cycles is the number of gather/broadcast cycles that delivered work.
	Cycles uint64
	// Broadcasts is the number of callback invocations delivered.
	Broadcasts uint64
	// LoopsSuppressed is the number of triggers cut short at the loop limit.
	LoopsSuppressed uint64
	// Observers is the number of currently registered observers.
	Observers int
}

// Stats returns current counter values.
func (c *Controller) Stats() Stats {
	c.regMu.Lock()
	count := len(c.observers)
	c.regMu.Unlock()
	return Stats{
		Refreshes:       c.refreshes.Load(),
		Cycles:          c.cycles.Load(),
		Broadcasts:      c.broadcasts.Load(),
		LoopsSuppressed: c.suppressed.Load(),
		Observers:       count,
	}
}
