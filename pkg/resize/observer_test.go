package resize

import (
	"slices"
	"testing"

	"github.com/go-drift/boxwatch/pkg/boxtest"
	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

// recorder collects callback batches for assertions.
type recorder struct {
	batches [][]Entry
	onBatch func(entries []Entry, obs *Observer)
}

func (r *recorder) callback(entries []Entry, obs *Observer) {
	r.batches = append(r.batches, slices.Clone(entries))
	if r.onBatch != nil {
		r.onBatch(entries, obs)
	}
}

// newTestController builds a controller on a manual binding.
func newTestController(t *testing.T, opts ...Option) (*Controller, *boxtest.Signal, *boxtest.ManualTicker) {
	t.Helper()
	binding, signal, ticker := boxtest.NewBinding()
	return NewController(binding, opts...), signal, ticker
}

func TestNewObserverNilCallback(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	if _, err := ctrl.NewObserver(nil); err != ErrNilCallback {
		t.Errorf("err = %v, want ErrNilCallback", err)
	}
}

func TestObserveUsageFaults(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	rec := &recorder{}
	obs, err := ctrl.NewObserver(rec.callback)
	if err != nil {
		t.Fatal(err)
	}

	if err := obs.Observe(nil); err != ErrNilTarget {
		t.Errorf("Observe(nil) = %v, want ErrNilTarget", err)
	}
	if err := obs.Unobserve(nil); err != ErrNilTarget {
		t.Errorf("Unobserve(nil) = %v, want ErrNilTarget", err)
	}

	foreign := bareElement{}
	if err := obs.Observe(foreign); err != ErrInvalidTarget {
		t.Errorf("Observe(foreign) = %v, want ErrInvalidTarget", err)
	}
	if err := obs.Unobserve(foreign); err != ErrInvalidTarget {
		t.Errorf("Unobserve(foreign) = %v, want ErrInvalidTarget", err)
	}

	if obs.Size() != 0 || len(rec.batches) != 0 {
		t.Error("usage faults must not register observations or broadcast")
	}
}

func TestObserveWithoutNodeKindModel(t *testing.T) {
	// A binding without a predicate means the host cannot classify nodes;
	// observing degrades to a silent no-op instead of a fault.
	signal := &boxtest.Signal{}
	ctrl := NewController(host.Binding{Changes: signal})
	rec := &recorder{}
	obs, err := ctrl.NewObserver(rec.callback)
	if err != nil {
		t.Fatal(err)
	}

	e := boxtest.NewElement("panel")
	e.Resize(100, 50)
	if err := obs.Observe(e); err != nil {
		t.Fatalf("degraded Observe must not fault: %v", err)
	}
	if obs.Size() != 0 {
		t.Error("degraded Observe must not record an observation")
	}
	if ctrl.Connected() {
		t.Error("degraded Observe must not attach listeners")
	}
	if len(rec.batches) != 0 {
		t.Error("degraded Observe must not broadcast")
	}
}

func TestObserveReportsInitialBox(t *testing.T) {
	ctrl, signal, _ := newTestController(t)
	rec := &recorder{}
	obs, _ := ctrl.NewObserver(rec.callback)

	e := boxtest.NewElement("panel")
	e.Resize(100, 50)
	if err := obs.Observe(e); err != nil {
		t.Fatal(err)
	}

	// Observe requests an immediate refresh; no host signal needed.
	if len(rec.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(rec.batches))
	}
	entry := rec.batches[0][0]
	if entry.Target != host.Element(e) {
		t.Error("entry target mismatch")
	}
	if entry.ContentBox != (geometry.Size{Width: 100, Height: 50}) {
		t.Errorf("entry box = %+v", entry.ContentBox)
	}

	// Unchanged box: further triggers stay silent.
	signal.Fire()
	signal.Fire()
	if len(rec.batches) != 1 {
		t.Errorf("batches after no-change triggers = %d, want 1", len(rec.batches))
	}
}

func TestIdempotentObserve(t *testing.T) {
	ctrl, signal, _ := newTestController(t)
	rec := &recorder{}
	obs, _ := ctrl.NewObserver(rec.callback)

	e := boxtest.NewElement("panel")
	e.Resize(10, 10)
	if err := obs.Observe(e); err != nil {
		t.Fatal(err)
	}
	if err := obs.Observe(e); err != nil {
		t.Fatal(err)
	}
	if obs.Size() != 1 {
		t.Errorf("Size = %d, want 1", obs.Size())
	}

	e.Resize(20, 20)
	signal.Fire()
	last := rec.batches[len(rec.batches)-1]
	if len(last) != 1 {
		t.Errorf("duplicate observe produced %d entries in one batch", len(last))
	}
}

func TestEntryOrderFollowsInsertion(t *testing.T) {
	ctrl, signal, _ := newTestController(t)
	rec := &recorder{}
	obs, _ := ctrl.NewObserver(rec.callback)

	a := boxtest.NewElement("a")
	b := boxtest.NewElement("b")
	c := boxtest.NewElement("c")
	for _, e := range []*boxtest.Element{a, b, c} {
		e.Resize(10, 10)
		if err := obs.Observe(e); err != nil {
			t.Fatal(err)
		}
	}
	rec.batches = nil

	// Mutate in reverse order; entry order must still follow observe order.
	c.Resize(30, 30)
	b.Resize(30, 30)
	a.Resize(30, 30)
	signal.Fire()

	if len(rec.batches) != 1 {
		t.Fatalf("batches = %d, want exactly 1 (one callback per gather, not per entry)", len(rec.batches))
	}
	batch := rec.batches[0]
	if len(batch) != 3 {
		t.Fatalf("entries = %d, want 3", len(batch))
	}
	want := []host.Element{a, b, c}
	for i, entry := range batch {
		if entry.Target != want[i] {
			t.Errorf("entry %d: wrong target", i)
		}
	}
}

func TestUnobserve(t *testing.T) {
	ctrl, signal, _ := newTestController(t)
	rec := &recorder{}
	obs, _ := ctrl.NewObserver(rec.callback)

	a := boxtest.NewElement("a")
	b := boxtest.NewElement("b")
	a.Resize(10, 10)
	b.Resize(10, 10)
	if err := obs.Observe(a); err != nil {
		t.Fatal(err)
	}
	if err := obs.Observe(b); err != nil {
		t.Fatal(err)
	}
	rec.batches = nil

	if err := obs.Unobserve(a); err != nil {
		t.Fatal(err)
	}
	// Unknown target: silent no-op.
	if err := obs.Unobserve(a); err != nil {
		t.Fatal(err)
	}
	if obs.Size() != 1 {
		t.Errorf("Size = %d, want 1", obs.Size())
	}

	a.Resize(99, 99)
	signal.Fire()
	if len(rec.batches) != 0 {
		t.Error("unobserved target must not be reported")
	}

	if err := obs.Unobserve(b); err != nil {
		t.Fatal(err)
	}
	if ctrl.Connected() {
		t.Error("controller must detach when the last observation is removed")
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	rec := &recorder{}
	obs, _ := ctrl.NewObserver(rec.callback)

	e := boxtest.NewElement("panel")
	e.Resize(10, 10)
	if err := obs.Observe(e); err != nil {
		t.Fatal(err)
	}

	obs.Disconnect()
	obs.Disconnect()
	if obs.Size() != 0 {
		t.Errorf("Size = %d, want 0", obs.Size())
	}
	if ctrl.Connected() {
		t.Error("controller must detach after disconnect")
	}

	// A disconnected observer can be reused.
	if err := obs.Observe(e); err != nil {
		t.Fatal(err)
	}
	if obs.Size() != 1 {
		t.Error("observer must be reusable after disconnect")
	}
	if !ctrl.Connected() {
		t.Error("re-observe must re-attach the controller")
	}
}
