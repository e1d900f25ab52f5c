package host

import (
	"sync"
	"time"
)

// DefaultTickInterval is the periodic trigger interval used when an
// IntervalTicker is constructed without one.
const DefaultTickInterval = 250 * time.Millisecond

// IntervalTicker is a Ticker backed by a time.Ticker goroutine.
//
// The handler runs on the ticker goroutine, not the host's, so it must be
// safe to call from there.
type IntervalTicker struct {
	// Interval between ticks. Zero means DefaultTickInterval.
	Interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewIntervalTicker creates a ticker firing at the given interval.
func NewIntervalTicker(interval time.Duration) *IntervalTicker {
	return &IntervalTicker{Interval: interval}
}

// Start begins delivering periodic calls to fn. Calling Start while already
// started restarts the ticker with the new handler.
func (t *IntervalTicker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop

	interval := t.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}

// Stop ends delivery. Safe to call when not started.
func (t *IntervalTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
