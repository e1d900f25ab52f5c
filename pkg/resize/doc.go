// Package resize implements box-size observation for host element trees.
//
// The engine emulates a platform size-observation API on hosts that have no
// native change-detection primitive: callers register interest in elements,
// and a process-wide controller re-measures them on coarse host signals,
// batching one callback per observer with every element whose content box
// changed since it was last reported.
//
// # Quick Start
//
// Wire a host binding into a controller, create an observer, and observe:
//
//	ctrl := resize.NewController(binding)
//	obs, err := ctrl.NewObserver(func(entries []resize.Entry, _ *resize.Observer) {
//	    for _, entry := range entries {
//	        fmt.Println(entry.ContentBox)
//	    }
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := obs.Observe(element); err != nil {
//	    log.Fatal(err)
//	}
//
// The controller attaches to the binding's structural-change signal and
// periodic ticker while at least one observer holds observations, and detaches
// when the last one disconnects. Each trigger runs a bounded convergence loop:
// measure, broadcast, and re-measure, because callbacks may themselves resize
// observed elements. A callback that perpetually toggles a size is cut off at
// the loop limit and reported through the errors package rather than being
// allowed to spin.
//
// # Execution model
//
// Measurement and broadcasting are cooperative: a refresh runs to completion
// on the goroutine that triggered it, and concurrent triggers coalesce into a
// follow-up pass. Observer methods synchronize with the refresh path, so the
// host may call them while a periodic ticker drives refreshes from another
// goroutine, and callbacks may call them re-entrantly. Element state itself is
// only read during measurement; mutating elements is the host's to synchronize
// with its change signals.
package resize
