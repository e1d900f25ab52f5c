// Package errors provides structured error reporting for the boxwatch engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindHost indicates a problem with the host binding or its signals.
	KindHost
	// KindLoop indicates a suppressed resize notification loop.
	KindLoop
)

func (k ErrorKind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// WatchError represents a structured error in the boxwatch engine.
type WatchError struct {
	// Op is the operation that failed (e.g., "resize.Controller.connect").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WatchError) Unwrap() error {
	return e.Err
}

// LoopError reports a suppressed resize notification loop: the convergence
// bound was reached while observations were still changing, so the controller
// stopped broadcasting for that trigger. This is non-fatal; remaining work is
// picked up on the next trigger.
type LoopError struct {
	// Cycles is the number of gather/broadcast cycles run before giving up.
	Cycles int
	// Pending is the number of observations still reporting changes.
	Pending int
	// Timestamp is when the loop was suppressed.
	Timestamp time.Time
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("resize loop suppressed after %d cycles (%d observations still active)", e.Cycles, e.Pending)
}

// ErrorHandler receives errors reported by the boxwatch engine.
type ErrorHandler interface {
	// HandleError is called when an engine error occurs.
	HandleError(err *WatchError)
	// HandleLoop is called when a resize notification loop is suppressed.
	HandleLoop(err *LoopError)
}
