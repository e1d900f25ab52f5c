package resize

import "errors"

// Usage faults reported synchronously by Observer operations.
var (
	// ErrNilCallback reports an Observer constructed without a callback.
	ErrNilCallback = errors.New("resize: observer callback must not be nil")
	// ErrNilTarget reports a missing target argument.
	ErrNilTarget = errors.New("resize: target must not be nil")
	// ErrInvalidTarget reports a target the host does not consider an
	// observable node kind.
	ErrInvalidTarget = errors.New("resize: target is not an observable element")
)
