package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including timestamps.
	Verbose bool
}

// HandleError logs a WatchError to stderr.
func (h *LogHandler) HandleError(err *WatchError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[boxwatch error] %s [%s] at %s: %v\n",
			err.Op, err.Kind, err.Timestamp.Format("15:04:05.000"), err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[boxwatch error] %s: %v\n", err.Op, err.Err)
	}
}

// HandleLoop logs a LoopError to stderr.
func (h *LogHandler) HandleLoop(err *LoopError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[boxwatch loop] at %s: %v\n",
			err.Timestamp.Format("15:04:05.000"), err)
	} else {
		fmt.Fprintf(os.Stderr, "[boxwatch loop] %v\n", err)
	}
}
