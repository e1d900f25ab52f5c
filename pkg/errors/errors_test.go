package errors

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// captureHandler records reported errors for assertions.
type captureHandler struct {
	errors []*WatchError
	loops  []*LoopError
}

func (h *captureHandler) HandleError(err *WatchError) { h.errors = append(h.errors, err) }
func (h *captureHandler) HandleLoop(err *LoopError)   { h.loops = append(h.loops, err) }

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		KindUnknown:   "unknown",
		KindHost:      "host",
		KindLoop:      "loop",
		ErrorKind(99): "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("kind %d: got %q, want %q", int(kind), got, want)
		}
	}
}

func TestWatchErrorFormat(t *testing.T) {
	inner := fmt.Errorf("signal missing")
	err := &WatchError{Op: "resize.Controller.connect", Kind: KindHost, Err: inner}
	msg := err.Error()
	if !strings.Contains(msg, "resize.Controller.connect") || !strings.Contains(msg, "[host]") {
		t.Errorf("unexpected message: %q", msg)
	}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the inner error")
	}
}

func TestLoopErrorFormat(t *testing.T) {
	err := &LoopError{Cycles: 8, Pending: 3}
	msg := err.Error()
	if !strings.Contains(msg, "8 cycles") || !strings.Contains(msg, "3 observations") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestReportSetsTimestampAndDispatches(t *testing.T) {
	h := &captureHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&WatchError{Op: "test", Kind: KindHost, Err: fmt.Errorf("boom")})
	if len(h.errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(h.errors))
	}
	if h.errors[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero timestamp")
	}

	stamp := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	Report(&WatchError{Op: "test", Err: fmt.Errorf("boom"), Timestamp: stamp})
	if !h.errors[1].Timestamp.Equal(stamp) {
		t.Error("Report should preserve an explicit timestamp")
	}

	// Nil reports are dropped.
	Report(nil)
	ReportLoop(nil)
	if len(h.errors) != 2 || len(h.loops) != 0 {
		t.Error("nil reports should be ignored")
	}

	ReportLoop(&LoopError{Cycles: 8, Pending: 1})
	if len(h.loops) != 1 || h.loops[0].Timestamp.IsZero() {
		t.Error("ReportLoop should dispatch and stamp the report")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&captureHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("expected LogHandler after reset, got %T", DefaultHandler)
	}
}
