package boxtest

import (
	"testing"

	"github.com/go-drift/boxwatch/pkg/geometry"
	"github.com/go-drift/boxwatch/pkg/host"
)

func TestElementScripting(t *testing.T) {
	e := NewElement("panel")
	if !e.Rendered() {
		t.Error("new element should be rendered")
	}

	e.SetMetrics(host.BoxMetrics{
		Size:    geometry.Size{Width: 100, Height: 50},
		Sizing:  host.BorderBox,
		Padding: geometry.UniformInsets(5),
		Border:  geometry.UniformInsets(1),
	})
	if e.BoxMetrics().Sizing != host.BorderBox {
		t.Error("SetMetrics should replace the sizing mode")
	}

	e.Resize(120, 60)
	m := e.BoxMetrics()
	if m.Size != (geometry.Size{Width: 120, Height: 60}) {
		t.Errorf("Resize produced %+v", m.Size)
	}
	if m.Padding != geometry.UniformInsets(5) || m.Border != geometry.UniformInsets(1) {
		t.Error("Resize should keep padding and border")
	}

	e.Detach()
	if e.Rendered() {
		t.Error("detached element should not be rendered")
	}
	e.Attach()
	if !e.Rendered() {
		t.Error("re-attached element should be rendered")
	}
}

func TestVectorElementBounds(t *testing.T) {
	e := NewVectorElement("icon", geometry.RectFromLTWH(0, 0, 24, 24))
	if got := e.BoundingBox().Size(); got != (geometry.Size{Width: 24, Height: 24}) {
		t.Errorf("bounds size = %+v", got)
	}
	e.SetBounds(geometry.RectFromLTWH(10, 10, 32, 16))
	if got := e.BoundingBox().Size(); got != (geometry.Size{Width: 32, Height: 16}) {
		t.Errorf("bounds size after SetBounds = %+v", got)
	}
}

func TestTextElementMeasurement(t *testing.T) {
	e := NewTextElement("label", "hi")
	box := e.BoundingBox()
	if box.Width() <= 0 || box.Height() <= 0 {
		t.Fatalf("text bounds should be positive, got %vx%v", box.Width(), box.Height())
	}

	short := box.Width()
	e.SetText("a considerably longer label")
	if e.BoundingBox().Width() <= short {
		t.Error("longer text should measure wider")
	}
	if e.BoundingBox().Height() != box.Height() {
		t.Error("single-line text height should not change with length")
	}
}

func TestSignalAndTicker(t *testing.T) {
	signal := &Signal{}
	fired := 0
	signal.Fire() // no handler: no-op
	signal.Subscribe(func() { fired++ })
	if !signal.Subscribed() {
		t.Error("expected subscribed signal")
	}
	signal.Fire()
	signal.Unsubscribe()
	signal.Fire()
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}

	ticker := &ManualTicker{}
	ticks := 0
	ticker.Tick() // not started: no-op
	ticker.Start(func() { ticks++ })
	if !ticker.Running() {
		t.Error("expected running ticker")
	}
	ticker.Tick()
	ticker.Stop()
	ticker.Tick()
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}

func TestValidTarget(t *testing.T) {
	if !ValidTarget(NewElement("a")) || !ValidTarget(NewVectorElement("b", geometry.Rect{})) || !ValidTarget(NewTextElement("c", "x")) {
		t.Error("boxtest elements should be valid targets")
	}
	if ValidTarget(nil) {
		t.Error("nil should not be a valid target")
	}
	if ValidTarget(foreignElement{}) {
		t.Error("foreign element kinds should not be valid targets")
	}
}

type foreignElement struct{}

func (foreignElement) Rendered() bool { return true }
