package animation

import (
	"testing"
	"time"

	"github.com/go-drift/timeline/pkg/errors"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func useStepClock(t *testing.T) *stepClock {
	t.Helper()
	clk := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(clk)
	t.Cleanup(func() { SetClock(prev) })
	return clk
}

func TestTicker_ReceivesFrameDelta(t *testing.T) {
	clk := useStepClock(t)
	var deltas []time.Duration
	ticker := NewTicker(func(d time.Duration) { deltas = append(deltas, d) })
	ticker.Start()
	defer ticker.Stop()

	StepTickers()
	clk.now = clk.now.Add(16 * time.Millisecond)
	StepTickers()
	clk.now = clk.now.Add(50 * time.Millisecond)
	StepTickers()

	want := []time.Duration{0, 16 * time.Millisecond, 50 * time.Millisecond}
	if len(deltas) != len(want) {
		t.Fatalf("got %d callbacks, want %d", len(deltas), len(want))
	}
	for i := range want {
		if deltas[i] != want[i] {
			t.Errorf("delta[%d] = %v, want %v", i, deltas[i], want[i])
		}
	}
	if got := ticker.Elapsed(); got != 66*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 66ms", got)
	}
}

func TestTicker_StartStop(t *testing.T) {
	useStepClock(t)
	calls := 0
	ticker := NewTicker(func(time.Duration) { calls++ })

	StepTickers()
	if calls != 0 {
		t.Error("inactive ticker was called")
	}
	ticker.Start()
	ticker.Start()
	if !ticker.IsActive() || !HasActiveTickers() {
		t.Fatal("expected ticker to be active")
	}
	StepTickers()
	ticker.Stop()
	StepTickers()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if ticker.Elapsed() != 0 {
		t.Error("Elapsed() should be 0 for a stopped ticker")
	}
}

func TestSceneTicker_StopsWhenOneShotFinishes(t *testing.T) {
	clk := useStepClock(t)
	desc := &fakeDescriptor{name: "once", duration: 1, speed: 1, loop: OneShot}
	inst := NewInstance(desc, &fakeTarget{}, 1)

	done := 0
	ticker := NewSceneTicker(inst, func() { done++ })
	ticker.Start()

	for i := 0; i < 10 && ticker.IsActive(); i++ {
		clk.now = clk.now.Add(250 * time.Millisecond)
		StepTickers()
	}

	if ticker.IsActive() {
		t.Fatal("ticker still active after the one-shot ended")
	}
	if done != 1 {
		t.Errorf("onDone called %d times, want 1", done)
	}
	if inst.Time() != 1 {
		t.Errorf("Time() = %v, want 1", inst.Time())
	}
	if desc.lastTime != 1 || desc.lastMix != 1 {
		t.Errorf("last apply time=%v mix=%v, want 1 and 1", desc.lastTime, desc.lastMix)
	}
}

func TestStepTickers_RecoversPanics(t *testing.T) {
	useStepClock(t)
	var reported *errors.PanicError
	prev := errors.DefaultHandler
	errors.SetHandler(&panicHandler{onPanic: func(p *errors.PanicError) { reported = p }})
	defer errors.SetHandler(prev)

	bad := NewTicker(func(time.Duration) { panic("boom") })
	goodCalls := 0
	good := NewTicker(func(time.Duration) { goodCalls++ })
	bad.Start()
	good.Start()
	defer good.Stop()

	StepTickers()

	if reported == nil || reported.Value != "boom" {
		t.Fatalf("reported = %v, want panic boom", reported)
	}
	if bad.IsActive() {
		t.Error("panicking ticker should be stopped")
	}
	if goodCalls != 1 {
		t.Errorf("healthy ticker calls = %d, want 1", goodCalls)
	}
}

type panicHandler struct {
	onPanic func(*errors.PanicError)
}

func (h *panicHandler) HandleError(*errors.AnimationError) {}

func (h *panicHandler) HandlePanic(p *errors.PanicError) { h.onPanic(p) }
