// Package animation implements the playback clock for keyframed artboard
// animations.
//
// # Core Components
//
//   - [Instance]: the playback state of one animation on one target. It
//     advances time, applies [LoopMode] rules at the ends of the range and
//     reports loop events and spilled time for mixers.
//
//   - [Descriptor]: the immutable animation data an instance plays.
//     [LinearAnimation] is the keyframed implementation.
//
//   - [Scene]: the interface every playable animation kind satisfies.
//
//   - [Ticker]: drives scenes from the frame loop via [StepTickers].
//
// # Basic Usage
//
//	inst := animation.NewInstance(walk, board, 1)
//	for running {
//	    if !inst.AdvanceAndApply(dt) {
//	        break // a one-shot reached its end
//	    }
//	}
//
// Or let the frame loop drive it:
//
//	animation.NewSceneTicker(inst, onDone).Start()
//	// once per frame:
//	animation.StepTickers()
package animation

import (
	"sync"
	"time"

	"github.com/go-drift/timeline/pkg/errors"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker calls a callback on each frame while active.
//
// The callback receives the time elapsed since the previous frame the ticker
// saw (zero on the first frame after Start). Tickers are driven by the frame
// loop via [StepTickers].
type Ticker struct {
	callback func(delta time.Duration)
	isActive bool
	start    time.Time
	last     time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(delta time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// NewSceneTicker creates a ticker that advances and applies scene every
// frame. The ticker stops itself once the scene reports it will not keep
// going, then calls onDone if it is non-nil.
func NewSceneTicker(scene Scene, onDone func()) *Ticker {
	t := &Ticker{}
	t.callback = func(delta time.Duration) {
		if scene.AdvanceAndApply(delta.Seconds()) {
			return
		}
		t.Stop()
		if onDone != nil {
			onDone()
		}
	}
	return t
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	t.last = t.start
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers.
// This should be called once per frame from the frame loop. A panicking
// callback is reported and stops only its own ticker.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start and stop tickers.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	now := Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			delta := now.Sub(ticker.last)
			ticker.last = now
			ticker.step(delta)
		}
	}
}

func (t *Ticker) step(delta time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			t.Stop()
			errors.ReportPanic(&errors.PanicError{
				Op:         "animation.StepTickers",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	t.callback(delta)
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
