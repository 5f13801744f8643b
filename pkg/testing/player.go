package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/timeline/pkg/animation"
)

// DefaultFPS is the frame rate a ScenePlayer pumps at when none is given.
const DefaultFPS = 60

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scenes did not finish")

// ScenePlayer drives scenes through the same ticker loop as a real frame
// loop, but on a fake clock that moves exactly one frame per pump.
type ScenePlayer struct {
	clock     *FakeClock
	prevClock animation.Clock
	frame     time.Duration
	frames    int
	tickers   []*animation.Ticker
}

// NewScenePlayer creates a player stepping at fps frames per second and
// installs its fake clock. Call Cleanup() when done, or use
// NewScenePlayerWithT() instead.
func NewScenePlayer(fps int) *ScenePlayer {
	if fps <= 0 {
		fps = DefaultFPS
	}
	clk := NewFakeClock()
	p := &ScenePlayer{
		clock: clk,
		frame: time.Second / time.Duration(fps),
	}
	p.prevClock = animation.SetClock(clk)
	return p
}

// NewScenePlayerWithT creates a player that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewScenePlayerWithT(t *testing.T, fps int) *ScenePlayer {
	p := NewScenePlayer(fps)
	t.Cleanup(p.Cleanup)
	return p
}

// Cleanup stops every ticker the player started and restores the previous
// animation clock.
func (p *ScenePlayer) Cleanup() {
	for _, t := range p.tickers {
		t.Stop()
	}
	p.tickers = nil
	animation.SetClock(p.prevClock)
}

// Clock returns the fake clock for manual time control.
func (p *ScenePlayer) Clock() *FakeClock {
	return p.clock
}

// FrameDuration returns how far the clock moves per frame.
func (p *ScenePlayer) FrameDuration() time.Duration {
	return p.frame
}

// Frames returns the number of frames pumped so far.
func (p *ScenePlayer) Frames() int {
	return p.frames
}

// Play starts a ticker that advances and applies scene every frame. onDone
// runs once when the scene stops on its own.
func (p *ScenePlayer) Play(scene animation.Scene, onDone func()) *animation.Ticker {
	t := animation.NewSceneTicker(scene, onDone)
	t.Start()
	p.tickers = append(p.tickers, t)
	return t
}

// Pump runs a single frame without moving the clock.
func (p *ScenePlayer) Pump() {
	animation.StepTickers()
	p.frames++
}

// PumpFrames advances the clock by one frame and pumps, n times.
func (p *ScenePlayer) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		p.clock.Advance(p.frame)
		p.Pump()
	}
}

// PumpAndSettle runs frames until no ticker is active or the timeout is
// reached. Each frame advances the fake clock by one frame duration.
// Returns ErrSettleTimeout if the scenes do not settle within timeout.
func (p *ScenePlayer) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		p.Pump()
		if !animation.HasActiveTickers() {
			return nil
		}
		p.clock.Advance(p.frame)
		elapsed += p.frame
	}
	return ErrSettleTimeout
}
