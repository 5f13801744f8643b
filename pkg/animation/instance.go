package animation

import (
	"fmt"
	"math"

	"github.com/go-drift/timeline/pkg/errors"
)

// Instance is the playback state of one use of an animation on one target.
//
// An Instance advances its own time, applies loop-mode rules at the bounds of
// the descriptor's range, and reports boundary events through [Instance.DidLoop]
// and [Instance.SpilledTime] so a mixer can chain or blend animations.
//
// The descriptor and target are borrowed: both must outlive the instance and
// the target must only be mutated from the goroutine that advances it.
// Instance is not safe for concurrent use.
type Instance struct {
	desc   Descriptor
	target Target

	time          float64
	totalTime     float64
	lastTotalTime float64
	spilledTime   float64
	speed         float64
	direction     Direction
	didLoop       bool

	loop    LoopMode
	hasLoop bool
}

var _ Scene = (*Instance)(nil)

// NewInstance binds desc to target. The sign of desc.Speed()*speedMultiplier
// picks the initial direction and its magnitude scales elapsed time.
//
// NewInstance panics if desc or target is nil.
func NewInstance(desc Descriptor, target Target, speedMultiplier float64) *Instance {
	if desc == nil {
		panic("animation: NewInstance called with nil descriptor")
	}
	if target == nil {
		panic("animation: NewInstance called with nil target")
	}
	a := &Instance{desc: desc, target: target}
	a.Reset(speedMultiplier)
	return a
}

// Clone returns an instance with the same scalar state, bound to the same
// descriptor and target. Later changes to either do not affect the other.
func (a *Instance) Clone() *Instance {
	c := *a
	return &c
}

// Reset starts a fresh playback session without touching the loop override
// or the bindings. A negative effective speed seeds reverse playback from the
// end of the range. A non-finite effective speed is reported and replaced by
// forward playback at speed 1.
func (a *Instance) Reset(speedMultiplier float64) {
	effective := a.desc.Speed() * speedMultiplier
	if !isFinite(effective) {
		a.reportInvalid("animation.Instance.Reset",
			fmt.Errorf("effective speed must be finite, got %v (multiplier %v)", effective, speedMultiplier))
		effective = 1
	}
	a.speed = math.Abs(effective)
	a.totalTime = 0
	a.lastTotalTime = 0
	a.spilledTime = 0
	a.didLoop = false
	if effective < 0 {
		a.direction = Backward
		a.time = a.end()
	} else {
		a.direction = Forward
		a.time = a.start()
	}
}

func (a *Instance) start() float64 { return a.desc.StartTime() }

func (a *Instance) end() float64 { return a.desc.StartTime() + a.desc.DurationSeconds() }

// Advance moves the instance by seconds of wall time and returns whether it
// will keep animating. Negative or non-finite seconds are a contract
// violation: they are reported and treated as zero.
func (a *Instance) Advance(seconds float64) bool {
	if seconds < 0 || !isFinite(seconds) {
		a.reportInvalid("animation.Instance.Advance",
			fmt.Errorf("elapsed time must be finite and >= 0, got %v", seconds))
		seconds = 0
	}

	a.lastTotalTime = a.totalTime
	a.didLoop = false
	a.spilledTime = 0

	step := float64(a.direction) * seconds * a.speed
	if math.IsInf(step, 0) {
		a.reportInvalid("animation.Instance.Advance",
			fmt.Errorf("step of %v seconds at speed %v overflows", seconds, a.speed))
		step = 0
	}
	if step == 0 {
		return a.KeepGoing()
	}
	a.totalTime += math.Abs(step)

	start, end := a.start(), a.end()
	next := a.time + step
	if next >= start && next <= end {
		a.time = next
		return a.KeepGoing()
	}

	// Overshoot past the bound that was crossed first.
	forward := next > end
	over := start - next
	if forward {
		over = next - end
	}
	a.didLoop = true

	period := end - start
	if period <= 0 {
		a.time = start
		a.spilledTime = over / a.speed
		return a.KeepGoing()
	}

	switch a.Loop() {
	case Loop:
		rem := residual(over, period)
		if forward {
			a.time = start + rem
		} else {
			a.time = end - rem
		}
		a.spilledTime = rem / a.speed
	case PingPong:
		rem := residual(over, period)
		// The first crossing always reverses; each further whole period
		// crosses the opposite bound and reverses again.
		extra := math.Round((over - rem) / period)
		awayFromFirst := math.Mod(extra, 2) == 0
		if awayFromFirst {
			a.direction = a.direction.Flip()
		}
		if forward == awayFromFirst {
			a.time = end - rem
		} else {
			a.time = start + rem
		}
		a.spilledTime = rem / a.speed
	default:
		if forward {
			a.time = end
		} else {
			a.time = start
		}
		a.spilledTime = over / a.speed
	}
	return a.KeepGoing()
}

func (a *Instance) reportInvalid(op string, err error) {
	errors.Report(&errors.AnimationError{
		Op:        op,
		Kind:      errors.KindInvalidArgument,
		Animation: a.desc.Name(),
		Err:       err,
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// residual is the part of over left after removing whole periods. A step
// that lands exactly on a bound keeps the full period so the instance rests
// on that bound instead of wrapping past it.
func residual(over, period float64) float64 {
	rem := math.Mod(over, period)
	if rem == 0 {
		return period
	}
	return rem
}

// KeepGoing reports whether further calls to Advance can change the
// instance. Loop and ping-pong instances always keep going; a one-shot stops
// once it rests on the bound it is heading toward.
func (a *Instance) KeepGoing() bool {
	return a.Loop() != OneShot ||
		(a.direction > 0 && a.time < a.end()) ||
		(a.direction < 0 && a.time > a.start())
}

// Apply writes the instance's current state into its target. mix is the
// strength, in [0, 1], at which it is blended with other animations applied
// to the same target.
func (a *Instance) Apply(mix float64) {
	a.desc.Apply(a.target, a.time, clampUnit(mix))
}

// AdvanceAndApply advances by seconds, applies at full strength and returns
// the result of Advance.
func (a *Instance) AdvanceAndApply(seconds float64) bool {
	more := a.Advance(seconds)
	a.Apply(1)
	return more
}

// Time returns the current position in seconds.
func (a *Instance) Time() float64 { return a.time }

// SetTime seeks to value, clamped to the animation's range. No loop event is
// recorded. Total and last total time move with the seek so callers tracking
// the consumed delta still see a consistent difference.
func (a *Instance) SetTime(value float64) {
	start, end := a.start(), a.end()
	value = math.Max(start, math.Min(end, value))
	if value == a.time {
		return
	}
	diff := a.totalTime - a.lastTotalTime
	a.time = value
	a.totalTime = value - start
	a.lastTotalTime = a.totalTime - diff
}

// Direction returns the current direction of play.
func (a *Instance) Direction() Direction { return a.direction }

// SetDirection sets Forward for positive values and Backward otherwise.
func (a *Instance) SetDirection(value float64) { a.direction = DirectionOf(value) }

// Loop returns the loop override if one is set, otherwise the descriptor's
// default.
func (a *Instance) Loop() LoopMode {
	if a.hasLoop {
		return a.loop
	}
	return a.desc.Loop()
}

// SetLoop overrides the descriptor's loop mode for this instance. An unknown
// mode is reported and leaves the current override in place.
func (a *Instance) SetLoop(mode LoopMode) {
	if !mode.valid() {
		a.reportInvalid("animation.Instance.SetLoop", fmt.Errorf("unknown loop mode %v", mode))
		return
	}
	a.loop = mode
	a.hasLoop = true
}

// ClearLoop removes the loop override.
func (a *Instance) ClearLoop() {
	a.hasLoop = false
}

// LoopOverride returns the override and whether one is set.
func (a *Instance) LoopOverride() (LoopMode, bool) { return a.loop, a.hasLoop }

// DidLoop is true when the last Advance stopped a one-shot, wrapped a loop or
// reversed a ping-pong.
func (a *Instance) DidLoop() bool { return a.didLoop }

// TotalTime is the elapsed time consumed since the last Reset.
func (a *Instance) TotalTime() float64 { return a.totalTime }

// LastTotalTime is TotalTime as it was before the last Advance.
func (a *Instance) LastTotalTime() float64 { return a.lastTotalTime }

// SpilledTime is the wall time of the last step left over after a boundary
// event, ready to pass to the next animation's Advance. It is never negative.
func (a *Instance) SpilledTime() float64 { return a.spilledTime }

// ClearSpilledTime zeroes SpilledTime once a caller has consumed it.
func (a *Instance) ClearSpilledTime() { a.spilledTime = 0 }

// Descriptor returns the animation data the instance plays.
func (a *Instance) Descriptor() Descriptor { return a.desc }

// Target returns the object the instance applies to.
func (a *Instance) Target() Target { return a.target }

// Name returns the descriptor's name.
func (a *Instance) Name() string { return a.desc.Name() }

// DurationSeconds returns the length of the playable range.
func (a *Instance) DurationSeconds() float64 { return a.desc.DurationSeconds() }

// IsTranslucent reports whether the target lets content behind it show.
func (a *Instance) IsTranslucent() bool { return a.target.IsTranslucent() }

func (a *Instance) FPS() uint32        { return a.desc.FPS() }
func (a *Instance) FrameCount() uint32 { return a.desc.FrameCount() }
func (a *Instance) Speed() float64     { return a.desc.Speed() }
func (a *Instance) StartTime() float64 { return a.desc.StartTime() }

// Frame returns the current position in frames.
func (a *Instance) Frame() float64 {
	return a.time * float64(a.desc.FPS())
}

// Progress returns the position within the range normalized to [0, 1].
func (a *Instance) Progress() float64 {
	d := a.desc.DurationSeconds()
	if d <= 0 {
		return 0
	}
	return clampUnit((a.time - a.start()) / d)
}
