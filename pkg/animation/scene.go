package animation

import colorful "github.com/lucasb-eyer/go-colorful"

// Descriptor is the immutable data behind an animation: its timing, its
// default loop mode and the routine that writes interpolated values into a
// target. Many instances may share one descriptor.
type Descriptor interface {
	// Name identifies the animation within its document.
	Name() string
	// FPS is the frame rate the animation was authored at.
	FPS() uint32
	// FrameCount is the authored length in frames.
	FrameCount() uint32
	// Speed scales elapsed time. Negative values play in reverse.
	Speed() float64
	// StartTime is the playback origin in seconds.
	StartTime() float64
	// DurationSeconds is the length of the playable range in seconds.
	DurationSeconds() float64
	// Loop is the loop mode used when an instance has no override.
	Loop() LoopMode
	// Apply writes the animation's values at time into target, blended
	// against the target's current values by mix in [0, 1].
	Apply(target Target, time, mix float64)
}

// Target is the mutable object an animation writes into, typically an
// artboard instance. Instances never inspect it; they only hand it to the
// descriptor.
type Target interface {
	// IsTranslucent reports whether anything behind the target shows through.
	IsTranslucent() bool
}

// PropertyTarget is a Target that exposes addressable properties.
// Paths have the form "object.property".
type PropertyTarget interface {
	Target
	Number(path string) (float64, bool)
	SetNumber(path string, value float64) bool
	Color(path string) (colorful.Color, bool)
	SetColor(path string, value colorful.Color) bool
}

// Scene is the surface shared by everything that can be played on an
// artboard, so callers can drive any kind of animation the same way.
type Scene interface {
	Name() string
	DurationSeconds() float64
	Loop() LoopMode
	IsTranslucent() bool
	// AdvanceAndApply moves the scene forward by seconds, writes its state
	// into the target, and reports whether it will keep animating.
	AdvanceAndApply(seconds float64) bool
}
