package animation

import (
	"fmt"
	"strings"
)

// LoopMode controls what an [Instance] does when its time reaches either end
// of the animation's range.
type LoopMode int

const (
	// OneShot plays once and holds the bound it reached.
	OneShot LoopMode = iota
	// Loop wraps to the opposite bound and keeps the same direction.
	Loop
	// PingPong reverses direction at each bound.
	PingPong
)

func (m LoopMode) valid() bool { return m >= OneShot && m <= PingPong }

// String returns the document spelling of the loop mode.
func (m LoopMode) String() string {
	switch m {
	case OneShot:
		return "oneShot"
	case Loop:
		return "loop"
	case PingPong:
		return "pingPong"
	default:
		return fmt.Sprintf("LoopMode(%d)", int(m))
	}
}

// ParseLoopMode converts a loop mode name, as written by [LoopMode.String],
// back into a LoopMode. Matching ignores case, hyphens and underscores.
func ParseLoopMode(s string) (LoopMode, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch key {
	case "oneshot", "once":
		return OneShot, nil
	case "loop", "repeat":
		return Loop, nil
	case "pingpong", "bounce":
		return PingPong, nil
	}
	return OneShot, fmt.Errorf("unknown loop mode %q", s)
}

// Direction is the sign of time progression. It is always exactly +1 or -1
// so it can be multiplied directly against a step size.
type Direction float64

const (
	// Forward plays from the start of the range toward the end.
	Forward Direction = 1
	// Backward plays from the end of the range toward the start.
	Backward Direction = -1
)

// DirectionOf returns Forward for positive values and Backward otherwise.
// Zero maps to Backward.
func DirectionOf(v float64) Direction {
	if v > 0 {
		return Forward
	}
	return Backward
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d > 0 {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	if d > 0 {
		return "forward"
	}
	return "backward"
}
