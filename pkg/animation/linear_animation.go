package animation

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/timeline/pkg/errors"
)

// DefaultFPS is the frame rate used when a config leaves FPS unset.
const DefaultFPS = 60

// Interpolation selects how a keyframe moves toward the next one.
type Interpolation int

const (
	// InterpolationLinear moves at constant speed.
	InterpolationLinear Interpolation = iota
	// InterpolationHold keeps the keyframe's value until the next keyframe.
	InterpolationHold
	// InterpolationCurve shapes progress with the keyframe's Curve.
	InterpolationCurve
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "linear"
	case InterpolationHold:
		return "hold"
	case InterpolationCurve:
		return "curve"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// PropertyKind is the value type a track animates.
type PropertyKind int

const (
	PropertyNumber PropertyKind = iota
	PropertyColor
)

// Keyframe is a value pinned to a frame.
type Keyframe struct {
	Frame float64
	// Value is used by number tracks.
	Value float64
	// Color is used by color tracks.
	Color         colorful.Color
	Interpolation Interpolation
	// Curve is used with InterpolationCurve. Nil behaves as linear.
	Curve Curve
}

// Track animates one property of the target, addressed as "object.property".
type Track struct {
	Path      string
	Kind      PropertyKind
	Keyframes []Keyframe
}

// segment returns the keyframes around frame and the shaped progress
// between them.
func (tr *Track) segment(frame float64) (from, to *Keyframe, t float64) {
	kfs := tr.Keyframes
	i := sort.Search(len(kfs), func(i int) bool { return kfs[i].Frame > frame })
	if i == 0 {
		return &kfs[0], &kfs[0], 0
	}
	if i == len(kfs) {
		last := &kfs[len(kfs)-1]
		return last, last, 0
	}
	from, to = &kfs[i-1], &kfs[i]
	t = (frame - from.Frame) / (to.Frame - from.Frame)
	switch from.Interpolation {
	case InterpolationHold:
		t = 0
	case InterpolationCurve:
		if from.Curve != nil {
			t = from.Curve(t)
		}
	}
	return from, to, t
}

// NumberAt evaluates a number track at frame.
func (tr *Track) NumberAt(frame float64) float64 {
	from, to, t := tr.segment(frame)
	tw := Tween[float64]{Begin: from.Value, End: to.Value, Lerp: LerpFloat64}
	return tw.Evaluate(t)
}

// ColorAt evaluates a color track at frame.
func (tr *Track) ColorAt(frame float64) colorful.Color {
	from, to, t := tr.segment(frame)
	tw := Tween[colorful.Color]{Begin: from.Color, End: to.Color, Lerp: LerpColor}
	return tw.Evaluate(t)
}

// LinearAnimationConfig describes a keyframed animation.
type LinearAnimationConfig struct {
	Name string
	// FPS defaults to DefaultFPS when zero.
	FPS uint32
	// Duration is the authored length in frames.
	Duration uint32
	// Speed scales elapsed time; negative plays in reverse. Zero means 1.
	Speed float64
	Loop  LoopMode
	// WorkStart and WorkEnd narrow playback to a frame range when
	// EnableWorkArea is set.
	WorkStart      uint32
	WorkEnd        uint32
	EnableWorkArea bool
	Tracks         []Track
}

// LinearAnimation is the keyframed [Descriptor]. It is immutable once built
// and may be shared by any number of instances.
type LinearAnimation struct {
	cfg LinearAnimationConfig
}

var _ Descriptor = (*LinearAnimation)(nil)

// NewLinearAnimation validates cfg and returns the animation. Tracks are
// copied and their keyframes sorted by frame.
func NewLinearAnimation(cfg LinearAnimationConfig) (*LinearAnimation, error) {
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1
	}
	invalid := func(field string, got any) error {
		return &errors.AnimationError{
			Op:        "animation.NewLinearAnimation",
			Kind:      errors.KindInvalidArgument,
			Animation: cfg.Name,
			Err:       &errors.ParseError{Field: field, Got: got},
		}
	}

	if strings.TrimSpace(cfg.Name) == "" {
		return nil, invalid("name", cfg.Name)
	}
	if cfg.Duration == 0 {
		return nil, invalid("duration", cfg.Duration)
	}
	if !cfg.Loop.valid() {
		return nil, invalid("loop", cfg.Loop)
	}
	if cfg.EnableWorkArea {
		if cfg.WorkEnd > cfg.Duration {
			return nil, invalid("workEnd", cfg.WorkEnd)
		}
		if cfg.WorkStart >= cfg.WorkEnd {
			return nil, invalid("workStart", cfg.WorkStart)
		}
	}

	tracks := make([]Track, len(cfg.Tracks))
	for i, tr := range cfg.Tracks {
		field := fmt.Sprintf("tracks[%d]", i)
		if !strings.Contains(tr.Path, ".") {
			return nil, invalid(field+".path", tr.Path)
		}
		if tr.Kind != PropertyNumber && tr.Kind != PropertyColor {
			return nil, invalid(field+".kind", tr.Kind)
		}
		if len(tr.Keyframes) == 0 {
			return nil, invalid(field+".keyframes", 0)
		}
		kfs := append([]Keyframe(nil), tr.Keyframes...)
		sort.SliceStable(kfs, func(a, b int) bool { return kfs[a].Frame < kfs[b].Frame })
		if kfs[0].Frame < 0 {
			return nil, invalid(field+".keyframes[0].frame", kfs[0].Frame)
		}
		tracks[i] = Track{Path: tr.Path, Kind: tr.Kind, Keyframes: kfs}
	}
	cfg.Tracks = tracks

	return &LinearAnimation{cfg: cfg}, nil
}

func (a *LinearAnimation) Name() string       { return a.cfg.Name }
func (a *LinearAnimation) FPS() uint32        { return a.cfg.FPS }
func (a *LinearAnimation) FrameCount() uint32 { return a.cfg.Duration }
func (a *LinearAnimation) Speed() float64     { return a.cfg.Speed }
func (a *LinearAnimation) Loop() LoopMode     { return a.cfg.Loop }

// WorkArea returns the playable frame range.
func (a *LinearAnimation) WorkArea() (start, end uint32) {
	if a.cfg.EnableWorkArea {
		return a.cfg.WorkStart, a.cfg.WorkEnd
	}
	return 0, a.cfg.Duration
}

// StartTime returns the first playable second.
func (a *LinearAnimation) StartTime() float64 {
	start, _ := a.WorkArea()
	return float64(start) / float64(a.cfg.FPS)
}

// EndTime returns the last playable second.
func (a *LinearAnimation) EndTime() float64 {
	_, end := a.WorkArea()
	return float64(end) / float64(a.cfg.FPS)
}

// DurationSeconds returns the length of the playable range.
func (a *LinearAnimation) DurationSeconds() float64 {
	start, end := a.WorkArea()
	return float64(end-start) / float64(a.cfg.FPS)
}

// Tracks returns the animation's tracks. Callers must not modify them.
func (a *LinearAnimation) Tracks() []Track { return a.cfg.Tracks }

// Apply writes every track's value at time into target. Targets that do not
// expose properties are left untouched, as are paths the target does not
// know.
func (a *LinearAnimation) Apply(target Target, time, mix float64) {
	pt, ok := target.(PropertyTarget)
	if !ok || mix <= 0 {
		return
	}
	frame := time * float64(a.cfg.FPS)
	for i := range a.cfg.Tracks {
		tr := &a.cfg.Tracks[i]
		switch tr.Kind {
		case PropertyColor:
			v := tr.ColorAt(frame)
			if mix < 1 {
				if cur, ok := pt.Color(tr.Path); ok {
					v = LerpColor(cur, v, mix)
				}
			}
			pt.SetColor(tr.Path, v)
		default:
			v := tr.NumberAt(frame)
			if mix < 1 {
				if cur, ok := pt.Number(tr.Path); ok {
					v = LerpFloat64(cur, v, mix)
				}
			}
			pt.SetNumber(tr.Path, v)
		}
	}
}
