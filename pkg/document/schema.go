package document

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/timeline/pkg/animation"
	"github.com/go-drift/timeline/pkg/artboard"
	"github.com/go-drift/timeline/pkg/errors"
)

type fileDoc struct {
	Format     string         `yaml:"format"`
	Artboard   artboardDoc    `yaml:"artboard"`
	Animations []animationDoc `yaml:"animations"`
}

type artboardDoc struct {
	Name            string    `yaml:"name"`
	Width           float64   `yaml:"width"`
	Height          float64   `yaml:"height"`
	Background      string    `yaml:"background,omitempty"`
	BackgroundAlpha *float64  `yaml:"backgroundAlpha,omitempty"`
	Nodes           []nodeDoc `yaml:"nodes"`
}

type nodeDoc struct {
	Name     string   `yaml:"name"`
	Parent   string   `yaml:"parent,omitempty"`
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Rotation float64  `yaml:"rotation"`
	ScaleX   *float64 `yaml:"scaleX,omitempty"`
	ScaleY   *float64 `yaml:"scaleY,omitempty"`
	Opacity  *float64 `yaml:"opacity,omitempty"`
	Fill     string   `yaml:"fill,omitempty"`
}

type animationDoc struct {
	Name           string     `yaml:"name"`
	FPS            uint32     `yaml:"fps"`
	Duration       uint32     `yaml:"duration"`
	Speed          float64    `yaml:"speed"`
	Loop           string     `yaml:"loop"`
	WorkStart      uint32     `yaml:"workStart"`
	WorkEnd        uint32     `yaml:"workEnd"`
	EnableWorkArea bool       `yaml:"enableWorkArea"`
	Tracks         []trackDoc `yaml:"tracks"`
}

type trackDoc struct {
	Path      string        `yaml:"path"`
	Type      string        `yaml:"type,omitempty"`
	Keyframes []keyframeDoc `yaml:"keyframes"`
}

type keyframeDoc struct {
	Frame         float64   `yaml:"frame"`
	Value         float64   `yaml:"value"`
	Color         string    `yaml:"color,omitempty"`
	Interpolation string    `yaml:"interpolation,omitempty"`
	Bezier        []float64 `yaml:"bezier,omitempty"`
}

func parseErr(source, field string, got any) error {
	return &errors.AnimationError{
		Op:   "document.Load",
		Kind: errors.KindParsing,
		Err:  &errors.ParseError{Source: source, Field: field, Got: got},
	}
}

func (b artboardDoc) build(source string) (*artboard.Artboard, error) {
	if b.Width < 0 || b.Height < 0 {
		return nil, parseErr(source, "artboard.width", fmt.Sprintf("%vx%v", b.Width, b.Height))
	}
	board := artboard.New(b.Name, b.Width, b.Height)
	bg, _ := board.Background()
	if b.Background != "" {
		c, err := colorful.Hex(b.Background)
		if err != nil {
			return nil, parseErr(source, "artboard.background", b.Background)
		}
		bg = c
	}
	alpha := 1.0
	if b.BackgroundAlpha != nil {
		alpha = *b.BackgroundAlpha
	}
	board.SetBackground(bg, alpha)

	for i, nd := range b.Nodes {
		n := artboard.NewNode(nd.Name, nd.Parent)
		n.X, n.Y, n.Rotation = nd.X, nd.Y, nd.Rotation
		if nd.ScaleX != nil {
			n.ScaleX = *nd.ScaleX
		}
		if nd.ScaleY != nil {
			n.ScaleY = *nd.ScaleY
		}
		if nd.Opacity != nil {
			n.Opacity = *nd.Opacity
		}
		if nd.Fill != "" {
			c, err := colorful.Hex(nd.Fill)
			if err != nil {
				return nil, parseErr(source, fmt.Sprintf("artboard.nodes[%d].fill", i), nd.Fill)
			}
			n.Fill = c
		}
		if err := board.AddNode(n); err != nil {
			return nil, fmt.Errorf("artboard.nodes[%d]: %w", i, err)
		}
	}
	return board, nil
}

func (a animationDoc) config(source string, index int) (animation.LinearAnimationConfig, error) {
	field := fmt.Sprintf("animations[%d]", index)
	cfg := animation.LinearAnimationConfig{
		Name:           a.Name,
		FPS:            a.FPS,
		Duration:       a.Duration,
		Speed:          a.Speed,
		WorkStart:      a.WorkStart,
		WorkEnd:        a.WorkEnd,
		EnableWorkArea: a.EnableWorkArea,
	}
	if a.Loop != "" {
		mode, err := animation.ParseLoopMode(a.Loop)
		if err != nil {
			return cfg, parseErr(source, field+".loop", a.Loop)
		}
		cfg.Loop = mode
	}

	for ti, td := range a.Tracks {
		tfield := fmt.Sprintf("%s.tracks[%d]", field, ti)
		tr := animation.Track{Path: td.Path}
		switch strings.ToLower(td.Type) {
		case "", "number":
			tr.Kind = animation.PropertyNumber
		case "color":
			tr.Kind = animation.PropertyColor
		default:
			return cfg, parseErr(source, tfield+".type", td.Type)
		}
		for ki, kd := range td.Keyframes {
			kfield := fmt.Sprintf("%s.keyframes[%d]", tfield, ki)
			kf, err := kd.keyframe(tr.Kind)
			if err != nil {
				return cfg, parseErr(source, kfield+"."+err.Error(), kd)
			}
			tr.Keyframes = append(tr.Keyframes, kf)
		}
		cfg.Tracks = append(cfg.Tracks, tr)
	}
	return cfg, nil
}

// keyframe converts k. On failure the returned error's text is the name of
// the offending field.
func (k keyframeDoc) keyframe(kind animation.PropertyKind) (animation.Keyframe, error) {
	kf := animation.Keyframe{Frame: k.Frame, Value: k.Value}
	if kind == animation.PropertyColor {
		c, err := colorful.Hex(k.Color)
		if err != nil {
			return kf, fmt.Errorf("color")
		}
		kf.Color = c
	}

	switch name := k.Interpolation; strings.ToLower(name) {
	case "", "linear":
		kf.Interpolation = animation.InterpolationLinear
	case "hold":
		kf.Interpolation = animation.InterpolationHold
	case "cubic":
		if len(k.Bezier) != 4 {
			return kf, fmt.Errorf("bezier")
		}
		kf.Interpolation = animation.InterpolationCurve
		kf.Curve = animation.CubicBezier(k.Bezier[0], k.Bezier[1], k.Bezier[2], k.Bezier[3])
	default:
		curve, ok := animation.CurveByName(name)
		if !ok {
			return kf, fmt.Errorf("interpolation")
		}
		kf.Interpolation = animation.InterpolationCurve
		kf.Curve = curve
	}
	return kf, nil
}
