package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/timeline/cmd/timeline/internal/config"
	"github.com/go-drift/timeline/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "play",
		Short: "Play an animation headless and print each frame",
		Long: `Play one animation from a document, frame by frame, without a window.

Every frame prints the playback time, direction, whether the frame looped
or reversed, the spilled time and whether the animation keeps going.
Playback stops early once a one-shot animation finishes. The artboard's
final state is printed at the end.

Flags:
  --animation NAME   Animation to play (default: the first in the document)
  --fps N            Frames per second to step at (default: 60)
  --frames N         Maximum number of frames to play (default: 120)
  --speed X          Speed multiplier; negative plays in reverse (default: 1)
  --loop MODE        Override the loop mode: oneShot, loop or pingPong
  --verbose          Report runtime errors with stack traces

Defaults can also be set in timeline.yaml:

  player:
    fps: 30
    frames: 90
    loop: pingPong`,
		Usage: "timeline play <file> [--animation NAME] [--fps N] [--frames N] [--speed X] [--loop MODE] [--verbose]",
		Run:   runPlay,
	})
}

type playOptions struct {
	animation string
	fps       string
	frames    string
	speed     string
	loop      string
	verbose   bool
}

func runPlay(args []string) error {
	files, opts, err := parsePlayArgs(args)
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return fmt.Errorf("exactly one document is required\n\nUsage: timeline play <file> [--animation NAME]")
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	doc, err := loadDocument(files[0], cfg)
	if err != nil {
		return err
	}

	name := opts.animation
	if name == "" {
		anims := doc.Animations()
		if len(anims) == 0 {
			return fmt.Errorf("%s has no animations", files[0])
		}
		name = anims[0].Name()
	}

	errors.SetHandler(&errors.LogHandler{Verbose: cfg.Verbose})
	defer errors.SetHandler(nil)

	inst, err := doc.Instance(name, cfg.Speed)
	if err != nil {
		return err
	}
	if cfg.HasLoop {
		inst.SetLoop(cfg.Loop)
	}

	fmt.Fprintf(stdout, "Playing %s (%s, %.3fs) at %d fps, speed %g\n",
		name, inst.Loop(), inst.DurationSeconds(), cfg.FPS, cfg.Speed)
	fmt.Fprintf(stdout, "%5s %9s %-9s %-7s %9s %s\n", "frame", "time", "direction", "looped", "spilled", "keepGoing")

	dt := 1 / float64(cfg.FPS)
	for frame := 1; frame <= cfg.Frames; frame++ {
		more := inst.AdvanceAndApply(dt)
		fmt.Fprintf(stdout, "%5d %9.4f %-9s %-7t %9.4f %t\n",
			frame, inst.Time(), inst.Direction(), inst.DidLoop(), inst.SpilledTime(), more)
		if !more {
			break
		}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Final state:")
	for _, line := range doc.Artboard.Snapshot() {
		fmt.Fprintf(stdout, "  %s\n", line)
	}
	return nil
}

func parsePlayArgs(args []string) ([]string, playOptions, error) {
	opts := playOptions{}
	files := make([]string, 0, len(args))
	valued := map[string]*string{
		"--animation": &opts.animation,
		"--fps":       &opts.fps,
		"--frames":    &opts.frames,
		"--speed":     &opts.speed,
		"--loop":      &opts.loop,
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--verbose" {
			opts.verbose = true
			continue
		}
		name, value, hasValue := strings.Cut(arg, "=")
		dst, ok := valued[name]
		if !ok {
			if strings.HasPrefix(arg, "--") {
				return nil, opts, fmt.Errorf("unknown flag %s", arg)
			}
			files = append(files, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}
		*dst = value
	}
	return files, opts, nil
}

// apply overrides cfg with the flags that were given.
func (o playOptions) apply(cfg *config.Resolved) error {
	if o.fps != "" {
		n, err := strconv.Atoi(o.fps)
		if err != nil || n <= 0 {
			return fmt.Errorf("--fps must be a positive integer, got %q", o.fps)
		}
		cfg.FPS = n
	}
	if o.frames != "" {
		n, err := strconv.Atoi(o.frames)
		if err != nil || n <= 0 {
			return fmt.Errorf("--frames must be a positive integer, got %q", o.frames)
		}
		cfg.Frames = n
	}
	if o.speed != "" {
		s, err := strconv.ParseFloat(o.speed, 64)
		if err != nil || s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("--speed must be a finite non-zero number, got %q", o.speed)
		}
		cfg.Speed = s
	}
	if o.loop != "" {
		if err := cfg.SetLoop(o.loop); err != nil {
			return fmt.Errorf("--loop: %w", err)
		}
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return nil
}
