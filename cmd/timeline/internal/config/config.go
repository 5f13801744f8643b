package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/timeline/pkg/animation"
)

// FileName is the optional per-directory configuration file.
const FileName = "timeline.yaml"

// Defaults applied when neither the file nor a flag sets a value.
const (
	DefaultFPS    = 60
	DefaultFrames = 120
	DefaultSpeed  = 1.0
)

// Config represents the optional timeline.yaml configuration.
type Config struct {
	Player   PlayerConfig   `yaml:"player"`
	Document DocumentConfig `yaml:"document"`
}

// PlayerConfig contains playback settings for the play command.
type PlayerConfig struct {
	FPS     int     `yaml:"fps,omitempty"`
	Frames  int     `yaml:"frames,omitempty"`
	Speed   float64 `yaml:"speed,omitempty"`
	Loop    string  `yaml:"loop,omitempty"`
	Verbose bool    `yaml:"verbose,omitempty"`
}

// DocumentConfig contains document loading constraints.
type DocumentConfig struct {
	// MinFormat rejects documents written in an older format version.
	MinFormat string `yaml:"minFormat,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root    string
	FPS     int
	Frames  int
	Speed   float64
	Loop    animation.LoopMode
	HasLoop bool
	Verbose bool
	// MinFormat is empty when any v1 document is accepted.
	MinFormat string
}

// LoadOptional reads timeline.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads timeline.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Root:    dir,
		FPS:     cfg.Player.FPS,
		Frames:  cfg.Player.Frames,
		Speed:   cfg.Player.Speed,
		Verbose: cfg.Player.Verbose,
	}
	if r.FPS == 0 {
		r.FPS = DefaultFPS
	}
	if r.Frames == 0 {
		r.Frames = DefaultFrames
	}
	if r.Speed == 0 {
		r.Speed = DefaultSpeed
	}
	if r.FPS < 0 || r.Frames < 0 {
		return nil, fmt.Errorf("%s: player.fps and player.frames must be positive", FileName)
	}
	if math.IsNaN(r.Speed) || math.IsInf(r.Speed, 0) {
		return nil, fmt.Errorf("%s: player.speed must be finite, got %v", FileName, r.Speed)
	}

	if loop := strings.TrimSpace(cfg.Player.Loop); loop != "" {
		if err := r.SetLoop(loop); err != nil {
			return nil, fmt.Errorf("%s: %w", FileName, err)
		}
	}

	if v := strings.TrimSpace(cfg.Document.MinFormat); v != "" {
		if !semver.IsValid(v) {
			return nil, fmt.Errorf("%s: document.minFormat %q is not a semantic version", FileName, v)
		}
		r.MinFormat = semver.Canonical(v)
	}

	return r, nil
}

// SetLoop parses and records a loop mode override.
func (r *Resolved) SetLoop(s string) error {
	mode, err := animation.ParseLoopMode(s)
	if err != nil {
		return err
	}
	r.Loop = mode
	r.HasLoop = true
	return nil
}

// AcceptsFormat reports whether a document written in format v may be
// loaded under this configuration.
func (r *Resolved) AcceptsFormat(v string) bool {
	return r.MinFormat == "" || semver.Compare(v, r.MinFormat) >= 0
}
