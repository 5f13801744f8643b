// Package document loads artboards and their animations from YAML.
//
// A document looks like:
//
//	format: v1.0.0
//	artboard:
//	  name: hero
//	  width: 400
//	  height: 300
//	  background: "#202020"
//	  nodes:
//	    - {name: body}
//	    - {name: arm, parent: body, x: 20}
//	animations:
//	  - name: wave
//	    fps: 30
//	    duration: 60
//	    loop: pingPong
//	    tracks:
//	      - path: arm.rotation
//	        keyframes:
//	          - {frame: 0, value: -20, interpolation: inOutSine}
//	          - {frame: 60, value: 20}
//
// The format field is a semantic version; only major version 1 is accepted.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/timeline/pkg/animation"
	"github.com/go-drift/timeline/pkg/artboard"
	"github.com/go-drift/timeline/pkg/errors"
)

// FormatMajor is the document format major version this package reads.
const FormatMajor = "v1"

// Document is a loaded artboard plus the animations authored for it.
type Document struct {
	// Format is the document's format version.
	Format string
	// Artboard is the default target for instances created by Instance.
	Artboard *artboard.Artboard

	board      artboardDoc
	animations []*animation.LinearAnimation
	byName     map[string]*animation.LinearAnimation
}

// Load parses a document from the provided reader.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &errors.AnimationError{Op: "document.Load", Kind: errors.KindParsing, Err: err}
	}
	return load(data, "")
}

// LoadBytes parses a document from byte data.
func LoadBytes(data []byte) (*Document, error) {
	return load(data, "")
}

// LoadFile parses a document from a file path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := load(data, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

func load(data []byte, source string) (*Document, error) {
	var raw fileDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty document")
		}
		return nil, &errors.AnimationError{Op: "document.Load", Kind: errors.KindParsing, Err: err}
	}

	if !semver.IsValid(raw.Format) || semver.Major(raw.Format) != FormatMajor {
		return nil, &errors.AnimationError{
			Op:   "document.Load",
			Kind: errors.KindFormat,
			Err:  &errors.ParseError{Source: source, Field: "format", Got: raw.Format},
		}
	}

	d := &Document{
		Format: raw.Format,
		board:  raw.Artboard,
		byName: make(map[string]*animation.LinearAnimation, len(raw.Animations)),
	}
	board, err := raw.Artboard.build(source)
	if err != nil {
		return nil, err
	}
	d.Artboard = board

	for i, ad := range raw.Animations {
		cfg, err := ad.config(source, i)
		if err != nil {
			return nil, err
		}
		anim, err := animation.NewLinearAnimation(cfg)
		if err != nil {
			return nil, err
		}
		if _, dup := d.byName[anim.Name()]; dup {
			return nil, &errors.AnimationError{
				Op:        "document.Load",
				Kind:      errors.KindInvalidArgument,
				Animation: anim.Name(),
				Err:       fmt.Errorf("duplicate animation name"),
			}
		}
		d.byName[anim.Name()] = anim
		d.animations = append(d.animations, anim)
	}
	return d, nil
}

// Animations returns the animations in document order.
func (d *Document) Animations() []*animation.LinearAnimation {
	return append([]*animation.LinearAnimation(nil), d.animations...)
}

// Names returns the animation names, sorted.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Animation looks up an animation by name.
func (d *Document) Animation(name string) (*animation.LinearAnimation, error) {
	if a, ok := d.byName[name]; ok {
		return a, nil
	}
	return nil, &errors.AnimationError{
		Op:        "document.Animation",
		Kind:      errors.KindLookup,
		Animation: name,
		Err:       fmt.Errorf("no animation named %q", name),
	}
}

// Instance creates an instance of the named animation bound to the
// document's artboard.
func (d *Document) Instance(name string, speedMultiplier float64) (*animation.Instance, error) {
	a, err := d.Animation(name)
	if err != nil {
		return nil, err
	}
	return animation.NewInstance(a, d.Artboard, speedMultiplier), nil
}

// NewArtboard builds a fresh copy of the document's artboard in its authored
// state, for playing animations on independent targets.
func (d *Document) NewArtboard() *artboard.Artboard {
	// The description was validated by Load.
	board, _ := d.board.build("")
	return board
}
