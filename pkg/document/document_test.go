package document

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/timeline/pkg/animation"
	"github.com/go-drift/timeline/pkg/errors"
)

const heroDoc = `
format: v1.2.0
artboard:
  name: hero
  width: 400
  height: 300
  background: "#202020"
  nodes:
    - {name: body}
    - {name: arm, parent: body, x: 20, opacity: 0.5}
animations:
  - name: wave
    fps: 10
    duration: 20
    loop: pingPong
    tracks:
      - path: arm.rotation
        keyframes:
          - {frame: 0, value: 0}
          - {frame: 20, value: 40}
  - name: tint
    fps: 10
    duration: 10
    tracks:
      - path: body.fill
        type: color
        keyframes:
          - {frame: 0, color: "#000000", interpolation: hold}
          - {frame: 10, color: "#ffffff"}
`

func TestLoadBytes(t *testing.T) {
	doc, err := LoadBytes([]byte(heroDoc))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if doc.Format != "v1.2.0" {
		t.Errorf("Format = %q", doc.Format)
	}
	if doc.Artboard.Name() != "hero" || doc.Artboard.NodeCount() != 2 {
		t.Errorf("artboard = %s with %d nodes", doc.Artboard.Name(), doc.Artboard.NodeCount())
	}
	if c, _ := doc.Artboard.Background(); c.Hex() != "#202020" {
		t.Errorf("background = %s", c.Hex())
	}
	if o, _ := doc.Artboard.Number("arm.opacity"); o != 0.5 {
		t.Errorf("arm.opacity = %v, want 0.5", o)
	}

	names := doc.Names()
	if len(names) != 2 || names[0] != "tint" || names[1] != "wave" {
		t.Errorf("Names() = %v", names)
	}
	anims := doc.Animations()
	if len(anims) != 2 || anims[0].Name() != "wave" {
		t.Errorf("Animations() not in document order")
	}

	wave, _ := doc.Animation("wave")
	if wave.Loop() != animation.PingPong || wave.DurationSeconds() != 2 {
		t.Errorf("wave loop=%v duration=%v", wave.Loop(), wave.DurationSeconds())
	}
}

func TestInstancePlaysOnArtboard(t *testing.T) {
	doc, err := Load(strings.NewReader(heroDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wave, err := doc.Instance("wave", 1)
	if err != nil {
		t.Fatalf("Instance: %v", err)
	}
	wave.AdvanceAndApply(0.5)
	if r, _ := doc.Artboard.Number("arm.rotation"); r != 10 {
		t.Errorf("arm.rotation = %v, want 10", r)
	}

	tint, _ := doc.Instance("tint", 1)
	tint.AdvanceAndApply(0.5)
	if c, _ := doc.Artboard.Color("body.fill"); c.Hex() != "#000000" {
		t.Errorf("held fill = %s, want #000000", c.Hex())
	}

	fresh := doc.NewArtboard()
	if r, _ := fresh.Number("arm.rotation"); r != 0 {
		t.Errorf("NewArtboard arm.rotation = %v, want authored 0", r)
	}
	if fresh == doc.Artboard {
		t.Error("NewArtboard returned the shared artboard")
	}
}

func TestAnimationLookup(t *testing.T) {
	doc, err := LoadBytes([]byte(heroDoc))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	for _, call := range []func() error{
		func() error { _, err := doc.Animation("run"); return err },
		func() error { _, err := doc.Instance("run", 1); return err },
	} {
		var ae *errors.AnimationError
		if err := call(); !stderrors.As(err, &ae) || ae.Kind != errors.KindLookup || ae.Animation != "run" {
			t.Errorf("lookup error = %v", err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	const header = "format: v1.0.0\nartboard: {name: a, width: 1, height: 1, nodes: [{name: n}]}\n"
	tests := []struct {
		name string
		doc  string
		kind errors.ErrorKind
	}{
		{"empty", "", errors.KindParsing},
		{"malformed", "format: [", errors.KindParsing},
		{"unknown field", header + "colour: red\n", errors.KindParsing},
		{"missing format", "artboard: {name: a}\n", errors.KindFormat},
		{"not semver", "format: \"1.0\"\n", errors.KindFormat},
		{"future major", "format: v2.0.0\n", errors.KindFormat},
		{"bad background", "format: v1.0.0\nartboard: {background: nope}\n", errors.KindParsing},
		{"bad fill", "format: v1.0.0\nartboard: {nodes: [{name: n, fill: \"#zz\"}]}\n", errors.KindParsing},
		{"unknown parent", "format: v1.0.0\nartboard: {nodes: [{name: n, parent: m}]}\n", errors.KindInvalidArgument},
		{"bad loop", header + "animations: [{name: x, duration: 1, loop: sideways}]\n", errors.KindParsing},
		{"bad track type", header + "animations: [{name: x, duration: 1, tracks: [{path: n.x, type: text, keyframes: [{frame: 0}]}]}]\n", errors.KindParsing},
		{"bad key color", header + "animations: [{name: x, duration: 1, tracks: [{path: n.fill, type: color, keyframes: [{frame: 0, color: red}]}]}]\n", errors.KindParsing},
		{"bad interpolation", header + "animations: [{name: x, duration: 1, tracks: [{path: n.x, keyframes: [{frame: 0, interpolation: wobble}]}]}]\n", errors.KindParsing},
		{"short bezier", header + "animations: [{name: x, duration: 1, tracks: [{path: n.x, keyframes: [{frame: 0, interpolation: cubic, bezier: [0, 0, 1]}]}]}]\n", errors.KindParsing},
		{"undotted path", header + "animations: [{name: x, duration: 1, tracks: [{path: nx, keyframes: [{frame: 0}]}]}]\n", errors.KindInvalidArgument},
		{"duplicate name", header + "animations: [{name: x, duration: 1}, {name: x, duration: 2}]\n", errors.KindInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.doc))
			var ae *errors.AnimationError
			if !stderrors.As(err, &ae) {
				t.Fatalf("LoadBytes() error = %v, want AnimationError", err)
			}
			if ae.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", ae.Kind, tt.kind, err)
			}
		})
	}
}

func TestCurveInterpolation(t *testing.T) {
	const src = `
format: v1.0.0
artboard: {name: a, nodes: [{name: n}]}
animations:
  - name: slide
    fps: 1
    duration: 2
    tracks:
      - path: n.x
        keyframes:
          - {frame: 0, value: 0, interpolation: cubic, bezier: [0, 0, 1, 1]}
          - {frame: 1, value: 10, interpolation: in-out-quad}
          - {frame: 2, value: 20}
`
	doc, err := LoadBytes([]byte(src))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	slide, _ := doc.Animation("slide")
	tr := slide.Tracks()[0]
	if tr.Keyframes[0].Interpolation != animation.InterpolationCurve || tr.Keyframes[1].Curve == nil {
		t.Fatalf("keyframes not curved: %+v", tr.Keyframes)
	}
	if v := tr.NumberAt(1.5); v != 15 {
		t.Errorf("NumberAt(1.5) = %v, want 15 at the in-out-quad midpoint", v)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.yaml")
	if err := os.WriteFile(path, []byte(heroDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(doc.Names()) != 2 {
		t.Errorf("Names() = %v", doc.Names())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("format: v9.0.0\n"), 0o644)
	_, err = LoadFile(bad)
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) || pe.Source != bad || pe.Field != "format" {
		t.Errorf("LoadFile(bad) = %v, want ParseError naming the file", err)
	}
}
