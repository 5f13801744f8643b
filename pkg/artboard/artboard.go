// Package artboard provides the property graph animations are applied to.
//
// An [Artboard] holds named [Node]s arranged in a parent chain. Every
// animatable property is addressed by a path of the form "node.property";
// artboard-level properties use the reserved object name "artboard".
//
// Number properties: x, y, rotation (degrees), scaleX, scaleY, opacity and
// artboard.backgroundAlpha. Color properties: fill and artboard.background.
package artboard

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/f64"

	"github.com/go-drift/timeline/pkg/errors"
)

// Self is the object name that addresses the artboard's own properties.
const Self = "artboard"

// Node is one transformable element of an artboard.
type Node struct {
	Name string
	// Parent names the node this one is attached to; empty for the root.
	Parent   string
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Opacity  float64
	Fill     colorful.Color
}

// NewNode returns a node at the origin with unit scale, full opacity and a
// white fill.
func NewNode(name, parent string) *Node {
	return &Node{
		Name:    name,
		Parent:  parent,
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
		Fill:    colorful.Color{R: 1, G: 1, B: 1},
	}
}

// LocalTransform returns the node's translate-rotate-scale matrix.
func (n *Node) LocalTransform() f64.Aff3 {
	rad := n.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return f64.Aff3{
		n.ScaleX * cos, -n.ScaleY * sin, n.X,
		n.ScaleX * sin, n.ScaleY * cos, n.Y,
	}
}

// Artboard is a mutable set of nodes an animation writes into. It is not
// safe for concurrent use.
type Artboard struct {
	name            string
	width, height   float64
	background      colorful.Color
	backgroundAlpha float64
	nodes           map[string]*Node
	order           []string
}

// New returns an empty artboard with an opaque white background.
func New(name string, width, height float64) *Artboard {
	return &Artboard{
		name:            name,
		width:           width,
		height:          height,
		background:      colorful.Color{R: 1, G: 1, B: 1},
		backgroundAlpha: 1,
		nodes:           make(map[string]*Node),
	}
}

func (a *Artboard) Name() string    { return a.name }
func (a *Artboard) Width() float64  { return a.width }
func (a *Artboard) Height() float64 { return a.height }
func (a *Artboard) NodeCount() int  { return len(a.order) }
func (a *Artboard) Background() (colorful.Color, float64) {
	return a.background, a.backgroundAlpha
}

// SetBackground sets the background color and its alpha, clamped to [0, 1].
func (a *Artboard) SetBackground(c colorful.Color, alpha float64) {
	a.background = c
	a.backgroundAlpha = clampUnit(alpha)
}

// IsTranslucent reports whether the background lets content behind the
// artboard show through.
func (a *Artboard) IsTranslucent() bool {
	return a.backgroundAlpha < 1
}

// AddNode attaches n. Its parent, if any, must already be on the artboard,
// which keeps the parent chain acyclic.
func (a *Artboard) AddNode(n *Node) error {
	fail := func(err error) error {
		return &errors.AnimationError{Op: "artboard.AddNode", Kind: errors.KindInvalidArgument, Err: err}
	}
	switch {
	case n == nil:
		return fail(fmt.Errorf("nil node"))
	case n.Name == "" || strings.Contains(n.Name, "."):
		return fail(fmt.Errorf("invalid node name %q", n.Name))
	case n.Name == Self:
		return fail(fmt.Errorf("node name %q is reserved", Self))
	}
	if _, dup := a.nodes[n.Name]; dup {
		return fail(fmt.Errorf("duplicate node %q", n.Name))
	}
	if n.Parent != "" {
		if _, ok := a.nodes[n.Parent]; !ok {
			return fail(fmt.Errorf("node %q: unknown parent %q", n.Name, n.Parent))
		}
	}
	a.nodes[n.Name] = n
	a.order = append(a.order, n.Name)
	return nil
}

// Node looks up a node by name.
func (a *Artboard) Node(name string) (*Node, bool) {
	n, ok := a.nodes[name]
	return n, ok
}

// Nodes returns the nodes in the order they were added.
func (a *Artboard) Nodes() []*Node {
	out := make([]*Node, len(a.order))
	for i, name := range a.order {
		out[i] = a.nodes[name]
	}
	return out
}

func splitPath(path string) (object, prop string, ok bool) {
	i := strings.LastIndexByte(path, '.')
	if i <= 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}

func (n *Node) number(prop string) *float64 {
	switch prop {
	case "x":
		return &n.X
	case "y":
		return &n.Y
	case "rotation":
		return &n.Rotation
	case "scaleX":
		return &n.ScaleX
	case "scaleY":
		return &n.ScaleY
	case "opacity":
		return &n.Opacity
	}
	return nil
}

func (a *Artboard) numberRef(path string) *float64 {
	object, prop, ok := splitPath(path)
	if !ok {
		return nil
	}
	if object == Self {
		if prop == "backgroundAlpha" {
			return &a.backgroundAlpha
		}
		return nil
	}
	if n, ok := a.nodes[object]; ok {
		return n.number(prop)
	}
	return nil
}

func (a *Artboard) colorRef(path string) *colorful.Color {
	object, prop, ok := splitPath(path)
	if !ok {
		return nil
	}
	if object == Self {
		if prop == "background" {
			return &a.background
		}
		return nil
	}
	if n, ok := a.nodes[object]; ok && prop == "fill" {
		return &n.Fill
	}
	return nil
}

// Number reads a number property.
func (a *Artboard) Number(path string) (float64, bool) {
	if p := a.numberRef(path); p != nil {
		return *p, true
	}
	return 0, false
}

// SetNumber writes a number property and reports whether the path exists.
// Opacity values are clamped to [0, 1].
func (a *Artboard) SetNumber(path string, value float64) bool {
	p := a.numberRef(path)
	if p == nil {
		return false
	}
	if strings.HasSuffix(path, ".opacity") || strings.HasSuffix(path, ".backgroundAlpha") {
		value = clampUnit(value)
	}
	*p = value
	return true
}

// Color reads a color property.
func (a *Artboard) Color(path string) (colorful.Color, bool) {
	if p := a.colorRef(path); p != nil {
		return *p, true
	}
	return colorful.Color{}, false
}

// SetColor writes a color property and reports whether the path exists.
func (a *Artboard) SetColor(path string, value colorful.Color) bool {
	p := a.colorRef(path)
	if p == nil {
		return false
	}
	*p = value.Clamped()
	return true
}

// WorldTransform composes the local transforms from the root down to the
// named node.
func (a *Artboard) WorldTransform(name string) (f64.Aff3, bool) {
	n, ok := a.nodes[name]
	if !ok {
		return f64.Aff3{}, false
	}
	m := n.LocalTransform()
	for n.Parent != "" {
		n = a.nodes[n.Parent]
		m = multiply(n.LocalTransform(), m)
	}
	return m, true
}

// WorldOpacity multiplies opacity along the parent chain.
func (a *Artboard) WorldOpacity(name string) (float64, bool) {
	n, ok := a.nodes[name]
	if !ok {
		return 0, false
	}
	o := n.Opacity
	for n.Parent != "" {
		n = a.nodes[n.Parent]
		o *= n.Opacity
	}
	return o, true
}

// Snapshot lists every property as "path=value", sorted by path.
func (a *Artboard) Snapshot() []string {
	out := []string{
		Self + ".background=" + a.background.Hex(),
		Self + ".backgroundAlpha=" + formatFloat(a.backgroundAlpha),
	}
	for _, name := range a.order {
		n := a.nodes[name]
		for _, prop := range []string{"x", "y", "rotation", "scaleX", "scaleY", "opacity"} {
			out = append(out, name+"."+prop+"="+formatFloat(*n.number(prop)))
		}
		out = append(out, name+".fill="+n.Fill.Hex())
	}
	sort.Strings(out)
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// multiply returns p*q for affine matrices with an implied last row of 0 0 1.
func multiply(p, q f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		p[0]*q[0] + p[1]*q[3],
		p[0]*q[1] + p[1]*q[4],
		p[0]*q[2] + p[1]*q[5] + p[2],
		p[3]*q[0] + p[4]*q[3],
		p[3]*q[1] + p[4]*q[4],
		p[3]*q[2] + p[4]*q[5] + p[5],
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
