// Package scene builds widget trees from YAML descriptions.
//
//	widgets:
//	  - kind: window
//	    name: main
//	    title: Demo
//	    x: 10
//	    y: 10
//	    width: 60%
//	    height: fill
//	    children:
//	      - kind: button
//	        text: OK
//	        on_click: ok
package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ember/gfx"
	"ember/gui"
	"ember/widgets"
)

var (
	ErrUnknownKind   = errors.New("unknown widget kind")
	ErrBadDim        = errors.New("bad dimension")
	ErrUnknownAction = errors.New("unknown action")
	ErrDuplicateName = errors.New("duplicate widget name")
)

// Error locates a problem inside a scene.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("scene %s: %v", e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Dim is a YAML dimension: "120", "50%" or "fill".
type Dim gui.Dim

// ParseDim parses the textual forms of Dim.
func ParseDim(s string) (gui.Dim, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "fill":
		return gui.Fill(), nil
	case strings.HasSuffix(s, "%"):
		v, err := strconv.ParseInt(strings.TrimSuffix(s, "%"), 10, 16)
		if err != nil || v < 0 || v > 100 {
			return gui.Dim{}, fmt.Errorf("%q: %w", s, ErrBadDim)
		}
		return gui.Percent(int16(v)), nil
	default:
		v, err := strconv.ParseInt(strings.TrimSuffix(s, "px"), 10, 16)
		if err != nil || v < 0 {
			return gui.Dim{}, fmt.Errorf("%q: %w", s, ErrBadDim)
		}
		return gui.Px(int16(v)), nil
	}
}

func (d *Dim) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", value.Line, ErrBadDim)
	}
	v, err := ParseDim(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Dim(v)
	return nil
}

// Node is one widget in a scene.
type Node struct {
	Kind   string `yaml:"kind"`
	Name   string `yaml:"name"`
	ID     uint32 `yaml:"id"`
	X      int16  `yaml:"x"`
	Y      int16  `yaml:"y"`
	Width  *Dim   `yaml:"width"`
	Height *Dim   `yaml:"height"`
	Z      int32  `yaml:"z"`
	Expand bool   `yaml:"expand"`

	Hidden   bool `yaml:"hidden"`
	Disabled bool `yaml:"disabled"`
	ThreeD   bool `yaml:"3d"`
	Focus    bool `yaml:"focus"`

	Title     string `yaml:"title"`
	Text      string `yaml:"text"`
	Align     string `yaml:"align"`
	Color     string `yaml:"color"`
	Opaque    bool   `yaml:"opaque"`
	Modal     bool   `yaml:"modal"`
	Draggable bool   `yaml:"draggable"`
	Lines     int    `yaml:"lines"`
	OnClick   string `yaml:"on_click"`

	Children []Node `yaml:"children"`
}

// Scene is a parsed scene file.
type Scene struct {
	Widgets []Node `yaml:"widgets"`
}

// Parse decodes a YAML scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &Error{Path: "yaml", Err: err}
	}
	return &s, nil
}

// Action is bound to buttons through on_click.
type Action func(c *gui.Context, h gui.Handle)

// Env supplies what widgets need while being built.
type Env struct {
	Theme   *widgets.Theme
	Actions map[string]Action
}

// Factory turns a node into a widget.
type Factory func(n *Node, env *Env) (widgets.Widget, error)

// Builder instantiates scenes. The zero value is not usable; call
// NewBuilder.
type Builder struct {
	kinds map[string]Factory
}

// NewBuilder returns a builder that knows the stock widget kinds.
func NewBuilder() *Builder {
	b := &Builder{kinds: map[string]Factory{}}
	b.Register("window", newWindow)
	b.Register("button", newButton)
	b.Register("label", newLabel)
	b.Register("console", newConsole)
	return b
}

// Register adds or replaces a widget kind.
func (b *Builder) Register(kind string, f Factory) {
	b.kinds[strings.ToLower(kind)] = f
}

// Built is the result of instantiating a scene.
type Built struct {
	Roots   []gui.Handle
	Named   map[string]gui.Handle
	Widgets map[gui.Handle]widgets.Widget
}

// Console returns the named console widget.
func (b *Built) Console(name string) (*widgets.Console, gui.Handle, bool) {
	h, ok := b.Named[name]
	if !ok {
		return nil, gui.None, false
	}
	con, ok := b.Widgets[h].(*widgets.Console)
	return con, h, ok
}

// Build creates every widget of s under parent. On error the widgets
// created so far are removed.
func (b *Builder) Build(c *gui.Context, parent gui.Handle, s *Scene, env *Env) (*Built, error) {
	if env == nil {
		env = &Env{}
	}
	out := &Built{
		Named:   map[string]gui.Handle{},
		Widgets: map[gui.Handle]widgets.Widget{},
	}
	var focus gui.Handle = gui.None
	for i := range s.Widgets {
		h, err := b.build(c, parent, &s.Widgets[i], env, fmt.Sprintf("widgets[%d]", i), out, &focus)
		if err != nil {
			for _, r := range out.Roots {
				c.Remove(r)
			}
			return nil, err
		}
		out.Roots = append(out.Roots, h)
	}
	if focus != gui.None {
		c.Focus(focus)
	}
	return out, nil
}

func (b *Builder) build(c *gui.Context, parent gui.Handle, n *Node, env *Env, path string, out *Built, focus *gui.Handle) (gui.Handle, error) {
	f, ok := b.kinds[strings.ToLower(n.Kind)]
	if !ok {
		return gui.None, &Error{Path: path, Err: fmt.Errorf("%q: %w", n.Kind, ErrUnknownKind)}
	}
	w, err := f(n, env)
	if err != nil {
		return gui.None, &Error{Path: path, Err: err}
	}
	if len(n.Children) > 0 && w.Caps()&gui.CapChildren == 0 {
		return gui.None, &Error{Path: path, Err: fmt.Errorf("%s cannot hold children: %w", n.Kind, gui.ErrBadParent)}
	}
	if n.Name != "" {
		if _, dup := out.Named[n.Name]; dup {
			return gui.None, &Error{Path: path, Err: fmt.Errorf("%q: %w", n.Name, ErrDuplicateName)}
		}
	}

	spec := gui.Spec{
		ID:       gui.ID(n.ID),
		X:        n.X,
		Y:        n.Y,
		Width:    gui.Fill(),
		Height:   gui.Fill(),
		ZIndex:   n.Z,
		Expanded: n.Expand,
	}
	if n.Width != nil {
		spec.Width = gui.Dim(*n.Width)
	}
	if n.Height != nil {
		spec.Height = gui.Dim(*n.Height)
	}
	if n.Hidden {
		spec.Flags |= gui.FlagHidden
	}
	if n.Disabled {
		spec.Flags |= gui.FlagDisabled
	}
	if n.ThreeD {
		spec.Flags |= gui.Flag3D
	}

	h, err := widgets.Create(c, parent, w, spec)
	if err != nil {
		if h != gui.None {
			c.Remove(h)
		}
		return gui.None, &Error{Path: path, Err: err}
	}
	out.Widgets[h] = w
	if n.Name != "" {
		out.Named[n.Name] = h
	}
	if n.Focus {
		*focus = h
	}

	for i := range n.Children {
		if _, err := b.build(c, h, &n.Children[i], env, fmt.Sprintf("%s.children[%d]", path, i), out, focus); err != nil {
			c.Remove(h)
			return gui.None, err
		}
	}
	return h, nil
}

func parseAlign(s string) (gfx.Align, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return gfx.AlignLeft, nil
	case "center", "centre":
		return gfx.AlignCenter, nil
	case "right":
		return gfx.AlignRight, nil
	}
	return 0, fmt.Errorf("align %q", s)
}

func newWindow(n *Node, env *Env) (widgets.Widget, error) {
	return &widgets.Window{Title: n.Title, Theme: env.Theme, Modal: n.Modal, Draggable: n.Draggable}, nil
}

func newButton(n *Node, env *Env) (widgets.Widget, error) {
	b := &widgets.Button{Text: n.Text, Theme: env.Theme}
	if n.OnClick != "" {
		a, ok := env.Actions[n.OnClick]
		if !ok {
			return nil, fmt.Errorf("%q: %w", n.OnClick, ErrUnknownAction)
		}
		b.OnClick = a
	}
	return b, nil
}

func newLabel(n *Node, env *Env) (widgets.Widget, error) {
	align, err := parseAlign(n.Align)
	if err != nil {
		return nil, err
	}
	l := &widgets.Label{Text: n.Text, Align: align, Theme: env.Theme, Opaque: n.Opaque}
	if n.Color != "" {
		col, err := gfx.ParseColor(n.Color)
		if err != nil {
			return nil, err
		}
		l.Color = col
	}
	return l, nil
}

func newConsole(n *Node, env *Env) (widgets.Widget, error) {
	return &widgets.Console{Theme: env.Theme, MaxLines: n.Lines}, nil
}
