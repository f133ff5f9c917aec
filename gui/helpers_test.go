package gui

import (
	"image/color"
	"strings"
	"testing"

	"ember/hal"
)

var (
	red  = color.RGBA{R: 0xFF, A: 0xFF}
	blue = color.RGBA{B: 0xFF, A: 0xFF}
)

type trace struct {
	events []string
}

// probe records every command it receives as "name:command".
type probe struct {
	name     string
	tr       *trace
	touch    Result
	fill     color.RGBA
	failInit bool
	veto     bool
	keys     []rune
}

func (tr *trace) probe(name string) *probe {
	return &probe{name: name, tr: tr}
}

func (p *probe) Handle(e *Event) Result {
	p.tr.events = append(p.tr.events, p.name+":"+e.Cmd.String())
	switch e.Cmd {
	case CmdInit:
		if p.failInit {
			e.OK = false
		}
	case CmdCanRemove:
		if p.veto {
			e.OK = false
		}
	case CmdDraw:
		if p.fill != (color.RGBA{}) {
			e.Canvas.Fill(p.fill)
		}
	case CmdTouchStart:
		return p.touch
	case CmdKeyPress:
		p.keys = append(p.keys, e.Key.Rune())
		return Handled
	}
	return Unhandled
}

// only returns the recorded events for the given commands.
func (tr *trace) only(cmds ...Command) []string {
	var out []string
	for _, ev := range tr.events {
		for _, cmd := range cmds {
			if strings.HasSuffix(ev, ":"+cmd.String()) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

func (tr *trace) reset() { tr.events = nil }

func newTestContext(t *testing.T, layers int, opts ...Option) (*Context, *hal.MemLCD) {
	t.Helper()
	lcd := hal.NewMemLCD(100, 100, layers)
	c, err := New(lcd, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, lcd
}

func mustCreate(t *testing.T, c *Context, parent Handle, spec Spec) Handle {
	t.Helper()
	h, err := c.Create(parent, spec)
	if err != nil {
		t.Fatalf("Create(%d): %v", spec.ID, err)
	}
	return h
}

func box(id ID, b Behavior, x, y, w, h int16) Spec {
	return Spec{ID: id, Behavior: b, X: x, Y: y, Width: Px(w), Height: Px(h)}
}

func container(id ID, b Behavior, x, y, w, h int16) Spec {
	s := box(id, b, x, y, w, h)
	s.Caps = CapChildren
	return s
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalHandles(a, b []Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkOwnership fails if more than one widget carries the focused or the
// active flag, or if the flags disagree with the context references.
func checkOwnership(t *testing.T, c *Context) {
	t.Helper()
	var focused, active []Handle
	c.Walk(func(h Handle, _ int) bool {
		if c.IsFocused(h) {
			focused = append(focused, h)
		}
		if c.IsActive(h) {
			active = append(active, h)
		}
		return true
	})
	if len(focused) > 1 || len(active) > 1 {
		t.Fatalf("focused=%v active=%v, want at most one each", focused, active)
	}
	if (len(focused) == 1) != (c.Focused() != None) || (len(focused) == 1 && focused[0] != c.Focused()) {
		t.Fatalf("focused flags %v disagree with Focused()=%d", focused, c.Focused())
	}
	if (len(active) == 1) != (c.Active() != None) || (len(active) == 1 && active[0] != c.Active()) {
		t.Fatalf("active flags %v disagree with Active()=%d", active, c.Active())
	}
}
