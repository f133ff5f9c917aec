package script

import (
	"errors"
	"strings"
	"testing"

	"ember/gui"
	"ember/hal"
)

type recorder struct {
	touches []gui.TouchSample
	keys    []gui.KeySample
	full    bool
}

func (r *recorder) PushTouch(s gui.TouchSample) bool {
	if r.full {
		return false
	}
	r.touches = append(r.touches, s)
	return true
}

func (r *recorder) PushKey(k gui.KeySample) bool {
	if r.full {
		return false
	}
	r.keys = append(r.keys, k)
	return true
}

func TestParse(t *testing.T) {
	cmds, err := Parse(strings.NewReader(`
# comment
tap 10 20
press 1 2
move 3 4
release
key "hi there"
key tab shift
wait 3
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cmds) != 7 {
		t.Fatalf("len=%d, want 7", len(cmds))
	}
	if c := cmds[0]; c.Op != OpTap || c.X != 10 || c.Y != 20 || c.Line != 3 {
		t.Fatalf("cmds[0]=%+v", c)
	}
	if got := string(cmds[4].Keys); got != "hi there" {
		t.Fatalf("key text=%q", got)
	}
	if c := cmds[5]; len(c.Keys) != 1 || c.Keys[0] != gui.KeyTab || !c.Shift {
		t.Fatalf("cmds[5]=%+v", c)
	}
	if cmds[6].Ticks != 3 {
		t.Fatalf("wait ticks=%d", cmds[6].Ticks)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := map[string]string{
		"unknown":  "jump 1 2",
		"args":     "tap 1",
		"coords":   "press a b",
		"release":  "release now",
		"wait":     "wait -1",
		"key":      "key",
		"quote":    `key "open`,
		"overflow": "tap 40000 1",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader("# header\n" + src + "\n"))
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("err=%v, want ErrSyntax", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) || se.Line != 2 {
				t.Fatalf("err=%v, want SyntaxError at line 2", err)
			}
		})
	}
}

func TestPlayer_OneCommandPerTick(t *testing.T) {
	cmds, err := Parse(strings.NewReader("press 5 6\nwait 2\nmove 7 8\nrelease\nkey ab\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := NewPlayer(cmds)
	r := &recorder{}

	ticks := 0
	for !p.Done() {
		p.Step(r, uint32(ticks))
		ticks++
		if ticks > 20 {
			t.Fatal("player never finished")
		}
	}
	if ticks != 7 {
		t.Fatalf("ticks=%d, want 7", ticks)
	}
	if len(r.touches) != 3 {
		t.Fatalf("touches=%d, want 3", len(r.touches))
	}
	if last := r.touches[2]; last.Pressed || last.X[0] != 7 || last.Y[0] != 8 {
		t.Fatalf("release sample=%+v, want at the last position", last)
	}
	if len(r.keys) != 2 || r.keys[0].Rune() != 'a' || r.keys[1].Rune() != 'b' {
		t.Fatalf("keys=%v", r.keys)
	}
}

func TestPlayer_CountsDrops(t *testing.T) {
	cmds, _ := Parse(strings.NewReader("tap 1 1\n"))
	p := NewPlayer(cmds)
	p.Step(&recorder{full: true}, 0)
	if p.Dropped() != 2 {
		t.Fatalf("dropped=%d, want 2", p.Dropped())
	}
}

func TestPlayer_DrivesContext(t *testing.T) {
	cmds, err := Parse(strings.NewReader("tap 5 5\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := gui.New(hal.NewMemLCD(32, 32, 1))
	if err != nil {
		t.Fatalf("gui.New: %v", err)
	}
	h, err := c.Create(gui.None, gui.Spec{Width: gui.Px(10), Height: gui.Px(10)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p := NewPlayer(cmds)
	p.Step(c, 0)
	c.Process()
	if c.Focused() != h || c.Active() != gui.None {
		t.Fatalf("focused=%d active=%d, want %d/none", c.Focused(), c.Active(), h)
	}
}
