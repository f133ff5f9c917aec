package widgets

import (
	"errors"
	"fmt"
	"testing"

	"ember/gfx"
	"ember/gui"
	"ember/hal"
)

func newTestGUI(t *testing.T) (*gui.Context, *hal.MemLCD) {
	t.Helper()
	lcd := hal.NewMemLCD(160, 120, 1)
	c, err := gui.New(lcd)
	if err != nil {
		t.Fatalf("gui.New: %v", err)
	}
	return c, lcd
}

func mustCreate(t *testing.T, c *gui.Context, parent gui.Handle, w Widget, x, y, width, height int16) gui.Handle {
	t.Helper()
	h, err := Create(c, parent, w, gui.Spec{X: x, Y: y, Width: gui.Px(width), Height: gui.Px(height)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return h
}

func tap(c *gui.Context, x, y int16) {
	c.PushTouch(gui.Touch(x, y, true, 0))
	c.PushTouch(gui.Touch(x, y, false, 0))
	c.Process()
}

func TestButton_ClickOnRelease(t *testing.T) {
	c, _ := newTestGUI(t)
	clicks := 0
	b := &Button{Text: "OK", OnClick: func(*gui.Context, gui.Handle) { clicks++ }}
	h := mustCreate(t, c, gui.None, b, 10, 10, 40, 20)
	c.Process()

	tap(c, 20, 20)
	if clicks != 1 {
		t.Fatalf("clicks=%d, want 1", clicks)
	}
	if c.Focused() != h {
		t.Fatalf("focused=%d, want %d", c.Focused(), h)
	}

	c.PushKey(gui.Key(gui.KeyReturn, 0, 0))
	c.Process()
	if clicks != 2 {
		t.Fatalf("clicks=%d after Return, want 2", clicks)
	}
}

func TestButton_DragOffCancels(t *testing.T) {
	c, _ := newTestGUI(t)
	clicks := 0
	b := &Button{Text: "OK", OnClick: func(*gui.Context, gui.Handle) { clicks++ }}
	mustCreate(t, c, gui.None, b, 10, 10, 40, 20)

	c.PushTouch(gui.Touch(20, 20, true, 0))
	c.Process()
	if !b.Pressed() {
		t.Fatal("button should look pressed")
	}
	c.PushTouch(gui.Touch(100, 100, true, 0))
	c.PushTouch(gui.Touch(100, 100, false, 0))
	c.Process()
	if clicks != 0 || b.Pressed() {
		t.Fatalf("clicks=%d pressed=%v, want 0/false", clicks, b.Pressed())
	}
}

func TestButton_PaintsAccentWhilePressed(t *testing.T) {
	c, lcd := newTestGUI(t)
	b := &Button{}
	mustCreate(t, c, gui.None, b, 0, 0, 40, 20)
	c.Process()
	if got := lcd.GetPixel(0, 5, 15); got != hal.RGBA(hal.RGB565(DefaultTheme.Background)) {
		t.Fatalf("idle pixel=%v, want background", got)
	}

	c.PushTouch(gui.Touch(5, 5, true, 0))
	c.Process()
	if got := lcd.GetPixel(0, 5, 15); got != hal.RGBA(hal.RGB565(DefaultTheme.Accent)) {
		t.Fatalf("pressed pixel=%v, want accent", got)
	}
}

func TestLabel_PassesTouchThrough(t *testing.T) {
	c, _ := newTestGUI(t)
	clicks := 0
	btn := mustCreate(t, c, gui.None, &Button{OnClick: func(*gui.Context, gui.Handle) { clicks++ }}, 0, 0, 50, 20)
	lbl := &Label{Text: "caption"}
	lh := mustCreate(t, c, gui.None, lbl, 0, 0, 50, 20)

	tap(c, 5, 5)
	if clicks != 1 {
		t.Fatalf("clicks=%d, want 1", clicks)
	}
	if c.Focused() != btn {
		t.Fatalf("focused=%d, want the button", c.Focused())
	}

	c.Process()
	lbl.SetText(c, lh, "changed")
	if c.Dirty() == 0 {
		t.Fatal("SetText should schedule a repaint")
	}
}

func TestWindow_ModalAndDrag(t *testing.T) {
	c, _ := newTestGUI(t)
	clicks := 0
	mustCreate(t, c, gui.None, &Button{OnClick: func(*gui.Context, gui.Handle) { clicks++ }}, 0, 0, 160, 120)

	w := &Window{Title: "Dialog", Modal: true, Draggable: true}
	wh := mustCreate(t, c, gui.None, w, 40, 40, 80, 60)
	if c.Caps(wh)&gui.CapDialog == 0 {
		t.Fatal("modal window should be a dialog base")
	}

	tap(c, 5, 5)
	if clicks != 0 {
		t.Fatal("touch outside the modal window reached the background")
	}

	c.PushTouch(gui.Touch(45, 42, true, 0))
	c.PushTouch(gui.Touch(55, 47, true, 0))
	c.Process()
	if !w.Dragging() {
		t.Fatal("touch on the title bar should start a drag")
	}
	if got, want := c.Bounds(wh), (gfx.Rect{X: 50, Y: 45, W: 80, H: 60}); got != want {
		t.Fatalf("bounds=%+v, want %+v", got, want)
	}
	c.PushTouch(gui.Touch(55, 47, false, 0))
	c.Process()
	if w.Dragging() {
		t.Fatal("release should end the drag")
	}
}

func TestConsole_WrapsAndScrolls(t *testing.T) {
	c, lcd := newTestGUI(t)
	con := &Console{MaxLines: 4}
	h := mustCreate(t, c, gui.None, con, 0, 0, 160, 120)
	c.Process()

	for i := 0; i < 6; i++ {
		fmt.Fprintf(con, "line %d\n", i)
	}
	if got := con.Lines(); len(got) != 4 || got[0] != "line 2" || got[3] != "line 5" {
		t.Fatalf("lines=%q", got)
	}
	if c.Dirty() == 0 {
		t.Fatal("Write should schedule a repaint")
	}
	if n := c.Process(); n != 1 {
		t.Fatalf("painted=%d, want 1", n)
	}

	painted := false
	for y := 0; y < 120 && !painted; y++ {
		for x := 0; x < 160; x++ {
			if lcd.GetPixel(0, x, y) != hal.RGBA(hal.RGB565(DefaultTheme.Console)) {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Fatal("console drew no text")
	}

	if got := con.visible(2, 4); len(got) != 2 || got[0] != "line" || got[1] != " 5" {
		t.Fatalf("visible=%q", got)
	}

	c.Focus(h)
	c.PushKey(gui.Key(gui.KeyUp, 0, 0))
	c.Process()
	if got := con.visible(1, 80); len(got) != 1 || got[0] != "line 4" {
		t.Fatalf("scrolled back view=%q", got)
	}
}

func TestNewTheme(t *testing.T) {
	th, err := NewTheme("", "black", "#123456", "", "")
	if err != nil {
		t.Fatalf("NewTheme: %v", err)
	}
	if th.Background != DefaultTheme.Background || th.Foreground != gfx.MustColor("black") {
		t.Fatalf("theme=%+v", th)
	}
	if _, err := NewTheme("nope", "", "", "", ""); !errors.Is(err, gfx.ErrBadColor) {
		t.Fatalf("err=%v, want ErrBadColor", err)
	}
}
