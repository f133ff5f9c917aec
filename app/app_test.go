package app

import (
	"errors"
	"image/color"
	"strings"
	"sync"
	"testing"

	"ember/config"
	"ember/gui"
	"ember/hal"
	"ember/scene"
	"ember/script"
	"ember/widgets"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) contains(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

type testKeyboard chan hal.KeyEvent

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k }

type testTouch chan hal.TouchEvent

func (t testTouch) Events() <-chan hal.TouchEvent { return t }

type testTime chan uint64

func (t testTime) Ticks() <-chan uint64 { return t }

type testHAL struct {
	log   *testLogger
	lcd   *hal.MemLCD
	keys  testKeyboard
	touch testTouch
	ticks testTime
}

func newTestHAL(layers int) *testHAL {
	return &testHAL{
		log:   &testLogger{},
		lcd:   hal.NewMemLCD(320, 240, layers),
		keys:  make(testKeyboard, 16),
		touch: make(testTouch, 16),
		ticks: make(testTime, 16),
	}
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h }
func (h *testHAL) LCD() hal.LCD         { return h.lcd }
func (h *testHAL) Input() hal.Input     { return h }
func (h *testHAL) Keyboard() hal.Keyboard {
	return h.keys
}
func (h *testHAL) Touch() hal.Touch { return h.touch }
func (h *testHAL) Time() hal.Time   { return h.ticks }

func (h *testHAL) tap(x, y int16) {
	h.touch <- hal.TouchEvent{X: x, Y: y, Pressed: true}
	h.touch <- hal.TouchEvent{X: x, Y: y}
}

func (h *testHAL) press(code hal.KeyCode, shift bool) {
	h.keys <- hal.KeyEvent{Code: code, Press: true, Shift: shift}
	h.keys <- hal.KeyEvent{Code: code, Shift: shift}
}

func newTestApp(t *testing.T, h *testHAL, opts Options) *App {
	t.Helper()
	if opts.Config.Display.Width == 0 {
		opts.Config = config.Default()
	}
	a, err := New(h, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func mustStep(t *testing.T, a *App) {
	t.Helper()
	if err := a.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func named(t *testing.T, a *App, name string) gui.Handle {
	t.Helper()
	h, ok := a.Scene().Named[name]
	if !ok {
		t.Fatalf("scene has no widget %q", name)
	}
	return h
}

func consoleLines(t *testing.T, a *App) []string {
	t.Helper()
	con, _, ok := a.Scene().Console("log")
	if !ok {
		t.Fatal("scene has no console")
	}
	return con.Lines()
}

func TestNew_DemoScene(t *testing.T) {
	h := newTestHAL(2)
	a := newTestApp(t, h, Options{})
	c := a.Context()

	for _, name := range []string{"desktop", "main", "uptime", "hello", "clear", "about-open", "log", "about", "version", "about-close"} {
		named(t, a, name)
	}
	if got, want := c.Focused(), named(t, a, "hello"); got != want {
		t.Fatalf("Focused() = %d, want hello (%d)", got, want)
	}
	if !c.IsHidden(named(t, a, "about")) {
		t.Fatal("about dialog should start hidden")
	}
	if got := consoleLines(t, a); len(got) != 1 || !strings.HasPrefix(got[0], "ember ") {
		t.Fatalf("console = %q, want the banner", got)
	}
	if !h.log.contains("320x240, 2 layer(s)") {
		t.Fatalf("startup line missing from log: %q", h.log.lines)
	}

	mustStep(t, a)
	if c.Dirty() != 0 {
		t.Fatalf("Dirty() = %d after the first step, want 0", c.Dirty())
	}
	if !c.Layers().Busy() {
		t.Fatal("first frame should be waiting for the layer switch")
	}
}

func TestStep_TapRunsAction(t *testing.T) {
	h := newTestHAL(1)
	a := newTestApp(t, h, Options{})
	mustStep(t, a)

	h.tap(40, 58)
	mustStep(t, a)

	got := consoleLines(t, a)
	if len(got) != 2 || !strings.HasPrefix(got[1], "hello from widget") {
		t.Fatalf("console = %q, want a hello line", got)
	}
	if a.Context().Active() != gui.None {
		t.Fatal("active widget left after release")
	}
}

func TestStep_KeyboardFocusAndClick(t *testing.T) {
	h := newTestHAL(1)
	a := newTestApp(t, h, Options{})
	c := a.Context()

	h.press(hal.KeyTab, false)
	mustStep(t, a)
	if got, want := c.Focused(), named(t, a, "clear"); got != want {
		t.Fatalf("Focused() = %d after Tab, want clear (%d)", got, want)
	}

	h.keys <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	mustStep(t, a)
	if got := consoleLines(t, a); len(got) != 0 {
		t.Fatalf("console = %q after Clear, want empty", got)
	}

	h.press(hal.KeyTab, true)
	mustStep(t, a)
	if got, want := c.Focused(), named(t, a, "hello"); got != want {
		t.Fatalf("Focused() = %d after Shift+Tab, want hello (%d)", got, want)
	}
}

func TestStep_ModalDialog(t *testing.T) {
	cmds, err := script.Parse(strings.NewReader("tap 170 58\ntap 40 58\ntap 150 120\n"))
	if err != nil {
		t.Fatalf("script.Parse: %v", err)
	}
	h := newTestHAL(1)
	a := newTestApp(t, h, Options{Script: cmds, StopAfterScript: true})
	c := a.Context()
	about := named(t, a, "about")

	mustStep(t, a)
	if c.IsHidden(about) {
		t.Fatal("About button did not open the dialog")
	}
	if got, want := c.Focused(), named(t, a, "about-close"); got != want {
		t.Fatalf("Focused() = %d, want about-close (%d)", got, want)
	}

	mustStep(t, a)
	if got := consoleLines(t, a); len(got) != 1 {
		t.Fatalf("console = %q, touches outside the modal dialog must be swallowed", got)
	}

	if err := a.Step(); !errors.Is(err, ErrStopped) {
		t.Fatalf("Step() = %v, want ErrStopped at the end of the script", err)
	}
	if !c.IsHidden(about) {
		t.Fatal("Close did not hide the dialog")
	}
	if got, want := c.Focused(), named(t, a, "hello"); got != want {
		t.Fatalf("Focused() = %d, want hello (%d)", got, want)
	}
	if a.Dropped() != 0 {
		t.Fatalf("Dropped() = %d, want 0", a.Dropped())
	}
}

func TestStep_TicksDriveTimers(t *testing.T) {
	h := newTestHAL(1)
	a := newTestApp(t, h, Options{})

	h.ticks <- 900
	h.ticks <- 2500
	mustStep(t, a)

	if got := a.Context().Clock().Millis(); got != 2500 {
		t.Fatalf("clock = %d, want 2500", got)
	}
	l, ok := a.Scene().Widgets[named(t, a, "uptime")].(*widgets.Label)
	if !ok {
		t.Fatal("uptime is not a label")
	}
	if l.Text != "uptime 2s" {
		t.Fatalf("uptime text = %q, want %q", l.Text, "uptime 2s")
	}
}

func TestStep_PanicPaintsScreen(t *testing.T) {
	h := newTestHAL(1)
	a := newTestApp(t, h, Options{})
	c := a.Context()
	_, err := c.Create(gui.None, gui.Spec{
		Width:  gui.Px(10),
		Height: gui.Px(10),
		ZIndex: 100,
		Behavior: gui.BehaviorFunc(func(e *gui.Event) gui.Result {
			if e.Cmd == gui.CmdDraw {
				panic("boom")
			}
			return gui.Unhandled
		}),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = a.Step()
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "boom" {
		t.Fatalf("Step() = %v, want PanicError(boom)", err)
	}
	if again := a.Step(); again != err {
		t.Fatalf("second Step() = %v, want the same error", again)
	}
	if !h.log.contains("Ember Panic:") || !h.log.contains("panic: boom") {
		t.Fatal("panic not logged")
	}
	white := hal.RGBA(hal.RGB565(color.RGBA{R: 255, G: 255, B: 255, A: 255}))
	if got := h.lcd.GetPixel(0, 319, 0); got != white {
		t.Fatalf("corner pixel = %v, want the white panic background", got)
	}
}

func TestNew_Errors(t *testing.T) {
	badLayers := config.Default()
	badLayers.Display.Layers = 3

	tests := map[string]struct {
		opts Options
		want error
	}{
		"config": {
			opts: Options{Config: badLayers},
			want: config.ErrInvalid,
		},
		"kind": {
			opts: Options{Config: config.Default(), Scene: []byte("widgets:\n  - kind: slider\n")},
			want: scene.ErrUnknownKind,
		},
		"action": {
			opts: Options{Config: config.Default(), Scene: []byte("widgets:\n  - kind: button\n    on_click: launch\n")},
			want: scene.ErrUnknownAction,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(newTestHAL(1), tc.opts)
			if !errors.Is(err, tc.want) {
				t.Fatalf("New() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestStep_StopsWithoutScript(t *testing.T) {
	a := newTestApp(t, newTestHAL(1), Options{StopAfterScript: true})
	if err := a.Step(); !errors.Is(err, ErrStopped) {
		t.Fatalf("Step() = %v, want ErrStopped", err)
	}
}

func TestKeyRune(t *testing.T) {
	tests := map[string]struct {
		ev   hal.KeyEvent
		want rune
		ok   bool
	}{
		"tab":     {hal.KeyEvent{Code: hal.KeyTab, Press: true}, gui.KeyTab, true},
		"enter":   {hal.KeyEvent{Code: hal.KeyEnter, Press: true}, gui.KeyReturn, true},
		"rune":    {hal.KeyEvent{Rune: 'x', Press: true}, 'x', true},
		"release": {hal.KeyEvent{Code: hal.KeyTab}, 0, false},
		"f1":      {hal.KeyEvent{Code: hal.KeyF1, Press: true}, 0, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := keyRune(tc.ev)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("keyRune() = %q, %v, want %q, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestTakeRunes(t *testing.T) {
	tests := map[string]struct {
		in         string
		n          int
		head, tail string
	}{
		"short": {"abc", 5, "abc", ""},
		"split": {"abcdef", 4, "abcd", "ef"},
		"utf8":  {"äöüß", 2, "äö", "üß"},
		"zero":  {"abc", 0, "", "abc"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			head, tail := takeRunes(tc.in, tc.n)
			if head != tc.head || tail != tc.tail {
				t.Fatalf("takeRunes(%q, %d) = %q, %q, want %q, %q", tc.in, tc.n, head, tail, tc.head, tc.tail)
			}
		})
	}
}
