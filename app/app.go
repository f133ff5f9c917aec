package app

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"ember/config"
	"ember/gui"
	"ember/hal"
	"ember/internal/buildinfo"
	"ember/scene"
	"ember/script"
	"ember/widgets"
)

//go:embed scenes/demo.yaml
var demoScene []byte

// ErrStopped is returned by Step once a script finished and Options asked
// to stop afterwards.
var ErrStopped = errors.New("app stopped")

// Options selects what the application shows and replays.
type Options struct {
	Config config.Config
	// Scene overrides Config.Scene with YAML already in memory.
	Scene []byte
	// Script is replayed one command per step.
	Script []script.Command
	// StopAfterScript makes Step return ErrStopped when the script is done.
	StopAfterScript bool
}

// App wires a HAL to a GUI context.
type App struct {
	h      hal.HAL
	log    hal.Logger
	gui    *gui.Context
	built  *scene.Built
	player *script.Player
	stop   bool
	steps  uint64

	console *widgets.Console
	uptime  gui.Timer
	dropped int
	failed  error
}

// New builds the GUI described by opts on h.
func New(h hal.HAL, opts Options) (*App, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	disp := h.Display()
	if disp == nil || disp.LCD() == nil {
		return nil, gui.ErrNoDriver
	}

	c, err := gui.New(disp.LCD(),
		gui.WithLogger(h.Logger(), cfg.Verbose),
		gui.WithMaxWidgets(cfg.Loop.MaxWidgets),
		gui.WithMaxTimers(cfg.Loop.MaxTimers),
		gui.WithQueueSizes(cfg.Loop.TouchQueue, cfg.Loop.KeyQueue),
	)
	if err != nil {
		return nil, fmt.Errorf("gui: %w", err)
	}

	a := &App{
		h:      h,
		log:    h.Logger(),
		gui:    c,
		uptime: gui.NoTimer,
		stop:   opts.StopAfterScript,
	}
	if len(opts.Script) > 0 {
		a.player = script.NewPlayer(opts.Script)
	}

	theme, err := widgets.NewTheme(cfg.Theme.Background, cfg.Theme.Foreground,
		cfg.Theme.Accent, cfg.Theme.Focus, cfg.Theme.Console)
	if err != nil {
		return nil, err
	}

	src, err := sceneSource(opts)
	if err != nil {
		return nil, err
	}
	s, err := scene.Parse(src)
	if err != nil {
		return nil, err
	}
	built, err := scene.NewBuilder().Build(c, gui.None, s, &scene.Env{
		Theme:   theme,
		Actions: a.actions(),
	})
	if err != nil {
		return nil, err
	}
	a.built = built
	a.bind()

	a.logf("ember %s: %dx%d, %d layer(s), %d widgets",
		buildinfo.Short(), c.Display().Width, c.Display().Height, c.Layers().Count(), c.Len())
	return a, nil
}

func sceneSource(opts Options) ([]byte, error) {
	switch {
	case len(opts.Scene) > 0:
		return opts.Scene, nil
	case opts.Config.Scene != "":
		b, err := os.ReadFile(opts.Config.Scene)
		if err != nil {
			return nil, fmt.Errorf("read scene: %w", err)
		}
		return b, nil
	default:
		return demoScene, nil
	}
}

// bind hooks up the optional well-known widgets of a scene.
func (a *App) bind() {
	if con, _, ok := a.built.Console("log"); ok {
		a.console = con
		a.println("ember " + buildinfo.Short())
	}
	if h, ok := a.built.Named["version"]; ok {
		if l, ok := a.built.Widgets[h].(*widgets.Label); ok {
			l.SetText(a.gui, h, buildinfo.String())
		}
	}
	if h, ok := a.built.Named["uptime"]; ok {
		if l, ok := a.built.Widgets[h].(*widgets.Label); ok {
			a.uptime = a.gui.NewTimer(1000, true, func(c *gui.Context, _ gui.Timer) {
				l.SetText(c, h, fmt.Sprintf("uptime %ds", c.Clock().Millis()/1000))
			})
			a.gui.StartTimer(a.uptime)
		}
	}
}

// actions are the on_click names understood by scenes.
func (a *App) actions() map[string]scene.Action {
	return map[string]scene.Action{
		"hello": func(c *gui.Context, h gui.Handle) {
			a.println(fmt.Sprintf("hello from widget %d at %dms", h, c.Clock().Millis()))
		},
		"clear": func(*gui.Context, gui.Handle) {
			if a.console != nil {
				a.console.Clear()
			}
		},
		"about": func(c *gui.Context, _ gui.Handle) {
			h, ok := a.built.Named["about"]
			if !ok {
				return
			}
			c.Show(h)
			c.Raise(h)
			if btn, ok := a.built.Named["about-close"]; ok {
				c.Focus(btn)
			}
		},
		"close": func(c *gui.Context, h gui.Handle) {
			for p := c.Parent(h); p != gui.None; p = c.Parent(p) {
				if c.Caps(p)&gui.CapDialog != 0 || c.Parent(p) == gui.None {
					c.Hide(p)
					break
				}
			}
			if btn, ok := a.built.Named["hello"]; ok {
				c.Focus(btn)
			}
		},
	}
}

// Context returns the GUI context.
func (a *App) Context() *gui.Context { return a.gui }

// Scene returns the instantiated scene.
func (a *App) Scene() *scene.Built { return a.built }

// Steps returns how many times Step ran.
func (a *App) Steps() uint64 { return a.steps }

// Dropped returns how many input samples were lost to full queues.
func (a *App) Dropped() int {
	n := a.dropped
	if a.player != nil {
		n += a.player.Dropped()
	}
	return n
}

// Step feeds the pending ticks and input to the GUI and runs one loop
// iteration. A panic inside a widget stops the application and paints the
// panic screen.
func (a *App) Step() (err error) {
	if a.failed != nil {
		return a.failed
	}
	defer a.guard(&err)

	a.steps++
	a.pumpTicks()
	a.pumpKeys()
	a.pumpTouches()
	if a.player != nil {
		a.player.Step(a.gui, uint32(a.gui.Clock().Millis()))
	}
	a.gui.Process()

	if a.stop && (a.player == nil || a.player.Done()) {
		return ErrStopped
	}
	return nil
}

func (a *App) pumpTicks() {
	t := a.h.Time()
	if t == nil || t.Ticks() == nil {
		return
	}
	ch := t.Ticks()
	for {
		select {
		case seq := <-ch:
			a.gui.Clock().AdvanceTo(seq)
		default:
			return
		}
	}
}

func (a *App) pumpKeys() {
	in := a.h.Input()
	if in == nil || in.Keyboard() == nil {
		return
	}
	ch := in.Keyboard().Events()
	now := uint32(a.gui.Clock().Millis())
	for {
		select {
		case ev := <-ch:
			r, ok := keyRune(ev)
			if !ok {
				continue
			}
			var flags gui.KeyFlags
			if ev.Shift {
				flags |= gui.KeyShift
			}
			if !a.gui.PushKey(gui.Key(r, flags, now)) {
				a.dropped++
			}
		default:
			return
		}
	}
}

func (a *App) pumpTouches() {
	in := a.h.Input()
	if in == nil || in.Touch() == nil {
		return
	}
	ch := in.Touch().Events()
	now := uint32(a.gui.Clock().Millis())
	for {
		select {
		case ev := <-ch:
			if !a.gui.PushTouch(gui.Touch(ev.X, ev.Y, ev.Pressed, now)) {
				a.dropped++
			}
		default:
			return
		}
	}
}

var keyCodes = map[hal.KeyCode]rune{
	hal.KeyUp:        gui.KeyUp,
	hal.KeyDown:      gui.KeyDown,
	hal.KeyLeft:      gui.KeyLeft,
	hal.KeyRight:     gui.KeyRight,
	hal.KeyEnter:     gui.KeyReturn,
	hal.KeyEscape:    gui.KeyEscape,
	hal.KeyBackspace: gui.KeyBackspace,
	hal.KeyTab:       gui.KeyTab,
}

// keyRune maps a key press to the rune the GUI dispatches. Releases and
// keys without a GUI meaning are dropped.
func keyRune(ev hal.KeyEvent) (rune, bool) {
	if !ev.Press {
		return 0, false
	}
	if r, ok := keyCodes[ev.Code]; ok {
		return r, true
	}
	if ev.Rune != 0 {
		return ev.Rune, true
	}
	return 0, false
}

func (a *App) println(s string) {
	if a.console != nil {
		_, _ = a.console.WriteString(s + "\n")
	}
}

func (a *App) logf(format string, args ...any) {
	if a.log != nil {
		a.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// Runner adapts New to the host runners.
func Runner(opts Options) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		a, err := New(h, opts)
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}
}

// Run boots the application on a board HAL and never returns.
func Run(h hal.HAL, opts Options) {
	bootDiag(h, "building scene")
	a, err := New(h, opts)
	if err != nil {
		bootDiag(h, "failed: "+err.Error())
		if l := h.Logger(); l != nil {
			l.WriteLineString("ember: " + err.Error())
		}
		select {}
	}
	bootDiag(h, "running")

	hz := opts.Config.Loop.Hz
	if hz <= 0 {
		hz = config.Default().Loop.Hz
	}
	frame := time.Second / time.Duration(hz)
	for {
		if err := a.Step(); err != nil {
			bootDiag(h, "stopped: "+err.Error())
			select {}
		}
		hal.VSync(h)
		time.Sleep(frame)
	}
}
