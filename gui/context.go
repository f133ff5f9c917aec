package gui

import (
	"fmt"

	"ember/gfx"
	"ember/hal"
	"ember/kernel"
	"ember/list"
)

const (
	DefaultMaxWidgets = 64
	DefaultMaxTimers  = 16
)

// Context is one GUI instance: the widget arena, the desktop list, the
// focus/active references, the display clip, the layer coordinator and the
// input queues.
type Context struct {
	lcd    hal.LCD
	info   hal.Info
	screen gfx.Rect

	logger  hal.Logger
	verbose bool

	nodes   nodes
	free    []Handle
	desktop list.Root

	focused Handle
	active  Handle

	// clip is the union of everything invalidated since the last pass.
	clip gfx.Rect

	layers *Layers
	signal *kernel.Signal
	clock  *kernel.Clock

	touchQ    *kernel.Ring[TouchSample]
	keyQ      *kernel.Ring[KeySample]
	lastTouch TouchSample

	timers     timers
	timerFree  []Timer
	timerList  list.Root
	inTimers   bool
	timerReaps int

	removals int
}

type options struct {
	logger     hal.Logger
	verbose    bool
	maxWidgets int
	maxTimers  int
	touchQueue int
	keyQueue   int
	clock      *kernel.Clock
	signal     *kernel.Signal
}

// Option configures New.
type Option func(*options)

// WithLogger routes diagnostics to l. Verbose adds per-frame detail.
func WithLogger(l hal.Logger, verbose bool) Option {
	return func(o *options) {
		o.logger = l
		o.verbose = verbose
	}
}

// WithMaxWidgets sizes the widget arena.
func WithMaxWidgets(n int) Option {
	return func(o *options) { o.maxWidgets = n }
}

// WithMaxTimers sizes the software timer arena.
func WithMaxTimers(n int) Option {
	return func(o *options) { o.maxTimers = n }
}

// WithQueueSizes sets the touch and key queue capacities. Sizes are rounded
// up to a power of two.
func WithQueueSizes(touch, key int) Option {
	return func(o *options) {
		o.touchQueue = touch
		o.keyQueue = key
	}
}

// WithClock makes timers run on an externally advanced clock.
func WithClock(c *kernel.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSignal shares a wake-up signal with the caller's loop.
func WithSignal(s *kernel.Signal) Option {
	return func(o *options) { o.signal = s }
}

// New initialises the display driver and returns an empty GUI.
func New(lcd hal.LCD, opts ...Option) (*Context, error) {
	if lcd == nil {
		return nil, ErrNoDriver
	}
	o := options{
		maxWidgets: DefaultMaxWidgets,
		maxTimers:  DefaultMaxTimers,
		touchQueue: kernel.DefaultRingSlots,
		keyQueue:   kernel.DefaultRingSlots,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxWidgets <= 0 {
		o.maxWidgets = DefaultMaxWidgets
	}
	if o.maxTimers <= 0 {
		o.maxTimers = DefaultMaxTimers
	}
	if o.clock == nil {
		o.clock = &kernel.Clock{}
	}
	if o.signal == nil {
		o.signal = &kernel.Signal{}
	}

	c := &Context{
		lcd:     lcd,
		logger:  o.logger,
		verbose: o.verbose,
		nodes:   make(nodes, o.maxWidgets),
		free:    make([]Handle, 0, o.maxWidgets),
		desktop: list.NewRoot(),
		focused: None,
		active:  None,
		signal:  o.signal,
		clock:   o.clock,
		touchQ:  kernel.NewRing[TouchSample](o.touchQueue),
		keyQ:    kernel.NewRing[KeySample](o.keyQueue),

		timers:    make(timers, o.maxTimers),
		timerFree: make([]Timer, 0, o.maxTimers),
		timerList: list.NewRoot(),
	}
	for i := o.maxWidgets - 1; i >= 0; i-- {
		c.free = append(c.free, Handle(i))
	}
	for i := o.maxTimers - 1; i >= 0; i-- {
		c.timerFree = append(c.timerFree, Timer(i))
	}

	var info hal.Info
	if !lcd.Control(hal.ControlInit, &hal.InitParam{LayerConfirmed: c.ConfirmLayer}, &info) {
		return nil, fmt.Errorf("init display: %w", ErrNoDriver)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("display reports %dx%d: %w", info.Width, info.Height, ErrNoDriver)
	}
	c.info = info
	c.screen = gfx.Rect{W: info.Width, H: info.Height}
	c.layers = newLayers(lcd, info)
	// Nothing has been drawn yet.
	c.clip = c.screen

	c.logf("gui: %dx%d, %d layer(s), %d widgets", info.Width, info.Height, c.layers.Count(), o.maxWidgets)
	return c, nil
}

func (c *Context) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.WriteLineString(fmt.Sprintf(format, args...))
}

func (c *Context) debugf(format string, args ...any) {
	if !c.verbose {
		return
	}
	c.logf(format, args...)
}

// Display returns the driver's geometry.
func (c *Context) Display() hal.Info { return c.info }

// Screen returns the full display rectangle.
func (c *Context) Screen() gfx.Rect { return c.screen }

// Layers returns the layer coordinator.
func (c *Context) Layers() *Layers { return c.layers }

// Signal is posted whenever the loop has work: queued input or a confirmed
// layer switch.
func (c *Context) Signal() *kernel.Signal { return c.signal }

// Clock drives software timers.
func (c *Context) Clock() *kernel.Clock { return c.clock }

// Clip returns the pending invalid region.
func (c *Context) Clip() gfx.Rect { return c.clip }

func (c *Context) node(h Handle) *node {
	if h < 0 || int(h) >= len(c.nodes) {
		return nil
	}
	n := &c.nodes[h]
	if !n.used {
		return nil
	}
	return n
}

// Alive reports whether h addresses a widget that has not been collected.
func (c *Context) Alive(h Handle) bool { return c.node(h) != nil }

// siblings returns the list h is linked into.
func (c *Context) siblings(h Handle) *list.Root {
	n := c.node(h)
	if n == nil {
		return nil
	}
	if n.parent == None {
		return &c.desktop
	}
	p := c.node(n.parent)
	if p == nil || p.children == nil {
		return nil
	}
	return &p.children.root
}

// childList returns the list that holds the children of h, or the desktop
// for None.
func (c *Context) childList(h Handle) *list.Root {
	if h == None {
		return &c.desktop
	}
	n := c.node(h)
	if n == nil || n.children == nil {
		return nil
	}
	return &n.children.root
}

// Len returns the number of live widgets.
func (c *Context) Len() int { return len(c.nodes) - len(c.free) }

// Cap returns the arena size.
func (c *Context) Cap() int { return len(c.nodes) }
