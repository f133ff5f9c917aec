//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig sizes the simulated panel.
type HostConfig struct {
	Width  int
	Height int
	Layers int
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Layers <= 0 {
		c.Layers = 2
	}
	return c
}

type hostHAL struct {
	logger *hostLogger
	lcd    *MemLCD
	kbd    *hostKeyboard
	touch  *hostTouch
	t      *hostTime
}

// New returns a host HAL implementation with the default panel.
func New() HAL {
	return newHost(HostConfig{})
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		lcd:    NewMemLCD(cfg.Width, cfg.Height, cfg.Layers),
		kbd:    newHostKeyboard(),
		touch:  newHostTouch(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{lcd: h.lcd} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, touch: h.touch} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	lcd *MemLCD
}

func (d hostDisplay) LCD() LCD { return d.lcd }

type hostInput struct {
	kbd   *hostKeyboard
	touch *hostTouch
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Touch() Touch       { return in.touch }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostTouch struct {
	ch      chan TouchEvent
	last    TouchEvent
	hasLast bool
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 64)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

// report queues a sample if it differs from the previous one.
func (t *hostTouch) report(ev TouchEvent) {
	if t.hasLast && ev == t.last {
		return
	}
	if !ev.Pressed && t.hasLast && !t.last.Pressed {
		return
	}
	t.last = ev
	t.hasLast = true
	select {
	case t.ch <- ev:
	default:
	}
}

// VSync completes a pending layer switch on the host panel.
func VSync(h HAL) {
	if hh, ok := h.(*hostHAL); ok {
		hh.lcd.VSync()
	}
}
