package gui

import (
	"sync/atomic"

	"ember/hal"
)

// Layers tracks which frame buffer is shown and which one is drawn into.
//
// With two layers a frame is drawn into the hidden layer and then handed to
// the driver with ControlSetActiveLayer. The drawn layer stays pending until
// the driver calls back through ConfirmLayer, and no new frame is drawn in
// the meantime. With one layer drawing happens in place.
type Layers struct {
	lcd     hal.LCD
	width   int
	height  int
	n       int
	pending [2]atomic.Bool

	shown   int
	drawing int
	// stale is set after a switch: the drawing layer holds an older frame
	// than the shown one.
	stale bool
	swaps uint32
}

func newLayers(lcd hal.LCD, info hal.Info) *Layers {
	l := &Layers{lcd: lcd, width: info.Width, height: info.Height, n: info.Layers}
	if l.n < 1 {
		l.n = 1
	}
	if l.n > 2 {
		l.n = 2
	}
	if l.n == 2 {
		l.drawing = 1
	}
	return l
}

// Count returns the number of layers in use (1 or 2).
func (l *Layers) Count() int { return l.n }

// Active returns the layer currently displayed, or about to be.
func (l *Layers) Active() int { return l.shown }

// Drawing returns the layer the next frame is drawn into.
func (l *Layers) Drawing() int { return l.drawing }

// Swaps returns the number of layer switches requested so far.
func (l *Layers) Swaps() uint32 { return l.swaps }

// Pending reports whether layer i waits for driver confirmation.
func (l *Layers) Pending(i int) bool {
	if i < 0 || i >= l.n {
		return false
	}
	return l.pending[i].Load()
}

// Busy reports whether any layer waits for confirmation.
func (l *Layers) Busy() bool {
	return l.pending[0].Load() || l.pending[1].Load()
}

// Confirm clears the pending state of layer i. Safe from interrupt context.
func (l *Layers) Confirm(i int) bool {
	if i < 0 || i >= l.n {
		return false
	}
	return l.pending[i].Swap(false)
}

// prepare brings the drawing layer up to date with the shown one so that
// regions left untouched by the next pass stay correct.
func (l *Layers) prepare() {
	if l.n < 2 || !l.stale {
		return
	}
	l.lcd.CopyLayer(l.drawing, l.shown, 0, 0, l.width, l.height)
	l.stale = false
}

// RequestSwap marks the drawing layer pending and asks the driver to show
// it. It fails with one layer, while a previous switch is unconfirmed, or
// when the driver refuses.
func (l *Layers) RequestSwap() bool {
	if l.n < 2 || l.Busy() {
		return false
	}
	drawn := l.drawing
	l.pending[drawn].Store(true)
	if !l.lcd.Control(hal.ControlSetActiveLayer, drawn, nil) {
		l.pending[drawn].Store(false)
		return false
	}
	l.shown, l.drawing = drawn, l.shown
	l.stale = true
	l.swaps++
	return true
}

// ConfirmLayer is the driver's completion callback for a layer switch. It
// may run in interrupt context.
func (c *Context) ConfirmLayer(layer int) {
	if c.layers == nil {
		return
	}
	if c.layers.Confirm(layer) {
		c.signal.Post()
	}
}
