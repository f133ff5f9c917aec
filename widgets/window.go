package widgets

import (
	"ember/gfx"
	"ember/gui"
)

// Window is a container with an optional title bar. A modal window is a
// dialog base: while it is shown, touches only reach it and its children.
// A draggable window follows touches that start on its title bar.
type Window struct {
	Title     string
	Theme     *Theme
	Modal     bool
	Draggable bool

	dragging bool
	lastX    int
	lastY    int
}

func (w *Window) Caps() gui.Caps {
	if w.Modal {
		return gui.CapChildren | gui.CapDialog
	}
	return gui.CapChildren
}

// TitleHeight returns the height of the title bar, zero without a title.
func (w *Window) TitleHeight() int {
	if w.Title == "" {
		return 0
	}
	return gfx.LineHeight(nil) + 4
}

// Dragging reports whether a title-bar drag is in progress.
func (w *Window) Dragging() bool { return w.dragging }

func (w *Window) Handle(e *gui.Event) gui.Result {
	switch e.Cmd {
	case gui.CmdDraw:
		w.draw(e)
		return gui.Handled
	case gui.CmdTouchStart:
		w.dragging = w.Draggable && e.Touch.Y < w.TitleHeight()
		w.lastX, w.lastY = e.Touch.AbsX, e.Touch.AbsY
		return gui.Handled
	case gui.CmdTouchMove:
		if !w.dragging {
			return gui.Handled
		}
		dx, dy := e.Touch.AbsX-w.lastX, e.Touch.AbsY-w.lastY
		if dx == 0 && dy == 0 {
			return gui.Handled
		}
		w.lastX, w.lastY = e.Touch.AbsX, e.Touch.AbsY
		b := e.Context.Bounds(e.Widget)
		e.Context.SetPosition(e.Widget, int16(b.X+dx), int16(b.Y+dy))
		return gui.Handled
	case gui.CmdTouchEnd, gui.CmdActiveOut:
		w.dragging = false
		return gui.Handled
	}
	return gui.Unhandled
}

func (w *Window) draw(e *gui.Event) {
	t := themeOr(w.Theme)
	cv := e.Canvas
	r := cv.Bounds()
	cv.Fill(t.Background)

	if th := w.TitleHeight(); th > 0 {
		bar := gfx.Rect{W: r.W, H: th}
		cv.FillRect(bar, t.Accent)
		cv.TextIn(bar.Translate(3, 0), w.Title, nil, t.Foreground, gfx.AlignLeft)
	}
	if e.Context.Is3D(e.Widget) {
		bevel(cv, r, false)
	} else {
		cv.Frame(r, t.Accent)
	}
}
