package widgets

import (
	"ember/gfx"
	"ember/gui"
)

// Button fires OnClick when a touch that started on it is released on it,
// or when Return or Space is pressed while it has focus.
type Button struct {
	Text    string
	Theme   *Theme
	OnClick func(c *gui.Context, h gui.Handle)

	pressed bool
}

func (b *Button) Caps() gui.Caps { return 0 }

// Pressed reports whether a touch is currently held on the button.
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) Handle(e *gui.Event) gui.Result {
	switch e.Cmd {
	case gui.CmdDraw:
		b.draw(e)
		return gui.Handled
	case gui.CmdTouchStart:
		b.setPressed(e, true)
		return gui.Handled
	case gui.CmdTouchMove:
		r := e.Context.Rect(e.Widget)
		inside := e.Touch.X >= 0 && e.Touch.Y >= 0 && e.Touch.X < r.W && e.Touch.Y < r.H
		b.setPressed(e, inside)
		return gui.Handled
	case gui.CmdTouchEnd:
		if b.pressed {
			b.setPressed(e, false)
			b.click(e)
		}
		return gui.Handled
	case gui.CmdActiveOut:
		b.setPressed(e, false)
		return gui.Handled
	case gui.CmdKeyPress:
		switch e.Key.Rune() {
		case gui.KeyReturn, ' ':
			b.click(e)
			return gui.Handled
		}
		return gui.Continue
	}
	return gui.Unhandled
}

func (b *Button) setPressed(e *gui.Event, on bool) {
	if b.pressed == on {
		return
	}
	b.pressed = on
	e.Context.Invalidate(e.Widget)
}

func (b *Button) click(e *gui.Event) {
	if b.OnClick != nil {
		b.OnClick(e.Context, e.Widget)
	}
}

func (b *Button) draw(e *gui.Event) {
	t := themeOr(b.Theme)
	cv := e.Canvas
	r := cv.Bounds()
	c, h := e.Context, e.Widget

	bg := t.Background
	if b.pressed {
		bg = t.Accent
	}
	cv.Fill(bg)

	fg := t.Foreground
	if c.IsDisabled(h) {
		fg = t.Disabled
	}
	cv.TextIn(r, b.Text, nil, fg, gfx.AlignCenter)

	switch {
	case c.IsFocused(h):
		cv.Frame(r, t.Focus)
	case c.Is3D(h):
		bevel(cv, r, b.pressed)
	default:
		cv.Frame(r, t.Accent)
	}
}
