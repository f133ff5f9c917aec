package widgets

import (
	"image/color"

	"ember/gfx"
	"ember/gui"
)

// Label shows one line of text. Touches pass through it to whatever lies
// underneath.
type Label struct {
	Text  string
	Align gfx.Align
	Theme *Theme
	// Color overrides the theme foreground when set.
	Color color.RGBA
	// Opaque fills the label background before drawing the text.
	Opaque bool
}

func (l *Label) Caps() gui.Caps { return 0 }

// SetText replaces the text and schedules a repaint.
func (l *Label) SetText(c *gui.Context, h gui.Handle, text string) {
	if l.Text == text {
		return
	}
	l.Text = text
	c.Invalidate(h)
}

func (l *Label) Handle(e *gui.Event) gui.Result {
	switch e.Cmd {
	case gui.CmdDraw:
		t := themeOr(l.Theme)
		if l.Opaque {
			e.Canvas.Fill(t.Background)
		}
		fg := t.Foreground
		if l.Color != (color.RGBA{}) {
			fg = l.Color
		}
		e.Canvas.TextIn(e.Canvas.Bounds(), l.Text, nil, fg, l.Align)
		return gui.Handled
	case gui.CmdTouchStart:
		return gui.Continue
	}
	return gui.Unhandled
}
