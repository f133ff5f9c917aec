package widgets

import (
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"

	"ember/gfx"
	"ember/gui"
)

const DefaultConsoleLines = 64

// Console is a scrolling text view rendered through tinyterm. Text written
// to it is kept in a bounded line buffer and repainted on the next redraw
// pass; ANSI colour sequences are honoured. Up and Down scroll back through
// history while the console has focus.
type Console struct {
	Theme    *Theme
	MaxLines int
	Font     tinyfont.Fonter

	ctx     *gui.Context
	self    gui.Handle
	lines   []string
	partial strings.Builder
	back    int
}

func (c *Console) Caps() gui.Caps { return 0 }

// Write appends p. Lines are split on '\n'. It must be called from the loop
// that drives the console's context.
func (c *Console) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			c.pushLine(c.partial.String())
			c.partial.Reset()
			continue
		}
		if b == '\r' {
			continue
		}
		c.partial.WriteByte(b)
	}
	c.invalidate()
	return len(p), nil
}

// WriteString is Write for strings.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Clear drops all text.
func (c *Console) Clear() {
	c.lines = c.lines[:0]
	c.partial.Reset()
	c.back = 0
	c.invalidate()
}

// Lines returns the buffered lines, including an unterminated last line.
func (c *Console) Lines() []string {
	out := append([]string(nil), c.lines...)
	if c.partial.Len() > 0 {
		out = append(out, c.partial.String())
	}
	return out
}

func (c *Console) pushLine(s string) {
	limit := c.MaxLines
	if limit <= 0 {
		limit = DefaultConsoleLines
	}
	if len(c.lines) >= limit {
		copy(c.lines, c.lines[1:])
		c.lines = c.lines[:len(c.lines)-1]
	}
	c.lines = append(c.lines, s)
}

func (c *Console) invalidate() {
	if c.ctx != nil {
		c.ctx.Invalidate(c.self)
	}
}

func (c *Console) font() tinyfont.Fonter {
	if c.Font != nil {
		return c.Font
	}
	return gfx.DefaultFont
}

func (c *Console) Handle(e *gui.Event) gui.Result {
	switch e.Cmd {
	case gui.CmdInit:
		c.ctx, c.self = e.Context, e.Widget
		return gui.Handled
	case gui.CmdRemove:
		c.ctx, c.self = nil, gui.None
		return gui.Handled
	case gui.CmdDraw:
		c.draw(e.Canvas)
		return gui.Handled
	case gui.CmdKeyPress:
		switch e.Key.Rune() {
		case gui.KeyUp:
			if c.back < len(c.lines) {
				c.back++
				c.invalidate()
			}
			return gui.Handled
		case gui.KeyDown:
			if c.back > 0 {
				c.back--
				c.invalidate()
			}
			return gui.Handled
		}
		return gui.Continue
	}
	return gui.Unhandled
}

// visible returns the rows that fit a view of rows x cols cells, wrapping
// long lines.
func (c *Console) visible(rows, cols int) []string {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	var wrapped []string
	for _, line := range c.Lines() {
		for utf8.RuneCountInString(line) > cols {
			cut, n := 0, 0
			for i := range line {
				if n == cols {
					cut = i
					break
				}
				n++
			}
			wrapped = append(wrapped, line[:cut])
			line = line[cut:]
		}
		wrapped = append(wrapped, line)
	}
	end := len(wrapped) - c.back
	if end < 0 {
		end = 0
	}
	start := end - rows
	if start < 0 {
		start = 0
	}
	return wrapped[start:end]
}

func (c *Console) draw(cv *gfx.Canvas) {
	t := themeOr(c.Theme)
	cv.Fill(t.Console)

	f := c.font()
	lh := gfx.LineHeight(f)
	cw := gfx.TextWidth(f, "0")
	r := cv.Bounds()
	if lh <= 0 || cw <= 0 {
		return
	}

	term := tinyterm.NewTerminal(cv)
	term.Configure(&tinyterm.Config{
		Font:              f,
		FontHeight:        int16(lh),
		FontOffset:        int16(lh * 3 / 4),
		UseSoftwareScroll: true,
	})
	rows := c.visible(r.H/lh, r.W/cw)
	_, _ = term.Write([]byte(strings.Join(rows, "\n")))
}
