package gfx

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// Align positions text horizontally inside a rectangle.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextWidth returns the advance width of s in f.
func TextWidth(f tinyfont.Fonter, s string) int {
	if f == nil {
		f = DefaultFont
	}
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

// LineHeight returns the vertical advance of f.
func LineHeight(f tinyfont.Fonter) int {
	if f == nil {
		f = DefaultFont
	}
	return int(f.GetYAdvance())
}

// Text draws s with its baseline at (x, y), in local coordinates.
func (c *Canvas) Text(x, y int, s string, f tinyfont.Fonter, col color.RGBA) {
	if f == nil {
		f = DefaultFont
	}
	tinyfont.WriteLine(c, f, int16(x), int16(y), s, col)
}

// TextIn draws one line of s vertically centred in r, aligned as requested.
func (c *Canvas) TextIn(r Rect, s string, f tinyfont.Fonter, col color.RGBA, align Align) {
	if f == nil {
		f = DefaultFont
	}
	w := TextWidth(f, s)
	lh := LineHeight(f)

	x := r.X
	switch align {
	case AlignCenter:
		x = r.X + (r.W-w)/2
	case AlignRight:
		x = r.Right() - w
	}
	// Baseline sits roughly three quarters down the line box.
	y := r.Y + (r.H-lh)/2 + lh*3/4
	c.Text(x, y, s, f, col)
}
