package gfx

import (
	"image/color"

	"ember/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is used when a widget does not pick its own font.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// Canvas draws into one layer of an LCD, in coordinates local to a widget.
//
// Every operation is clipped to the intersection of the widget bounds and
// the redraw clip. Canvas implements drivers.Displayer so tinyfont and
// tinyterm can render into it directly.
type Canvas struct {
	lcd    hal.LCD
	layer  int
	bounds Rect
	clip   Rect
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas returns a canvas for a widget occupying bounds (absolute), with
// drawing limited to clip (absolute).
func NewCanvas(lcd hal.LCD, layer int, bounds, clip Rect) *Canvas {
	return &Canvas{lcd: lcd, layer: layer, bounds: bounds, clip: clip.Intersect(bounds)}
}

// Bounds returns the widget rectangle in local coordinates.
func (c *Canvas) Bounds() Rect { return Rect{W: c.bounds.W, H: c.bounds.H} }

// Absolute returns the widget rectangle in screen coordinates.
func (c *Canvas) Absolute() Rect { return c.bounds }

// Clip returns the absolute rectangle drawing is limited to.
func (c *Canvas) Clip() Rect { return c.clip }

// Layer returns the layer the canvas paints into.
func (c *Canvas) Layer() int { return c.layer }

// Sub returns a canvas for a child area given in local coordinates.
func (c *Canvas) Sub(r Rect) *Canvas {
	abs := r.Translate(c.bounds.X, c.bounds.Y)
	return &Canvas{lcd: c.lcd, layer: c.layer, bounds: abs, clip: c.clip.Intersect(abs)}
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.bounds.W), int16(c.bounds.H)
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	ax := c.bounds.X + int(x)
	ay := c.bounds.Y + int(y)
	if !c.clip.Contains(ax, ay) {
		return
	}
	c.lcd.SetPixel(c.layer, ax, ay, col)
}

// Display is a no-op: the layer coordinator decides when pixels are shown.
func (c *Canvas) Display() error { return nil }

// FillRectangle satisfies the tinyterm display contract.
func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.FillRect(Rect{X: int(x), Y: int(y), W: int(width), H: int(height)}, col)
	return nil
}

func (c *Canvas) SetScroll(line int16) {
	_ = line
}

func (c *Canvas) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// local converts a local rectangle to a clipped absolute one.
func (c *Canvas) local(r Rect) (Rect, bool) {
	abs := r.Translate(c.bounds.X, c.bounds.Y).Intersect(c.clip)
	return abs, !abs.Empty()
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	c.FillRect(c.Bounds(), col)
}

// FillRect paints a local rectangle.
func (c *Canvas) FillRect(r Rect, col color.RGBA) {
	abs, ok := c.local(r)
	if !ok {
		return
	}
	c.lcd.Fill(c.layer, abs.X, abs.Y, abs.W, abs.H, col)
}

// BlendRect mixes col over a local rectangle.
func (c *Canvas) BlendRect(r Rect, col color.RGBA, alpha uint8) {
	abs, ok := c.local(r)
	if !ok {
		return
	}
	for y := abs.Y; y < abs.Bottom(); y++ {
		for x := abs.X; x < abs.Right(); x++ {
			c.lcd.SetPixel(c.layer, x, y, hal.Blend(c.lcd.GetPixel(c.layer, x, y), col, alpha))
		}
	}
}

// HLine draws a horizontal line of length pixels starting at (x, y).
func (c *Canvas) HLine(x, y, length int, col color.RGBA) {
	abs, ok := c.local(Rect{X: x, Y: y, W: length, H: 1})
	if !ok {
		return
	}
	c.lcd.HLine(c.layer, abs.X, abs.Y, abs.W, col)
}

// VLine draws a vertical line of length pixels starting at (x, y).
func (c *Canvas) VLine(x, y, length int, col color.RGBA) {
	abs, ok := c.local(Rect{X: x, Y: y, W: 1, H: length})
	if !ok {
		return
	}
	c.lcd.VLine(c.layer, abs.X, abs.Y, abs.H, col)
}

// Frame outlines a local rectangle with a 1px border.
func (c *Canvas) Frame(r Rect, col color.RGBA) {
	if r.Empty() {
		return
	}
	c.HLine(r.X, r.Y, r.W, col)
	c.HLine(r.X, r.Bottom()-1, r.W, col)
	c.VLine(r.X, r.Y, r.H, col)
	c.VLine(r.Right()-1, r.Y, r.H, col)
}

// Glyph paints a 1bpp mask. Masks that cross the clip are drawn per pixel.
func (c *Canvas) Glyph(x, y, w, h int, mask []byte, col color.RGBA) {
	abs := Rect{X: x, Y: y, W: w, H: h}.Translate(c.bounds.X, c.bounds.Y)
	if abs.Intersect(c.clip) == abs {
		c.lcd.DrawGlyph(c.layer, abs.X, abs.Y, w, h, mask, col)
		return
	}
	stride := (w + 7) / 8
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			i := gy*stride + gx/8
			if i < len(mask) && mask[i]&(0x80>>(gx%8)) != 0 {
				c.SetPixel(int16(x+gx), int16(y+gy), col)
			}
		}
	}
}

// Image blits img with its top-left corner at (x, y), cropped to the clip.
func (c *Canvas) Image(x, y int, img *hal.Image) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return
	}
	abs := Rect{X: x, Y: y, W: img.Width, H: img.Height}.Translate(c.bounds.X, c.bounds.Y)
	vis := abs.Intersect(c.clip)
	if vis.Empty() {
		return
	}
	if vis != abs {
		img = crop(img, vis.Translate(-abs.X, -abs.Y))
	}
	c.lcd.DrawImage(c.layer, vis.X, vis.Y, img)
}

// crop copies the part of img inside r (image coordinates).
func crop(img *hal.Image, r Rect) *hal.Image {
	bpp := img.BPP / 8
	out := &hal.Image{Width: r.W, Height: r.H, BPP: img.BPP, Data: make([]byte, r.W*r.H*bpp)}
	src := img.Stride()
	dst := out.Stride()
	for row := 0; row < r.H; row++ {
		s := (r.Y+row)*src + r.X*bpp
		if s+dst > len(img.Data) {
			break
		}
		copy(out.Data[row*dst:(row+1)*dst], img.Data[s:s+dst])
	}
	return out
}
