package hal

import (
	"image/color"
	"sync"
	"sync/atomic"
)

// MemLCD is a software panel backed by one RGB565 buffer per layer.
//
// Layer switches requested through ControlSetActiveLayer take effect on the
// next VSync, which then reports the layer through InitParam.LayerConfirmed.
// Host builds call VSync from the window or a ticker goroutine; board builds
// call it once the shown buffer has been pushed to the panel.
type MemLCD struct {
	width  int
	height int
	stride int
	layers [][]byte

	mu      sync.Mutex
	shown   int
	want    int
	confirm func(layer int)
	present func(layer int, buf []byte) error

	busy atomic.Bool
}

// NewMemLCD returns a panel of the given size with n layers (1 or 2).
func NewMemLCD(width, height, n int) *MemLCD {
	if n < 1 {
		n = 1
	}
	if n > 2 {
		n = 2
	}
	stride := width * 2
	d := &MemLCD{
		width:  width,
		height: height,
		stride: stride,
		want:   -1,
	}
	for i := 0; i < n; i++ {
		d.layers = append(d.layers, make([]byte, stride*height))
	}
	return d
}

// SetPresent installs a hook that pushes a layer to real hardware on VSync.
func (d *MemLCD) SetPresent(fn func(layer int, buf []byte) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.present = fn
}

// SetBusy marks the panel as busy (IsReady reports false), e.g. while a DMA
// transfer is running.
func (d *MemLCD) SetBusy(busy bool) { d.busy.Store(busy) }

func (d *MemLCD) Width() int       { return d.width }
func (d *MemLCD) Height() int      { return d.height }
func (d *MemLCD) StrideBytes() int { return d.stride }
func (d *MemLCD) LayerCount() int  { return len(d.layers) }

// Shown returns the layer currently visible on the panel.
func (d *MemLCD) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Requested returns the layer waiting for VSync, or -1.
func (d *MemLCD) Requested() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.want
}

// Snapshot copies the visible layer into dst.
func (d *MemLCD) Snapshot(dst []byte) {
	d.mu.Lock()
	l := d.shown
	d.mu.Unlock()
	copy(dst, d.layers[l])
}

// Buffer exposes a layer's raw RGB565 bytes.
func (d *MemLCD) Buffer(layer int) []byte {
	if layer < 0 || layer >= len(d.layers) {
		return nil
	}
	return d.layers[layer]
}

// VSync completes a pending layer switch. It reports whether one happened.
func (d *MemLCD) VSync() bool {
	d.mu.Lock()
	l := d.want
	if l < 0 {
		d.mu.Unlock()
		return false
	}
	d.want = -1
	d.shown = l
	present := d.present
	confirm := d.confirm
	d.mu.Unlock()

	if present != nil {
		_ = present(l, d.layers[l])
	}
	if confirm != nil {
		confirm(l)
	}
	return true
}

func (d *MemLCD) Control(cmd Control, param, result any) bool {
	switch cmd {
	case ControlInit:
		d.mu.Lock()
		if p, ok := param.(*InitParam); ok && p != nil {
			d.confirm = p.LayerConfirmed
		}
		d.mu.Unlock()
		if info, ok := result.(*Info); ok && info != nil {
			*info = Info{
				Width:  d.width,
				Height: d.height,
				Layers: len(d.layers),
				Format: PixelFormatRGB565,
			}
		}
		return true
	case ControlSetActiveLayer:
		l, ok := param.(int)
		if !ok || l < 0 || l >= len(d.layers) {
			return false
		}
		d.mu.Lock()
		d.want = l
		d.mu.Unlock()
		return true
	default:
		return false
	}
}

func (d *MemLCD) IsReady() bool { return !d.busy.Load() }

func (d *MemLCD) offset(layer, x, y int) int {
	if layer < 0 || layer >= len(d.layers) {
		return -1
	}
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return -1
	}
	return y*d.stride + x*2
}

func (d *MemLCD) SetPixel(layer, x, y int, c color.RGBA) {
	off := d.offset(layer, x, y)
	if off < 0 {
		return
	}
	p := RGB565(c)
	buf := d.layers[layer]
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func (d *MemLCD) GetPixel(layer, x, y int) color.RGBA {
	off := d.offset(layer, x, y)
	if off < 0 {
		return color.RGBA{}
	}
	buf := d.layers[layer]
	return RGBA(uint16(buf[off]) | uint16(buf[off+1])<<8)
}

// clip intersects a block with the panel.
func (d *MemLCD) clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	x0 = clampInt(x, 0, d.width)
	y0 = clampInt(y, 0, d.height)
	x1 = clampInt(x+w, 0, d.width)
	y1 = clampInt(y+h, 0, d.height)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

func (d *MemLCD) Fill(layer, x, y, w, h int, c color.RGBA) {
	if layer < 0 || layer >= len(d.layers) {
		return
	}
	x0, y0, x1, y1, ok := d.clip(x, y, w, h)
	if !ok {
		return
	}
	p := RGB565(c)
	lo := byte(p)
	hi := byte(p >> 8)
	buf := d.layers[layer]
	for py := y0; py < y1; py++ {
		row := py * d.stride
		for px := x0; px < x1; px++ {
			buf[row+px*2] = lo
			buf[row+px*2+1] = hi
		}
	}
}

func (d *MemLCD) HLine(layer, x, y, length int, c color.RGBA) {
	d.Fill(layer, x, y, length, 1, c)
}

func (d *MemLCD) VLine(layer, x, y, length int, c color.RGBA) {
	d.Fill(layer, x, y, 1, length, c)
}

func (d *MemLCD) CopyLayer(dst, src, x, y, w, h int) {
	if dst == src || dst < 0 || src < 0 || dst >= len(d.layers) || src >= len(d.layers) {
		return
	}
	x0, y0, x1, y1, ok := d.clip(x, y, w, h)
	if !ok {
		return
	}
	db := d.layers[dst]
	sb := d.layers[src]
	for py := y0; py < y1; py++ {
		row := py * d.stride
		copy(db[row+x0*2:row+x1*2], sb[row+x0*2:row+x1*2])
	}
}

func (d *MemLCD) BlendLayer(dst, src, x, y, w, h int, alpha uint8) {
	if dst == src || dst < 0 || src < 0 || dst >= len(d.layers) || src >= len(d.layers) {
		return
	}
	x0, y0, x1, y1, ok := d.clip(x, y, w, h)
	if !ok {
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.SetPixel(dst, px, py, Blend(d.GetPixel(dst, px, py), d.GetPixel(src, px, py), alpha))
		}
	}
}

func (d *MemLCD) DrawGlyph(layer, x, y, w, h int, mask []byte, c color.RGBA) {
	stride := (w + 7) / 8
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			i := gy*stride + gx/8
			if i >= len(mask) {
				return
			}
			if mask[i]&(0x80>>(gx%8)) != 0 {
				d.SetPixel(layer, x+gx, y+gy, c)
			}
		}
	}
}

func (d *MemLCD) DrawImage(layer, x, y int, img *Image) {
	if img == nil {
		return
	}
	stride := img.Stride()
	for iy := 0; iy < img.Height; iy++ {
		row := iy * stride
		for ix := 0; ix < img.Width; ix++ {
			var c color.RGBA
			switch img.BPP {
			case 16:
				o := row + ix*2
				if o+1 >= len(img.Data) {
					return
				}
				c = RGBA(uint16(img.Data[o]) | uint16(img.Data[o+1])<<8)
			case 24:
				o := row + ix*3
				if o+2 >= len(img.Data) {
					return
				}
				c = color.RGBA{R: img.Data[o], G: img.Data[o+1], B: img.Data[o+2], A: 0xFF}
			case 32:
				o := row + ix*4
				if o+3 >= len(img.Data) {
					return
				}
				c = color.RGBA{R: img.Data[o], G: img.Data[o+1], B: img.Data[o+2], A: img.Data[o+3]}
				if c.A == 0 {
					continue
				}
				if c.A != 0xFF {
					c = Blend(d.GetPixel(layer, x+ix, y+iy), c, c.A)
				}
			default:
				return
			}
			d.SetPixel(layer, x+ix, y+iy, c)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
