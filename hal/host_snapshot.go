//go:build !tinygo

package hal

import "image"

// NewPanel returns a host HAL on a panel of the given size together with
// its frame buffers, for tools that render without a window.
func NewPanel(cfg HostConfig) (HAL, *MemLCD) {
	h := newHost(cfg)
	return h, h.lcd
}

// SnapshotRGBA converts the visible layer into dst, reallocating it when
// the size does not match. scratch is reused the same way.
func (d *MemLCD) SnapshotRGBA(dst *image.RGBA, scratch []byte) (*image.RGBA, []byte) {
	if dst == nil || dst.Bounds().Dx() != d.width || dst.Bounds().Dy() != d.height {
		dst = image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	}
	if len(scratch) != d.stride*d.height {
		scratch = make([]byte, d.stride*d.height)
	}
	d.Snapshot(scratch)

	pix := dst.Pix
	for y := 0; y < d.height; y++ {
		row := scratch[y*d.stride:]
		out := pix[y*dst.Stride:]
		for x := 0; x < d.width; x++ {
			c := RGBA(uint16(row[2*x]) | uint16(row[2*x+1])<<8)
			out[4*x+0] = c.R
			out[4*x+1] = c.G
			out[4*x+2] = c.B
			out[4*x+3] = 0xFF
		}
	}
	return dst, scratch
}
