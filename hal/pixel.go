package hal

import "image/color"

// RGB565 packs c into rrrrrggggggbbbbb, dropping alpha.
func RGB565(c color.RGBA) uint16 {
	rr := uint16(c.R>>3) & 0x1F
	gg := uint16(c.G>>2) & 0x3F
	bb := uint16(c.B>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGBA unpacks an RGB565 pixel into an opaque color.
func RGBA(p uint16) color.RGBA {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	return color.RGBA{
		R: uint8((rr * 255) / 31),
		G: uint8((gg * 255) / 63),
		B: uint8((bb * 255) / 31),
		A: 0xFF,
	}
}

// Blend mixes src over dst with the given alpha (255 = src only).
func Blend(dst, src color.RGBA, alpha uint8) color.RGBA {
	a := uint16(alpha)
	na := 255 - a
	return color.RGBA{
		R: uint8((uint16(src.R)*a + uint16(dst.R)*na) / 255),
		G: uint8((uint16(src.G)*a + uint16(dst.G)*na) / 255),
		B: uint8((uint16(src.B)*a + uint16(dst.B)*na) / 255),
		A: 0xFF,
	}
}
