package hal

import (
	"image/color"
	"testing"
)

var (
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

func TestMemLCDInitReportsInfo(t *testing.T) {
	d := NewMemLCD(32, 16, 2)

	var info Info
	if !d.Control(ControlInit, &InitParam{}, &info) {
		t.Fatal("Control(init) = false")
	}
	if info.Width != 32 || info.Height != 16 || info.Layers != 2 || info.Format != PixelFormatRGB565 {
		t.Fatalf("info = %+v", info)
	}
}

func TestMemLCDSetActiveLayerConfirmsOnVSync(t *testing.T) {
	d := NewMemLCD(8, 8, 2)

	var confirmed []int
	d.Control(ControlInit, &InitParam{LayerConfirmed: func(l int) { confirmed = append(confirmed, l) }}, nil)

	if d.VSync() {
		t.Fatal("VSync() = true with no request")
	}
	if !d.Control(ControlSetActiveLayer, 1, nil) {
		t.Fatal("Control(set-active-layer, 1) = false")
	}
	if d.Shown() != 0 {
		t.Fatalf("Shown() = %d before vsync, want 0", d.Shown())
	}
	if len(confirmed) != 0 {
		t.Fatalf("confirmed before vsync: %v", confirmed)
	}
	if !d.VSync() {
		t.Fatal("VSync() = false with a request")
	}
	if d.Shown() != 1 {
		t.Fatalf("Shown() = %d, want 1", d.Shown())
	}
	if len(confirmed) != 1 || confirmed[0] != 1 {
		t.Fatalf("confirmed = %v, want [1]", confirmed)
	}
	if d.Control(ControlSetActiveLayer, 2, nil) {
		t.Fatal("Control(set-active-layer, 2) = true on a 2-layer panel")
	}
}

func TestMemLCDFillClips(t *testing.T) {
	d := NewMemLCD(4, 4, 1)
	d.Fill(0, -2, -2, 4, 4, white)

	if got := d.GetPixel(0, 1, 1); got != white {
		t.Fatalf("GetPixel(1,1) = %v, want white", got)
	}
	if got := d.GetPixel(0, 2, 2); got != black {
		t.Fatalf("GetPixel(2,2) = %v, want black", got)
	}
	// Out of range is a no-op.
	d.SetPixel(0, 10, 10, red)
	d.SetPixel(3, 0, 0, red)
}

func TestMemLCDCopyAndBlendLayer(t *testing.T) {
	d := NewMemLCD(4, 4, 2)
	d.Fill(0, 0, 0, 4, 4, white)

	d.CopyLayer(1, 0, 1, 1, 2, 2)
	if got := d.GetPixel(1, 1, 1); got != white {
		t.Fatalf("copied pixel = %v, want white", got)
	}
	if got := d.GetPixel(1, 0, 0); got != black {
		t.Fatalf("pixel outside block = %v, want black", got)
	}

	d.Fill(1, 0, 0, 4, 4, black)
	d.BlendLayer(1, 0, 0, 0, 1, 1, 255)
	if got := d.GetPixel(1, 0, 0); got != white {
		t.Fatalf("full alpha blend = %v, want white", got)
	}
	d.BlendLayer(1, 0, 1, 0, 1, 1, 0)
	if got := d.GetPixel(1, 1, 0); got != black {
		t.Fatalf("zero alpha blend = %v, want black", got)
	}
}

func TestMemLCDDrawGlyph(t *testing.T) {
	d := NewMemLCD(8, 2, 1)
	// 0b1010_0000 / 0b0101_0000
	d.DrawGlyph(0, 0, 0, 4, 2, []byte{0xA0, 0x50}, white)

	want := [2][4]bool{{true, false, true, false}, {false, true, false, true}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			got := d.GetPixel(0, x, y) == white
			if got != want[y][x] {
				t.Fatalf("pixel(%d,%d) set = %v, want %v", x, y, got, want[y][x])
			}
		}
	}
}

func TestMemLCDDrawImageFormats(t *testing.T) {
	tests := map[string]Image{
		"rgb565": {Width: 1, Height: 1, BPP: 16, Data: []byte{0x00, 0xF8}},
		"rgb888": {Width: 1, Height: 1, BPP: 24, Data: []byte{0xFF, 0, 0}},
		"rgba":   {Width: 1, Height: 1, BPP: 32, Data: []byte{0xFF, 0, 0, 0xFF}},
	}
	for name, img := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewMemLCD(2, 2, 1)
			d.DrawImage(0, 1, 1, &img)
			if got := d.GetPixel(0, 1, 1); got != red {
				t.Fatalf("GetPixel = %v, want red", got)
			}
		})
	}

	d := NewMemLCD(1, 1, 1)
	d.DrawImage(0, 0, 0, &Image{Width: 1, Height: 1, BPP: 32, Data: []byte{0xFF, 0, 0, 0}})
	if got := d.GetPixel(0, 0, 0); got != black {
		t.Fatalf("transparent pixel drawn: %v", got)
	}
}

func TestMemLCDBusy(t *testing.T) {
	d := NewMemLCD(1, 1, 1)
	if !d.IsReady() {
		t.Fatal("IsReady() = false on idle panel")
	}
	d.SetBusy(true)
	if d.IsReady() {
		t.Fatal("IsReady() = true on busy panel")
	}
}

func TestRGB565RoundTripPrimaries(t *testing.T) {
	for _, c := range []color.RGBA{red, white, black, {G: 0xFF, A: 0xFF}, {B: 0xFF, A: 0xFF}} {
		if got := RGBA(RGB565(c)); got != c {
			t.Fatalf("RGBA(RGB565(%v)) = %v", c, got)
		}
	}
}
