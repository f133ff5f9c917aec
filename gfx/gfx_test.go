package gfx

import (
	"errors"
	"image/color"
	"testing"

	"ember/hal"
)

var white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

func TestRectIntersectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}

	if got, want := a.Intersect(b), (Rect{X: 5, Y: 5, W: 5, H: 5}); got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}
	if got, want := a.Union(b), (Rect{X: 0, Y: 0, W: 15, H: 15}); got != want {
		t.Fatalf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("Union(empty) = %+v, want %+v", got, a)
	}
	if a.Overlaps(Rect{X: 10, Y: 0, W: 5, H: 5}) {
		t.Fatal("touching edges should not overlap")
	}
	if !a.Contains(9, 9) || a.Contains(10, 9) {
		t.Fatal("Contains should treat the right edge as exclusive")
	}
}

func TestCanvasClipsToBoundsAndClip(t *testing.T) {
	lcd := hal.NewMemLCD(20, 20, 1)
	c := NewCanvas(lcd, 0, Rect{X: 5, Y: 5, W: 10, H: 10}, Rect{X: 0, Y: 0, W: 8, H: 20})

	c.Fill(white)

	if got := lcd.GetPixel(0, 5, 5); got != white {
		t.Fatalf("pixel inside = %v, want white", got)
	}
	if got := lcd.GetPixel(0, 8, 5); got == white {
		t.Fatal("pixel right of clip was painted")
	}
	if got := lcd.GetPixel(0, 4, 5); got == white {
		t.Fatal("pixel left of bounds was painted")
	}

	c.SetPixel(-1, 0, white)
	if got := lcd.GetPixel(0, 4, 5); got == white {
		t.Fatal("SetPixel escaped the widget bounds")
	}
}

func TestCanvasImageCropsToClip(t *testing.T) {
	lcd := hal.NewMemLCD(4, 4, 1)
	c := NewCanvas(lcd, 0, Rect{W: 4, H: 4}, Rect{X: 1, Y: 1, W: 2, H: 2})

	data := make([]byte, 0, 4*4*3)
	for i := 0; i < 16; i++ {
		data = append(data, 0xFF, 0xFF, 0xFF)
	}
	c.Image(0, 0, &hal.Image{Width: 4, Height: 4, BPP: 24, Data: data})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			if got := lcd.GetPixel(0, x, y) == white; got != inside {
				t.Fatalf("pixel(%d,%d) painted = %v, want %v", x, y, got, inside)
			}
		}
	}
}

func TestCanvasTextDrawsInsideBounds(t *testing.T) {
	lcd := hal.NewMemLCD(64, 16, 1)
	c := NewCanvas(lcd, 0, Rect{W: 64, H: 16}, Rect{W: 64, H: 16})

	c.TextIn(c.Bounds(), "Hi", nil, white, AlignCenter)

	painted := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			if lcd.GetPixel(0, x, y) == white {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Fatal("TextIn painted no pixels")
	}
	if TextWidth(nil, "Hi") <= 0 || LineHeight(nil) <= 0 {
		t.Fatal("default font metrics should be positive")
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		"name":       {in: "Red", want: color.RGBA{R: 0xFF, A: 0xFF}},
		"long hex":   {in: "#102030", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}},
		"short hex":  {in: "#fff", want: white},
		"unknown":    {in: "notacolor", wantErr: true},
		"bad hex":    {in: "#12345g", wantErr: true},
		"wrong size": {in: "#1234", wantErr: true},
		"empty":      {in: "", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadColor) {
					t.Fatalf("ParseColor(%q) err = %v, want ErrBadColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
