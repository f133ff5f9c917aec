// Package widgets holds the stock widget kinds: windows, buttons, labels
// and a text console.
package widgets

import (
	"fmt"
	"image/color"

	"ember/gfx"
	"ember/gui"
)

// Widget is a behavior that knows its own capabilities.
type Widget interface {
	gui.Behavior
	Caps() gui.Caps
}

// Create adds w to the tree. spec.Behavior and the capability bits are
// taken from w.
func Create(c *gui.Context, parent gui.Handle, w Widget, spec gui.Spec) (gui.Handle, error) {
	spec.Behavior = w
	spec.Caps |= w.Caps()
	return c.Create(parent, spec)
}

// Theme is the palette shared by the stock widgets.
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA
	Accent     color.RGBA
	Focus      color.RGBA
	Disabled   color.RGBA
	Console    color.RGBA
}

// DefaultTheme is used by widgets with a nil Theme.
var DefaultTheme = Theme{
	Background: gfx.MustColor("#202428"),
	Foreground: gfx.MustColor("white"),
	Accent:     gfx.MustColor("steelblue"),
	Focus:      gfx.MustColor("gold"),
	Disabled:   gfx.MustColor("gray"),
	Console:    gfx.MustColor("black"),
}

// NewTheme parses a palette. Empty entries keep the DefaultTheme color.
func NewTheme(background, foreground, accent, focus, console string) (*Theme, error) {
	t := DefaultTheme
	for _, e := range []struct {
		name string
		in   string
		out  *color.RGBA
	}{
		{"background", background, &t.Background},
		{"foreground", foreground, &t.Foreground},
		{"accent", accent, &t.Accent},
		{"focus", focus, &t.Focus},
		{"console", console, &t.Console},
	} {
		if e.in == "" {
			continue
		}
		c, err := gfx.ParseColor(e.in)
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", e.name, err)
		}
		*e.out = c
	}
	return &t, nil
}

func themeOr(t *Theme) *Theme {
	if t == nil {
		return &DefaultTheme
	}
	return t
}

// bevel draws the 3D edge used by raised (or, when sunken, pressed) widgets.
func bevel(cv *gfx.Canvas, r gfx.Rect, sunken bool) {
	light := color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	dark := color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	if sunken {
		light, dark = dark, light
	}
	cv.HLine(r.X, r.Y, r.W, light)
	cv.VLine(r.X, r.Y, r.H, light)
	cv.HLine(r.X, r.Bottom()-1, r.W, dark)
	cv.VLine(r.Right()-1, r.Y, r.H, dark)
}
