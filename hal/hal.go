package hal

import (
	"errors"
	"image/color"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrBadLayer       = errors.New("invalid layer")
)

// PixelFormat defines the layer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb, stored little-endian.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Control selects an LCD control operation.
type Control uint8

const (
	// ControlInit initializes the panel. Param is *InitParam, result is *Info.
	ControlInit Control = iota + 1
	// ControlSetActiveLayer asks the panel to show a layer. Param is an int.
	// The switch completes asynchronously; see InitParam.LayerConfirmed.
	ControlSetActiveLayer
)

func (c Control) String() string {
	switch c {
	case ControlInit:
		return "init"
	case ControlSetActiveLayer:
		return "set-active-layer"
	default:
		return "unknown"
	}
}

// InitParam is passed with ControlInit.
type InitParam struct {
	// LayerConfirmed runs once the panel actually shows the layer requested
	// through ControlSetActiveLayer. It may run on another goroutine or from
	// an interrupt handler and must only touch atomic state.
	LayerConfirmed func(layer int)
}

// Info describes an initialized panel.
type Info struct {
	Width  int
	Height int
	Layers int
	Format PixelFormat
}

// Image is a raw bitmap for DrawImage.
//
// BPP 16 is RGB565 little-endian, 24 is R,G,B and 32 is R,G,B,A.
type Image struct {
	Width  int
	Height int
	BPP    int
	Data   []byte
}

// Stride returns the number of bytes per image row.
func (img *Image) Stride() int { return img.Width * img.BPP / 8 }

// LCD is the low-level display driver consumed by the GUI core.
//
// All drawing calls address a layer by index and clip to the panel.
type LCD interface {
	Control(cmd Control, param, result any) bool
	IsReady() bool

	SetPixel(layer, x, y int, c color.RGBA)
	GetPixel(layer, x, y int) color.RGBA
	Fill(layer, x, y, w, h int, c color.RGBA)
	HLine(layer, x, y, length int, c color.RGBA)
	VLine(layer, x, y, length int, c color.RGBA)

	// CopyLayer copies a block between two layers at the same position.
	CopyLayer(dst, src, x, y, w, h int)
	// BlendLayer alpha-blends a block of src over dst.
	BlendLayer(dst, src, x, y, w, h int, alpha uint8)
	// DrawGlyph paints the set bits of a 1bpp, MSB-first, byte-aligned mask.
	DrawGlyph(layer, x, y, w, h int, mask []byte, c color.RGBA)
	DrawImage(layer, x, y int, img *Image)
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
	Shift bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// TouchEvent is one sample from a touch panel or pointer.
type TouchEvent struct {
	X       int16
	Y       int16
	Pressed bool
}

// Touch provides touch samples.
type Touch interface {
	Events() <-chan TouchEvent
}

// Display provides access to the LCD driver.
type Display interface {
	LCD() LCD
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Touch() Touch
}

// Time provides a base tick stream.
//
// One tick is one millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the GUI and the board.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
