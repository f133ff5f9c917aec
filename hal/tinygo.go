//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/ili9341"
)

const (
	panelWidth  = 320
	panelHeight = 240
	// Rows pushed per SPI burst; bounds the byte-swap scratch buffer.
	blitRows = 8
)

type tinyGoHAL struct {
	logger *uartLogger
	lcd    *MemLCD
	kbd    Keyboard
	touch  Touch
	t      *tinyGoTime
}

// New returns a Pico (RP2040/RP2350) HAL driving an ILI9341 over SPI0.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Both layers live in RAM; a layer switch pushes the chosen layer to the
// panel from a goroutine and confirms it once the transfer finishes.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		SDI:       machine.GP16,
		Frequency: 40_000_000,
	})
	panel := ili9341.NewSPI(machine.SPI0, machine.GP20, machine.GP17, machine.GP21)
	panel.Configure(ili9341.Config{})
	panel.SetRotation(ili9341.Rotation90)

	lcd := NewMemLCD(panelWidth, panelHeight, 2)
	b := &spiBlitter{panel: panel, lcd: lcd, tx: make([]byte, panelWidth*2*blitRows)}
	lcd.SetPresent(b.push)

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		lcd:    lcd,
		kbd:    nullKeyboard{},
		touch:  nullTouch{},
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{lcd: h.lcd} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd, touch: h.touch} }
func (h *tinyGoHAL) Time() Time       { return h.t }

// spiBlitter copies a little-endian RGB565 layer to the big-endian panel.
type spiBlitter struct {
	panel *ili9341.Device
	lcd   *MemLCD
	tx    []byte
}

func (b *spiBlitter) push(layer int, buf []byte) error {
	b.lcd.SetBusy(true)
	defer b.lcd.SetBusy(false)

	stride := b.lcd.StrideBytes()
	for y := 0; y < b.lcd.Height(); y += blitRows {
		rows := blitRows
		if y+rows > b.lcd.Height() {
			rows = b.lcd.Height() - y
		}
		src := buf[y*stride : (y+rows)*stride]
		dst := b.tx[:len(src)]
		for i := 0; i+1 < len(src); i += 2 {
			dst[i] = src[i+1]
			dst[i+1] = src[i]
		}
		if err := b.panel.DrawRGBBitmap8(0, int16(y), dst, int16(b.lcd.Width()), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}

// VSync drives a pending layer switch; the board main loop calls it between
// GUI steps.
func VSync(h HAL) {
	if th, ok := h.(*tinyGoHAL); ok {
		th.lcd.VSync()
	}
}
