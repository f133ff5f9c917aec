//go:build !tinygo && cgo

package hal

import (
	"image"

	"ember/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Panel HostConfig
	Scale int
	// Hz is the update rate; each update is one vsync and one step.
	Hz int
}

// RunWindow starts a desktop window that shows the visible layer and
// forwards pointer and keyboard input. It blocks until the window closes.
//
// Each frame the window acts as the panel's vsync: a pending layer switch
// is completed and confirmed before the next step runs.
func RunWindow(newApp func(HAL) (func() error, error), cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	h := newHost(cfg.Panel)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Ember (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.lcd.Width()*cfg.Scale, h.lcd.Height()*cfg.Scale)
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	ebiten.SetTPS(cfg.Hz)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	lcdImg  *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.lcd.VSync()
	g.h.kbd.poll()
	g.h.touch.poll()
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	lcd := g.h.lcd
	g.img, g.scratch = lcd.SnapshotRGBA(g.img, g.scratch)
	if g.lcdImg == nil {
		g.lcdImg = ebiten.NewImage(lcd.Width(), lcd.Height())
	}
	g.lcdImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.lcdImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.lcd.Width(), g.h.lcd.Height()
}
