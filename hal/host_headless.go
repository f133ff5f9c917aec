//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// VSyncHz is the simulated panel refresh rate. Layer switches are
	// confirmed from a separate goroutine, like a vsync interrupt.
	VSyncHz int
	Panel   HostConfig
}

// RunHeadless runs the GUI without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.VSyncHz <= 0 {
		cfg.VSyncHz = cfg.Hz
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	vd := time.Second / time.Duration(cfg.VSyncHz)
	if vd <= 0 {
		return fmt.Errorf("invalid vsync hz: %d", cfg.VSyncHz)
	}

	h := newHost(cfg.Panel)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		t := time.NewTicker(vd)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				h.lcd.VSync()
			}
		}
	})

	g.Go(func() error {
		defer stop()
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-gctx.Done():
				return ctx.Err()
			case <-t.C:
				h.t.step()
				if step != nil {
					if err := step(); err != nil {
						return err
					}
				}
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return nil
				}
			}
		}
	})

	return g.Wait()
}
