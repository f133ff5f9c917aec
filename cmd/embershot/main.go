//go:build !tinygo

// Command embershot renders a scene to a PNG file without opening a window,
// optionally after replaying an input script.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"

	"ember/app"
	"ember/config"
	"ember/hal"
	"ember/script"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "Configuration file (.toml or .yaml).")
		scenePath  = flag.String("scene", "", "Scene file (default: built-in demo).")
		scriptPath = flag.String("script", "", "Input script replayed before the capture.")
		outPath    = flag.String("out", "", "Output PNG file.")
		frames     = flag.Int("frames", 4, "Steps to run after the script has finished.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: embershot -out shot.png [-config ember.toml] [-scene scene.yaml] [-script input.txt] [-frames 4]")
	}
	if *frames < 1 {
		fatalf("frames out of range: %d", *frames)
	}
	if err := capture(*cfgPath, *scenePath, *scriptPath, *outPath, *frames); err != nil {
		fatalf("embershot: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func capture(cfgPath, scenePath, scriptPath, outPath string, frames int) error {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	if scenePath != "" {
		cfg.Scene = scenePath
	}

	opts := app.Options{Config: cfg, StopAfterScript: true}
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		opts.Script, err = script.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	h, lcd := hal.NewPanel(hal.HostConfig{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Layers: cfg.Display.Layers,
	})
	a, err := app.New(h, opts)
	if err != nil {
		return err
	}

	// Run the script to its end, then let pending redraws and layer
	// switches settle.
	for done := false; !done; {
		err := a.Step()
		lcd.VSync()
		switch {
		case errors.Is(err, app.ErrStopped):
			done = true
		case err != nil:
			return err
		}
	}
	for i := 0; i < frames; i++ {
		if err := a.Step(); err != nil && !errors.Is(err, app.ErrStopped) {
			return err
		}
		lcd.VSync()
	}

	img, _ := lcd.SnapshotRGBA(nil, nil)
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
