//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ember/app"
	"ember/config"
	"ember/hal"
	"ember/internal/buildinfo"
	"ember/script"
)

func main() {
	var (
		cfgPath    string
		scenePath  string
		scriptPath string
		headless   hal.HeadlessConfig
		verbose    bool
		version    bool
	)
	flag.StringVar(&cfgPath, "config", "", "Load configuration from a .toml or .yaml file.")
	flag.StringVar(&scenePath, "scene", "", "Load the widget tree from a YAML scene file.")
	flag.StringVar(&scriptPath, "script", "", "Replay scripted input; headless runs stop when it ends.")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 0, "Loop rate (0 = from config).")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&verbose, "verbose", false, "Log every redraw pass.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	if err := run(cfgPath, scenePath, scriptPath, headless, verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath, scenePath, scriptPath string, headless hal.HeadlessConfig, verbose bool) error {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	if !cfg.Supports(buildinfo.Version) {
		return fmt.Errorf("%s requires ember %s, this is %s", cfgPath, cfg.Requires, buildinfo.Short())
	}
	if scenePath != "" {
		cfg.Scene = scenePath
	}
	if headless.Hz > 0 {
		cfg.Loop.Hz = headless.Hz
	}
	cfg.Verbose = cfg.Verbose || verbose

	opts := app.Options{Config: cfg}
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		cmds, err := script.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
		opts.Script = cmds
		opts.StopAfterScript = headless.Enabled
	}

	panel := hal.HostConfig{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Layers: cfg.Display.Layers,
	}

	if headless.Enabled {
		headless.Hz = cfg.Loop.Hz
		headless.VSyncHz = cfg.Display.RefreshHz
		headless.Panel = panel

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, app.Runner(opts), headless)
		if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrStopped) {
			return nil
		}
		return err
	}

	return hal.RunWindow(app.Runner(opts), hal.WindowConfig{Panel: panel, Scale: cfg.Display.Scale, Hz: cfg.Loop.Hz})
}
