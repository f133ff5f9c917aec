package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParse_TOML(t *testing.T) {
	cfg, err := Parse(".toml", []byte(`
scene = "ui.yaml"

[display]
width = 240
layers = 1

[loop]
hz = 30

[theme]
accent = "tomato"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Display.Width != 240 || cfg.Display.Height != 240 || cfg.Display.Layers != 1 {
		t.Fatalf("display=%+v", cfg.Display)
	}
	if cfg.Loop.Hz != 30 || cfg.Loop.MaxWidgets != 64 {
		t.Fatalf("loop=%+v, want hz 30 and default max_widgets", cfg.Loop)
	}
	if cfg.Scene != "ui.yaml" || cfg.Theme.Accent != "tomato" {
		t.Fatalf("scene=%q accent=%q", cfg.Scene, cfg.Theme.Accent)
	}
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse(".yml", []byte(`
requires: v0.2.0
display:
  refresh_hz: 50
loop:
  touch_queue: 8
verbose: true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Display.RefreshHz != 50 || cfg.Loop.TouchQueue != 8 || !cfg.Verbose {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !cfg.Supports("v0.2.1") || cfg.Supports("v0.1.9") || !cfg.Supports("dev") {
		t.Fatal("Supports mismatch")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]struct {
		ext  string
		data string
	}{
		"layers":   {".toml", "[display]\nlayers = 3\n"},
		"color":    {".toml", "[theme]\nfocus = \"plaid\"\n"},
		"requires": {".yaml", "requires: latest\n"},
		"hz":       {".yaml", "loop:\n  hz: 0\n"},
		"format":   {".json", "{}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(tt.ext, []byte(tt.data)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err=%v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Parse(".toml", []byte("[display\n")); err == nil {
		t.Fatal("malformed toml accepted")
	}
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ember.yaml")
	if err := os.WriteFile(path, []byte("display:\n  scale: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Scale != 3 {
		t.Fatalf("scale=%d, want 3", cfg.Display.Scale)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want ErrNotExist", err)
	}
}
