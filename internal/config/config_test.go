package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("default config has %d validation problems: %v", len(errs), errs)
	}
}

func TestValidateClampsWindowSize(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 10
	cfg.Window.Height = 100000

	errs := cfg.Validate()
	if len(errs) != 2 {
		t.Fatalf("got %d validation problems, want 2: %v", len(errs), errs)
	}
	if cfg.Window.Width != 160 {
		t.Errorf("width clamped to %d, want 160", cfg.Window.Width)
	}
	if cfg.Window.Height != 4320 {
		t.Errorf("height clamped to %d, want 4320", cfg.Window.Height)
	}
}

func TestValidateNegativeDisplayIndex(t *testing.T) {
	cfg := Default()
	cfg.Capture.DisplayIndex = -1
	if errs := cfg.Validate(); len(errs) != 1 {
		t.Fatalf("got %d validation problems, want 1: %v", len(errs), errs)
	}
	if cfg.Capture.DisplayIndex != 0 {
		t.Errorf("display index = %d, want 0", cfg.Capture.DisplayIndex)
	}
}

func TestValidateUnknownEffect(t *testing.T) {
	cfg := Default()
	cfg.Effects.Start = "sparkles"
	if errs := cfg.Validate(); len(errs) != 1 {
		t.Fatalf("got %d validation problems, want 1: %v", len(errs), errs)
	}
	if cfg.Effects.Start != Default().Effects.Start {
		t.Errorf("effect = %q, want default", cfg.Effects.Start)
	}
}

func TestValidateScreenshotPrefix(t *testing.T) {
	cfg := Default()
	cfg.Screenshot.Prefix = `shots\of`
	if errs := cfg.Validate(); len(errs) != 1 {
		t.Fatalf("got %d validation problems, want 1: %v", len(errs), errs)
	}
	if cfg.Screenshot.Prefix != Default().Screenshot.Prefix {
		t.Errorf("prefix = %q, want default", cfg.Screenshot.Prefix)
	}
}

func TestResolveEffect(t *testing.T) {
	tests := []struct {
		in      string
		wantIdx int
		wantOK  bool
	}{
		{"passthru", 0, true},
		{"wobbly", 1, true},
		{"1", 0, true},
		{"5", 4, true},
		{"0", 0, false},
		{"6", 0, false},
		{"nope", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		idx, ok := ResolveEffect(tt.in)
		if idx != tt.wantIdx || ok != tt.wantOK {
			t.Errorf("ResolveEffect(%q) = (%d, %v), want (%d, %v)",
				tt.in, idx, ok, tt.wantIdx, tt.wantOK)
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrimshady.yaml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Effects.Start = "lightning"
	if _, err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("width = %d, want 1024", loaded.Window.Width)
	}
	if loaded.Effects.Start != "lightning" {
		t.Errorf("effect = %q, want lightning", loaded.Effects.Start)
	}
	if loaded.Window.Title != cfg.Window.Title {
		t.Errorf("title = %q, want %q", loaded.Window.Title, cfg.Window.Title)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrimshady.yaml")
	if _, err := Save(Default(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	os.Setenv("SCRIMSHADY_WINDOW_WIDTH", "640")
	defer os.Unsetenv("SCRIMSHADY_WINDOW_WIDTH")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Window.Width != 640 {
		t.Errorf("width = %d, want 640 from env", loaded.Window.Width)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of missing explicit config file succeeded")
	}
}
